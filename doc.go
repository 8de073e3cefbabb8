//
//  Copyright 2026 The inmemfs authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

// Package inmemfs defines the host-facing vocabulary shared by every
// in-memory filesystem built with this module: paths with OS-family
// flavors, typed error kinds, principals (users and groups), attribute
// views, and filesystem configuration.
//
// The concrete engine, meaning the entry tree, the locking protocol,
// and the provider operations that compose them, lives in the engine
// subpackage. This package only describes the shapes the engine
// produces and consumes.
package inmemfs
