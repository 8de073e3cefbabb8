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

// Package engine implements the in-memory filesystem engine: the entry
// tree, the attribute-view registry, per-entry locking and access
// control, the file content store, and the provider operations that
// compose them into create/open/read/write/move/delete/copy flows.
//
// It is the concrete counterpart to the inmemfs package's vocabulary:
// inmemfs describes the shapes, engine implements them.
package engine
