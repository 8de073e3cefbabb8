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

package engine

import (
	"sync"

	"github.com/inmemfs/inmemfs"
)

// Registry is the process-wide identifier -> *FS map: Create fails
// AlreadyExists for a reused identifier, Get fails NotFound for an
// unregistered one. A package-level instance
// (Default) covers the common single-process case; tests and embedders
// that want isolation construct their own.
type Registry struct {
	mu sync.Mutex
	fs map[string]*FS
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fs: make(map[string]*FS)}
}

// Default is the shared process-wide registry.
var Default = NewRegistry()

// Create builds a new FS from cfg, registers it under identifier, and
// returns it. It fails AlreadyExists if identifier is already
// registered, without touching the existing filesystem.
func (r *Registry) Create(identifier string, cfg inmemfs.Configuration) (*FS, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fs[identifier]; ok {
		return nil, inmemfs.AlreadyExists
	}

	fs, err := New(identifier, cfg)
	if err != nil {
		return nil, err
	}

	r.fs[identifier] = fs

	return fs, nil
}

// Get returns the filesystem registered under identifier, or
// NotFound.
func (r *Registry) Get(identifier string) (*FS, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fs[identifier]
	if !ok {
		return nil, inmemfs.NotFound
	}

	return fs, nil
}

// Remove unregisters and closes the filesystem under identifier, if
// any. It is not an error to remove an identifier that was never
// registered.
func (r *Registry) Remove(identifier string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fs, ok := r.fs[identifier]
	if !ok {
		return nil
	}

	delete(r.fs, identifier)

	return fs.Close()
}
