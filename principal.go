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

package inmemfs

// PrincipalKind distinguishes a user principal from a group principal.
type PrincipalKind int

const (
	UserPrincipal PrincipalKind = iota
	GroupPrincipal
)

// FilesystemRef identifies the filesystem a Principal is bound to.
// A concrete *engine.FS implements it; comparison is by interface
// equality (valid because the dynamic type is always a pointer).
type FilesystemRef interface {
	Identifier() string
}

// Principal is a user or group bound to one filesystem. Two principals
// are equal iff they have the same name, the same kind, and the same
// owning filesystem.
type Principal struct {
	name string
	kind PrincipalKind
	fs   FilesystemRef
}

// NewPrincipal constructs a Principal. Engines use this to hand out
// User/Group values; callers never need to build one directly.
func NewPrincipal(fs FilesystemRef, kind PrincipalKind, name string) Principal {
	return Principal{fs: fs, kind: kind, name: name}
}

// Name returns the principal's name.
func (p Principal) Name() string { return p.name }

// IsGroup reports whether the principal is a group.
func (p Principal) IsGroup() bool { return p.kind == GroupPrincipal }

// IsUser reports whether the principal is a user.
func (p Principal) IsUser() bool { return p.kind == UserPrincipal }

// IsZero reports whether p is the zero Principal (no name, unbound).
func (p Principal) IsZero() bool { return p.fs == nil && p.name == "" }

// Filesystem returns the filesystem this principal is bound to.
func (p Principal) Filesystem() FilesystemRef { return p.fs }

// Equal reports whether p and o name the same principal on the same
// filesystem.
func (p Principal) Equal(o Principal) bool {
	return p.name == o.name && p.kind == o.kind && p.fs == o.fs
}
