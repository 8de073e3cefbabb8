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

// OpenMode is the bitmask an open() call requests. It is distinct from
// AccessMode: AccessMode names the permission an access check is made
// against, OpenMode names what a FileHandle is opened for.
type OpenMode int

const (
	OpenRead OpenMode = 1 << iota
	OpenWrite
	OpenAppend
	// OpenCreate causes open() to create the file when missing, under
	// the same parent rule as create().
	OpenCreate
)

// EntryKind selects what create() installs.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindSymlink
)

// CopyOption is a bitmask of copy() modifiers.
type CopyOption int

const (
	// CopyAttributes copies DOS/POSIX/ACL/user-defined view state
	// field-by-field instead of initializing the target fresh.
	CopyAttributes CopyOption = 1 << iota
	// CopyReplaceExisting allows copy() to overwrite an existing target.
	CopyReplaceExisting
)

// MoveOption is a bitmask of move() modifiers.
type MoveOption int

const (
	// MoveReplaceExisting allows move() to overwrite an existing target.
	MoveReplaceExisting MoveOption = 1 << iota
)
