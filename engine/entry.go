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
	"sort"
	"sync"
	"time"

	"github.com/inmemfs/inmemfs"
)

// entryKind distinguishes the three node variants of the tree.
type entryKind int

const (
	dirKind entryKind = iota
	fileKind
	symlinkKind
)

// entry is the interface implemented by dirEntry, fileEntry and
// symlinkEntry.
type entry interface {
	sync.Locker
	RLock()
	RUnlock()
	base() *baseEntry
	kind() entryKind
}

// baseEntry is the state common to every entry variant: identity,
// timestamps, and the attribute-view bundle. The embedded RWMutex is
// anonymous so Lock/Unlock/RLock/RUnlock promote through dirEntry,
// fileEntry and symlinkEntry without boilerplate forwarding methods.
type baseEntry struct {
	sync.RWMutex

	id         uint64
	name       string // original-name, as created
	createdAt  time.Time
	accessedAt time.Time
	modifiedAt time.Time
	views      viewBundle
}

func (b *baseEntry) base() *baseEntry { return b }

func newBaseEntry(id uint64, name string, now time.Time, views viewBundle) baseEntry {
	return baseEntry{id: id, name: name, createdAt: now, accessedAt: now, modifiedAt: now, views: views}
}

// touch updates the modification (and therefore access) time under the
// caller's held write lock, keeping §3.2 invariant 3: timestamps only
// move forward and only change while the entry's write lock is held.
func (b *baseEntry) touch(now time.Time) {
	b.modifiedAt = now
	b.accessedAt = now
}

func (b *baseEntry) touchAccess(now time.Time) {
	b.accessedAt = now
}

// dirEntry is a directory: a name -> entry map keyed by the original
// (as-created) name. Lookups under case-insensitive filesystems fold
// the requested name against these keys instead of maintaining a
// separate index, matching the scale this module targets.
type dirEntry struct {
	baseEntry
	children map[string]entry
}

func (d *dirEntry) kind() entryKind { return dirKind }

func newDirEntry(id uint64, name string, now time.Time, views viewBundle) *dirEntry {
	return &dirEntry{baseEntry: newBaseEntry(id, name, now, views)}
}

// lookup finds a child by name under the filesystem's case-sensitivity
// rule. Caller must hold at least a read lock on d.
func (d *dirEntry) lookup(name string, cs inmemfs.CaseSensitivity) (entry, string, bool) {
	if cs == inmemfs.Sensitive {
		c, ok := d.children[name]
		return c, name, ok
	}

	for k, c := range d.children {
		if foldEqual(cs, k, name) {
			return c, k, true
		}
	}

	return nil, "", false
}

// addChild inserts a new child. Caller must hold d's write lock and
// must have already verified the name is free (AlreadyExists check is
// the caller's responsibility, so create/copy/move can share one
// locked section with the existence check).
func (d *dirEntry) addChild(name string, child entry) {
	if d.children == nil {
		d.children = make(map[string]entry)
	}

	d.children[name] = child
}

func (d *dirEntry) removeChild(name string) {
	delete(d.children, name)
}

func (d *dirEntry) isEmpty() bool { return len(d.children) == 0 }

// sortedNames returns the child names in lexical order, for a stable
// listDirectory snapshot.
func (d *dirEntry) sortedNames() []string {
	names := make([]string, 0, len(d.children))
	for n := range d.children {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// fileEntry is a regular file backed by a growable byte store.
type fileEntry struct {
	baseEntry
	content *byteStore
}

func (f *fileEntry) kind() entryKind { return fileKind }

func newFileEntry(id uint64, name string, now time.Time, views viewBundle) *fileEntry {
	return &fileEntry{baseEntry: newBaseEntry(id, name, now, views), content: newByteStore()}
}

// symlinkEntry stores its target verbatim, never resolved at creation.
type symlinkEntry struct {
	baseEntry
	target inmemfs.Path
}

func (s *symlinkEntry) kind() entryKind { return symlinkKind }

func newSymlinkEntry(id uint64, name string, now time.Time, views viewBundle, target inmemfs.Path) *symlinkEntry {
	return &symlinkEntry{baseEntry: newBaseEntry(id, name, now, views), target: target}
}

func foldEqual(cs inmemfs.CaseSensitivity, a, b string) bool {
	switch cs {
	case inmemfs.InsensitiveASCII:
		if len(a) != len(b) {
			return false
		}

		for i := 0; i < len(a); i++ {
			if asciiLower(a[i]) != asciiLower(b[i]) {
				return false
			}
		}

		return true
	case inmemfs.InsensitiveUnicode:
		return unicodeFold(a) == unicodeFold(b)
	default:
		return a == b
	}
}
