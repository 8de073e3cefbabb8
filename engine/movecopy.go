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
	"os"

	"github.com/inmemfs/inmemfs"
)

// wrapLinkErr wraps a non-nil error from a two-path operation in
// *os.LinkError, the same way the standard library reports a failing
// rename or link between two names.
func wrapLinkErr(op string, oldPath, newPath inmemfs.Path, err error) error {
	if err == nil {
		return nil
	}

	return &os.LinkError{Op: op, Old: oldPath.String(), New: newPath.String(), Err: err}
}

// Move implements move(source, target, options): lock-orders the two
// parent directories by entry id, then atomically relinks the child
// under the new parent/name.
func (fs *FS) Move(source, target inmemfs.Path, options inmemfs.MoveOption, who inmemfs.Principal) (err error) {
	defer func() { err = wrapLinkErr("rename", source, target, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	if target.StartsWith(source) && !target.Equal(source) {
		return inmemfs.InvalidOperation
	}

	srcParent, srcName, _, err := fs.resolve(source, who, true)
	if err != nil {
		return err
	}

	_, dstName, dstEntry, dstErr := fs.resolve(parentOf(target), who, false)
	if dstErr != nil {
		return dstErr
	}

	dstParent, isDir := dstEntry.(*dirEntry)
	if !isDir {
		return inmemfs.NotADirectory
	}

	if dstNameFromTarget, ok := target.FileName(); ok {
		dstName = dstNameFromTarget
	}

	return fs.withOrderedParents(srcParent, dstParent, func() error {
		child, realName, ok := srcParent.lookup(srcName, fs.caseSensitivity)
		if !ok {
			return inmemfs.NoSuchFile
		}

		if !checkAccess(srcParent, inmemfs.Write, who, fs.principals) {
			return inmemfs.AccessDenied
		}

		if !checkAccess(dstParent, inmemfs.Write, who, fs.principals) {
			return inmemfs.AccessDenied
		}

		existing, _, exists := dstParent.lookup(dstName, fs.caseSensitivity)
		if exists {
			if options&inmemfs.MoveReplaceExisting == 0 {
				return inmemfs.AlreadyExists
			}

			if d, isDir := existing.(*dirEntry); isDir {
				d.RLock()
				empty := d.isEmpty()
				d.RUnlock()

				if !empty {
					return inmemfs.DirectoryNotEmpty
				}
			}

			dstParent.removeChild(dstName)
		}

		srcParent.removeChild(realName)
		child.base().name = dstName
		dstParent.addChild(dstName, child)

		ts := now()
		srcParent.touch(ts)
		dstParent.touch(ts)

		return nil
	})
}

// withOrderedParents locks a then b (or just a, when they are the same
// directory) in increasing order of entry id, runs fn, then unlocks in
// reverse.
func (fs *FS) withOrderedParents(a, b *dirEntry, fn func() error) error {
	if a == b {
		a.Lock()
		defer a.Unlock()

		return fn()
	}

	first, second := a, b
	if b.id < a.id {
		first, second = b, a
	}

	first.Lock()
	defer first.Unlock()

	second.Lock()
	defer second.Unlock()

	return fn()
}

// Copy implements copy(source, target, options). With CopyAttributes
// the configured view state is copied field-by-field from source to
// target; otherwise the target starts as a fresh creation would.
func (fs *FS) Copy(source, target inmemfs.Path, options inmemfs.CopyOption, who inmemfs.Principal) (err error) {
	defer func() { err = wrapLinkErr("copy", source, target, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	_, _, srcEntry, err := fs.resolve(source, who, true)
	if err != nil {
		return err
	}

	srcEntry.RLock()

	if !checkAccess(srcEntry, inmemfs.Read, who, fs.principals) {
		srcEntry.RUnlock()
		return inmemfs.AccessDenied
	}

	var (
		kind     inmemfs.EntryKind
		content  []byte
		slTarget inmemfs.Path
	)

	switch srcEntry.kind() {
	case dirKind:
		kind = inmemfs.KindDirectory
	case fileKind:
		kind = inmemfs.KindFile
		content = srcEntry.(*fileEntry).content.snapshot()
	case symlinkKind:
		kind = inmemfs.KindSymlink
		slTarget = srcEntry.(*symlinkEntry).target
	}

	srcViews := srcEntry.base().views

	srcEntry.RUnlock()

	_, dstName, dstEntry, err := fs.resolve(parentOf(target), who, false)
	if err != nil {
		return err
	}

	dstParent, isDir := dstEntry.(*dirEntry)
	if !isDir {
		return inmemfs.NotADirectory
	}

	if n, ok := target.FileName(); ok {
		dstName = n
	}

	dstParent.Lock()

	if !checkAccess(dstParent, inmemfs.Write, who, fs.principals) {
		dstParent.Unlock()
		return inmemfs.AccessDenied
	}

	if existing, _, exists := dstParent.lookup(dstName, fs.caseSensitivity); exists {
		if options&inmemfs.CopyReplaceExisting == 0 {
			dstParent.Unlock()
			return inmemfs.AlreadyExists
		}

		if d, isDir := existing.(*dirEntry); isDir {
			d.RLock()
			empty := d.isEmpty()
			d.RUnlock()

			if !empty {
				dstParent.Unlock()
				return inmemfs.DirectoryNotEmpty
			}
		}

		dstParent.removeChild(dstName)
	}

	id := fs.allocID()
	ts := now()

	var views viewBundle
	if options&inmemfs.CopyAttributes != 0 {
		views = cloneViews(srcViews)
	} else {
		views = fs.newViews(kind == inmemfs.KindDirectory, who, fs.principals.defaultGroup)
	}

	var dstChild entry

	switch kind {
	case inmemfs.KindDirectory:
		dstChild = newDirEntry(id, dstName, ts, views)
	case inmemfs.KindFile:
		f := newFileEntry(id, dstName, ts, views)
		f.content.write(0, content)
		dstChild = f
	case inmemfs.KindSymlink:
		dstChild = newSymlinkEntry(id, dstName, ts, views, slTarget)
	}

	dstParent.addChild(dstName, dstChild)
	dstParent.touch(ts)
	dstParent.Unlock()

	return nil
}

// cloneViews deep-copies a source entry's view bundle for
// CopyAttributes.
func cloneViews(src viewBundle) viewBundle {
	var dst viewBundle

	if src.posix != nil {
		v := *src.posix
		dst.posix = &v
	}

	if src.dos != nil {
		v := *src.dos
		dst.dos = &v
	}

	if src.acl != nil {
		v := aclView{owner: src.acl.owner, entries: append([]inmemfs.AclEntry(nil), src.acl.entries...)}
		dst.acl = &v
	}

	if src.user != nil {
		values := make(map[string][]byte, len(src.user.values))
		for k, v := range src.user.values {
			values[k] = append([]byte(nil), v...)
		}

		dst.user = &userView{values: values}
	}

	return dst
}
