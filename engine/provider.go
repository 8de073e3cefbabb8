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
	iofs "io/fs"

	"github.com/inmemfs/inmemfs"
)

// wrapPathErr wraps a non-nil Kind (or any other error) returned at an
// operation boundary in *iofs.PathError, the same way the standard
// library's own filesystem operations report a failing path.
func wrapPathErr(op string, path inmemfs.Path, err error) error {
	if err == nil {
		return nil
	}

	return &iofs.PathError{Op: op, Path: path.String(), Err: err}
}

// Create installs a new entry of kind at path, applying attrs
// ("view:field" -> value) to the new entry before it is linked into
// its parent, and returns nothing beyond the error: callers that need
// the entry immediately follow with Open or Stat.
func (fs *FS) Create(path inmemfs.Path, kind inmemfs.EntryKind, who inmemfs.Principal, attrs map[string]any) (err error) {
	defer func() { err = wrapPathErr("create", path, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	return fs.createLocked(path, kind, who, attrs, inmemfs.Path{})
}

func (fs *FS) createLocked(path inmemfs.Path, kind inmemfs.EntryKind, who inmemfs.Principal, attrs map[string]any, symlinkTarget inmemfs.Path) error {
	parent, name, _, err := fs.resolve(path, who, true)
	if err == nil {
		return inmemfs.AlreadyExists
	}

	if err != inmemfs.NoSuchFile || parent == nil {
		return err
	}

	var child entry

	parent.Lock()

	if !checkAccess(parent, inmemfs.Write, who, fs.principals) {
		parent.Unlock()
		return inmemfs.AccessDenied
	}

	if _, _, exists := parent.lookup(name, fs.caseSensitivity); exists {
		parent.Unlock()
		return inmemfs.AlreadyExists
	}

	owner := who
	group := fs.principals.defaultGroup

	views := fs.newViews(kind == inmemfs.KindDirectory, owner, group)
	id := fs.allocID()
	ts := now()

	switch kind {
	case inmemfs.KindDirectory:
		child = newDirEntry(id, name, ts, views)
	case inmemfs.KindFile:
		child = newFileEntry(id, name, ts, views)
	case inmemfs.KindSymlink:
		child = newSymlinkEntry(id, name, ts, views, symlinkTarget)
	default:
		parent.Unlock()
		return inmemfs.Unsupported
	}

	parent.Unlock()

	for spec, value := range attrs {
		view, field, splitErr := splitAttrKey(spec)
		if splitErr != nil {
			continue
		}

		child.Lock()
		writeErr := writeAttribute(child, view, field, value, who, fs.principals)
		child.Unlock()

		if writeErr != nil {
			return writeErr
		}
	}

	parent.Lock()

	if _, _, exists := parent.lookup(name, fs.caseSensitivity); exists {
		parent.Unlock()
		return inmemfs.AlreadyExists
	}

	parent.addChild(name, child)
	parent.touch(ts)
	parent.Unlock()

	return nil
}

func splitAttrKey(spec string) (view, field string, err error) {
	for i := 0; i < len(spec); i++ {
		if spec[i] == ':' {
			return spec[:i], spec[i+1:], nil
		}
	}

	return "", "", inmemfs.InvalidPath
}

func parentOf(p inmemfs.Path) inmemfs.Path {
	parent, ok := p.Parent()
	if !ok {
		return p
	}

	return parent
}

// Open resolves path to a FileHandle, creating it first when modes
// includes OpenCreate and the file is missing.
func (fs *FS) Open(path inmemfs.Path, modes inmemfs.OpenMode, who inmemfs.Principal, attrs map[string]any) (h *FileHandle, err error) {
	defer func() { err = wrapPathErr("open", path, err) }()

	if fs.isClosed() {
		return nil, inmemfs.ClosedFilesystem
	}

	_, _, found, err := fs.resolve(path, who, false)

	if err == inmemfs.NoSuchFile && modes&inmemfs.OpenCreate != 0 {
		if createErr := fs.createLocked(path, inmemfs.KindFile, who, attrs, inmemfs.Path{}); createErr != nil {
			return nil, createErr
		}

		_, _, found, err = fs.resolve(path, who, false)
	}

	if err != nil {
		return nil, err
	}

	file, ok := found.(*fileEntry)
	if !ok {
		return nil, inmemfs.IsADirectory
	}

	want := inmemfs.Read
	if modes&(inmemfs.OpenWrite|inmemfs.OpenAppend) != 0 {
		want = inmemfs.Write
	}

	file.RLock()
	allowed := checkAccess(file, want, who, fs.principals)
	file.RUnlock()

	if !allowed {
		return nil, inmemfs.AccessDenied
	}

	return newFileHandle(fs, file, modes), nil
}

// Delete removes the child named by path from its parent. A non-empty
// directory fails DirectoryNotEmpty; the empty check and the removal
// happen under one write-lock acquisition to close the race window
// between the two.
func (fs *FS) Delete(path inmemfs.Path, who inmemfs.Principal) (err error) {
	defer func() { err = wrapPathErr("remove", path, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	parent, name, child, err := fs.resolve(path, who, true)
	if err != nil {
		return err
	}

	parent.Lock()
	defer parent.Unlock()

	current, realName, ok := parent.lookup(name, fs.caseSensitivity)
	if !ok {
		return inmemfs.NoSuchFile
	}

	if !checkAccess(parent, inmemfs.Write, who, fs.principals) {
		return inmemfs.AccessDenied
	}

	if d, isDir := current.(*dirEntry); isDir {
		d.RLock()
		empty := d.isEmpty()
		d.RUnlock()

		if !empty {
			return inmemfs.DirectoryNotEmpty
		}
	}

	_ = child

	parent.removeChild(realName)
	parent.touch(now())

	return nil
}

// Stat returns the Basic view snapshot for path, following symlinks
// unless noFollow is set.
func (fs *FS) Stat(path inmemfs.Path, who inmemfs.Principal, noFollow bool) (attrs inmemfs.BasicAttributes, err error) {
	defer func() { err = wrapPathErr("stat", path, err) }()

	if fs.isClosed() {
		return inmemfs.BasicAttributes{}, inmemfs.ClosedFilesystem
	}

	_, _, e, err := fs.resolve(path, who, noFollow)
	if err != nil {
		return inmemfs.BasicAttributes{}, err
	}

	return basicOf(e), nil
}

func basicOf(e entry) inmemfs.BasicAttributes {
	var size int64

	if f, ok := e.(*fileEntry); ok {
		f.RLock()
		size = f.content.size()
		f.RUnlock()
	}

	e.RLock()
	b := readBasicAttributes(e, size)
	e.RUnlock()

	return b
}

// CheckAccess implements the public checkAccess() operation: mode must
// be exactly one of READ/WRITE/EXECUTE (or a combination of them);
// anything else fails Unsupported.
func (fs *FS) CheckAccess(path inmemfs.Path, mode inmemfs.AccessMode, who inmemfs.Principal) (err error) {
	defer func() { err = wrapPathErr("checkAccess", path, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	if !mode.Valid() {
		return inmemfs.Unsupported
	}

	_, _, e, err := fs.resolve(path, who, false)
	if err != nil {
		return err
	}

	e.RLock()
	allowed := checkAccess(e, mode, who, fs.principals)
	e.RUnlock()

	if !allowed {
		return inmemfs.AccessDenied
	}

	return nil
}

// ReadAttributes implements readAttributes(path, name-list).
func (fs *FS) ReadAttributes(path inmemfs.Path, spec string, who inmemfs.Principal) (attrs map[string]any, err error) {
	defer func() { err = wrapPathErr("readAttributes", path, err) }()

	if fs.isClosed() {
		return nil, inmemfs.ClosedFilesystem
	}

	_, _, e, err := fs.resolve(path, who, false)
	if err != nil {
		return nil, err
	}

	var size int64
	if f, ok := e.(*fileEntry); ok {
		f.RLock()
		size = f.content.size()
		f.RUnlock()
	}

	e.RLock()
	defer e.RUnlock()

	return readAttributeList(e, spec, size, fs.principals)
}

// SetAttribute implements setAttribute(path, "view:field", value).
func (fs *FS) SetAttribute(path inmemfs.Path, spec string, value any, who inmemfs.Principal) (err error) {
	defer func() { err = wrapPathErr("setAttribute", path, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	_, _, e, err := fs.resolve(path, who, false)
	if err != nil {
		return err
	}

	view, field, err := splitAttrKey(spec)
	if err != nil {
		return err
	}

	e.Lock()
	defer e.Unlock()

	return writeAttribute(e, view, field, value, who, fs.principals)
}

// ListDirectory implements listDirectory(path, filter): a stable
// snapshot of the directory's children at the moment of the call.
func (fs *FS) ListDirectory(path inmemfs.Path, who inmemfs.Principal, filter func(name string) bool) (names []string, err error) {
	defer func() { err = wrapPathErr("listDirectory", path, err) }()

	if fs.isClosed() {
		return nil, inmemfs.ClosedFilesystem
	}

	_, _, e, err := fs.resolve(path, who, false)
	if err != nil {
		return nil, err
	}

	d, ok := e.(*dirEntry)
	if !ok {
		return nil, inmemfs.NotADirectory
	}

	d.RLock()

	if !checkAccess(d, inmemfs.Read, who, fs.principals) {
		d.RUnlock()
		return nil, inmemfs.AccessDenied
	}

	names = d.sortedNames()
	d.touchAccess(now())
	d.RUnlock()

	if filter == nil {
		return names, nil
	}

	out := names[:0:0]

	for _, n := range names {
		if filter(n) {
			out = append(out, n)
		}
	}

	return out, nil
}

// Symlink installs a Symlink entry whose target is stored verbatim.
func (fs *FS) Symlink(link, target inmemfs.Path, who inmemfs.Principal) (err error) {
	defer func() { err = wrapPathErr("symlink", link, err) }()

	if fs.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	return fs.createLocked(link, inmemfs.KindSymlink, who, nil, target)
}

// ReadSymbolicLink returns the verbatim target stored at path, which
// must name a symlink.
func (fs *FS) ReadSymbolicLink(path inmemfs.Path, who inmemfs.Principal) (target inmemfs.Path, err error) {
	defer func() { err = wrapPathErr("readlink", path, err) }()

	if fs.isClosed() {
		return inmemfs.Path{}, inmemfs.ClosedFilesystem
	}

	_, _, e, err := fs.resolve(path, who, true)
	if err != nil {
		return inmemfs.Path{}, err
	}

	s, ok := e.(*symlinkEntry)
	if !ok {
		return inmemfs.Path{}, inmemfs.InvalidOperation
	}

	return s.target, nil
}

// ToRealPath iteratively follows path's symlinks to their final
// target, splicing each target's components into the remaining walk,
// within the shared 40-link budget.
func (fs *FS) ToRealPath(path inmemfs.Path, who inmemfs.Principal) (real inmemfs.Path, err error) {
	defer func() { err = wrapPathErr("realpath", path, err) }()

	if fs.isClosed() {
		return inmemfs.Path{}, inmemfs.ClosedFilesystem
	}

	p := path
	if !p.Absolute() {
		joined, err := fs.defaultDirectory.Join(p.Components()...)
		if err != nil {
			return inmemfs.Path{}, err
		}

		p = joined
	}

	cur, ok := fs.rootEntry(p.Root())
	if !ok {
		return inmemfs.Path{}, inmemfs.NoSuchFile
	}

	resolvedRoot := p.Root()

	var resolved []string

	budget := maxSymlinkDepth
	queue := p.Normalize().Components()

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		cur.RLock()

		if !checkAccess(cur, inmemfs.Execute, who, fs.principals) {
			cur.RUnlock()
			return inmemfs.Path{}, inmemfs.AccessDenied
		}

		child, realName, found := cur.lookup(c, fs.caseSensitivity)

		cur.RUnlock()

		if !found {
			return inmemfs.Path{}, inmemfs.NoSuchFile
		}

		if sl, isLink := child.(*symlinkEntry); isLink {
			if budget <= 0 {
				return inmemfs.Path{}, inmemfs.TooManyLinks
			}

			budget--

			target := sl.target.Normalize()

			if target.Absolute() {
				root, rootOK := fs.rootEntry(target.Root())
				if !rootOK {
					return inmemfs.Path{}, inmemfs.NoSuchFile
				}

				cur = root
				resolvedRoot = target.Root()
				resolved = nil
			}

			queue = append(target.Components(), queue...)

			continue
		}

		resolved = append(resolved, realName)

		if d, isDir := child.(*dirEntry); isDir {
			cur = d
		} else if len(queue) > 0 {
			return inmemfs.Path{}, inmemfs.NotADirectory
		}
	}

	return inmemfs.NewPath(fs, resolvedRoot, resolved...)
}
