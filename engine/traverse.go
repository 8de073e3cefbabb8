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

import "github.com/inmemfs/inmemfs"

// maxSymlinkDepth bounds the number of symlinks resolve() will follow
// before giving up with TooManyLinks.
const maxSymlinkDepth = 40

// resolve walks p from its root, returning the directory that contains
// the final component, the final component's name as stored (which may
// differ in case from the requested name), and the entry it names.
// Intermediate components are always followed through symlinks;
// noFollow controls only the terminal component, giving readSymbolicLink
// and similar operations a way to reach the link itself.
//
// If the final component does not exist, the returned error is
// NoSuchFile but the parent directory and requested name are still
// returned, so create-style callers can proceed to insert a new child
// without a second traversal.
func (fs *FS) resolve(p inmemfs.Path, who inmemfs.Principal, noFollow bool) (*dirEntry, string, entry, error) {
	if fs.isClosed() {
		return nil, "", nil, inmemfs.ClosedFilesystem
	}

	abs := p
	if !p.Absolute() {
		joined, err := fs.defaultDirectory.Join(p.Components()...)
		if err != nil {
			return nil, "", nil, err
		}

		abs = joined
	}

	root, ok := fs.rootEntry(abs.Root())
	if !ok {
		return nil, "", nil, inmemfs.NoSuchFile
	}

	budget := maxSymlinkDepth

	return fs.walk(root, abs.Normalize().Components(), who, noFollow, &budget)
}

func (fs *FS) walk(dir *dirEntry, comps []string, who inmemfs.Principal, noFollow bool, budget *int) (*dirEntry, string, entry, error) {
	if len(comps) == 0 {
		return nil, "", dir, nil
	}

	cur := dir

	for _, c := range comps[:len(comps)-1] {
		child, _, err := fs.stepInto(cur, c, who, budget)
		if err != nil {
			return nil, "", nil, err
		}

		d, ok := child.(*dirEntry)
		if !ok {
			return nil, "", nil, inmemfs.NotADirectory
		}

		cur = d
	}

	last := comps[len(comps)-1]

	cur.RLock()

	if !checkAccess(cur, inmemfs.Execute, who, fs.principals) {
		cur.RUnlock()
		return nil, "", nil, inmemfs.AccessDenied
	}

	child, realName, found := cur.lookup(last, fs.caseSensitivity)

	cur.RUnlock()

	if !found {
		return cur, last, nil, inmemfs.NoSuchFile
	}

	if sl, ok := child.(*symlinkEntry); ok && !noFollow {
		resolved, err := fs.followSymlink(cur, sl, who, budget)
		if err != nil {
			return cur, realName, nil, err
		}

		return cur, realName, resolved, nil
	}

	return cur, realName, child, nil
}

// stepInto resolves one intermediate path component, always following
// a symlink found there since only the terminal component can be
// addressed directly (NOFOLLOW).
func (fs *FS) stepInto(cur *dirEntry, name string, who inmemfs.Principal, budget *int) (entry, string, error) {
	cur.RLock()

	if !checkAccess(cur, inmemfs.Execute, who, fs.principals) {
		cur.RUnlock()
		return nil, "", inmemfs.AccessDenied
	}

	child, realName, found := cur.lookup(name, fs.caseSensitivity)

	cur.RUnlock()

	if !found {
		return nil, "", inmemfs.NoSuchFile
	}

	if sl, ok := child.(*symlinkEntry); ok {
		resolved, err := fs.followSymlink(cur, sl, who, budget)
		if err != nil {
			return nil, "", err
		}

		return resolved, realName, nil
	}

	return child, realName, nil
}

// followSymlink resolves sl's target, relative to base when the target
// is itself relative, decrementing the shared link budget.
func (fs *FS) followSymlink(base *dirEntry, sl *symlinkEntry, who inmemfs.Principal, budget *int) (entry, error) {
	if *budget <= 0 {
		return nil, inmemfs.TooManyLinks
	}

	*budget--

	target := sl.target.Normalize()

	if target.Absolute() {
		root, ok := fs.rootEntry(target.Root())
		if !ok {
			return nil, inmemfs.NoSuchFile
		}

		_, _, e, err := fs.walk(root, target.Components(), who, false, budget)

		return e, err
	}

	_, _, e, err := fs.walk(base, target.Components(), who, false, budget)

	return e, err
}
