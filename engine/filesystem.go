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
	"sync/atomic"
	"time"

	"github.com/inmemfs/inmemfs"
)

// FS is one in-memory filesystem instance: an entry tree per root, the
// configuration it was built with, and the bookkeeping (identifier,
// entry-id counter, open flag) the provider operations rely on. It
// implements inmemfs.PathDomain and inmemfs.FilesystemRef; the tree
// itself lives in this package while the vocabulary stays upstream.
type FS struct {
	identifier string

	flavor          inmemfs.Flavor
	separator       rune
	forbiddenChars  map[rune]struct{}
	caseSensitivity inmemfs.CaseSensitivity
	umask           uint16
	additionalViews map[inmemfs.ViewName]struct{}

	rootsMu   sync.RWMutex
	roots     map[string]*dirEntry // root display string -> root directory
	rootOrder []string             // display strings in creation order, parallel to roots

	principals *principalService

	nextID uint64 // atomic

	closed int32 // atomic, 0 = open

	defaultDirectory inmemfs.Path
}

// New builds an FS from a resolved Configuration, validating it first.
// The returned FS is not yet registered; callers that
// want process-wide lookup by identifier should use Create on a
// Registry.
func New(identifier string, cfg inmemfs.Configuration) (*FS, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	forbidden := cfg.ForbiddenChars
	if forbidden == nil {
		forbidden = inmemfs.DefaultForbiddenChars(cfg.Flavor)
	}

	fs := &FS{
		identifier:      identifier,
		flavor:          cfg.Flavor,
		separator:       cfg.Separator,
		forbiddenChars:  forbidden,
		caseSensitivity: cfg.CaseSensitivity,
		umask:           cfg.Umask,
		additionalViews: cfg.AdditionalViews,
		roots:           make(map[string]*dirEntry),
	}

	fs.principals = newPrincipalService(fs)

	now := time.Now()

	for _, root := range cfg.Roots {
		views := fs.newViews(true, inmemfs.Principal{}, inmemfs.Principal{})
		if views.dos != nil {
			views.dos.hidden = true
			views.dos.system = true
		}

		fs.roots[root] = newDirEntry(fs.allocID(), root, now, views)
		fs.rootOrder = append(fs.rootOrder, root)
	}

	for _, u := range cfg.Users {
		fs.principals.addUser(u)
	}

	for _, g := range cfg.Groups {
		fs.principals.addGroup(g)
	}

	if cfg.DefaultUser != "" {
		if u, ok := fs.principals.user(cfg.DefaultUser); ok {
			fs.principals.defaultUser = u
		} else {
			fs.principals.defaultUser = fs.principals.addUser(cfg.DefaultUser)
		}
	}

	if cfg.DefaultGroup != "" {
		if g, ok := fs.principals.group(cfg.DefaultGroup); ok {
			fs.principals.defaultGroup = g
		} else {
			fs.principals.defaultGroup = fs.principals.addGroup(cfg.DefaultGroup)
		}
	}

	if cfg.DefaultDirectory != "" {
		p, err := inmemfs.NewPath(fs, cfg.DefaultDirectory)
		if err != nil {
			return nil, err
		}

		fs.defaultDirectory = p
	} else if len(cfg.Roots) > 0 {
		p, err := inmemfs.NewPath(fs, cfg.Roots[0])
		if err != nil {
			return nil, err
		}

		fs.defaultDirectory = p
	}

	return fs, nil
}

func (fs *FS) allocID() uint64 { return atomic.AddUint64(&fs.nextID, 1) }

// newViews builds the attribute-view bundle a newly created entry
// starts with, per the filesystem's AdditionalViews configuration:
// Basic is implicit and never stored; Posix/Dos/Acl/User are only
// allocated when configured.
func (fs *FS) newViews(isDir bool, owner, group inmemfs.Principal) viewBundle {
	var vb viewBundle

	if fs.hasView(inmemfs.ViewPosix) {
		vb.posix = &posixView{owner: owner, group: group, perm: defaultPosixMode(fs.umask, isDir)}
	}

	if fs.hasView(inmemfs.ViewDos) {
		vb.dos = &dosView{}
	}

	if fs.hasView(inmemfs.ViewAcl) {
		vb.acl = &aclView{owner: owner}
	}

	if fs.hasView(inmemfs.ViewUser) {
		vb.user = &userView{values: make(map[string][]byte)}
	}

	return vb
}

func (fs *FS) hasView(name inmemfs.ViewName) bool {
	if fs.additionalViews == nil {
		return false
	}

	_, ok := fs.additionalViews[name]

	return ok
}

// Identifier implements inmemfs.FilesystemRef.
func (fs *FS) Identifier() string { return fs.identifier }

// Flavor implements inmemfs.PathDomain.
func (fs *FS) Flavor() inmemfs.Flavor { return fs.flavor }

// Separator implements inmemfs.PathDomain.
func (fs *FS) Separator() rune { return fs.separator }

// ForbiddenChars implements inmemfs.PathDomain.
func (fs *FS) ForbiddenChars() map[rune]struct{} { return fs.forbiddenChars }

// CaseSensitivity implements inmemfs.PathDomain.
func (fs *FS) CaseSensitivity() inmemfs.CaseSensitivity { return fs.caseSensitivity }

// Roots implements inmemfs.PathDomain, returning the configured root
// display strings in creation order.
func (fs *FS) Roots() []string {
	fs.rootsMu.RLock()
	defer fs.rootsMu.RUnlock()

	out := make([]string, len(fs.rootOrder))
	copy(out, fs.rootOrder)

	return out
}

// NewSession returns a fresh principal-acting session bound to this
// filesystem's default user.
func (fs *FS) NewSession() *Session { return newSession(fs.principals) }

// User looks up a registered user principal by name.
func (fs *FS) User(name string) (inmemfs.Principal, bool) { return fs.principals.user(name) }

// Group looks up a registered group principal by name.
func (fs *FS) Group(name string) (inmemfs.Principal, bool) { return fs.principals.group(name) }

// DefaultUser returns the filesystem's configured default user
// principal, the zero Principal if none was configured.
func (fs *FS) DefaultUser() inmemfs.Principal { return fs.principals.defaultUser }

// DefaultGroup returns the filesystem's configured default group
// principal, the zero Principal if none was configured.
func (fs *FS) DefaultGroup() inmemfs.Principal { return fs.principals.defaultGroup }

// Join adds user as an additional member of group, beyond whatever
// group an entry's posix view names as primary.
func (fs *FS) Join(user, group inmemfs.Principal) {
	fs.principals.join(user.Name(), group.Name())
}

// DefaultDirectory returns the path new relative lookups resolve
// against.
func (fs *FS) DefaultDirectory() inmemfs.Path { return fs.defaultDirectory }

// isClosed reports whether Close has been called.
func (fs *FS) isClosed() bool { return atomic.LoadInt32(&fs.closed) != 0 }

// Close marks the filesystem closed. It is idempotent; every
// subsequent operation against it fails with inmemfs.ClosedFilesystem.
func (fs *FS) Close() error {
	atomic.StoreInt32(&fs.closed, 1)
	return nil
}

func (fs *FS) rootEntry(name string) (*dirEntry, bool) {
	fs.rootsMu.RLock()
	defer fs.rootsMu.RUnlock()

	if fs.flavor != inmemfs.WINDOWS {
		if len(fs.rootOrder) == 0 {
			return nil, false
		}

		return fs.roots[fs.rootOrder[0]], true
	}

	for _, disp := range fs.rootOrder {
		if len(disp) > 0 && len(name) > 0 && asciiFold(disp[0]) == asciiFold(name[0]) {
			return fs.roots[disp], true
		}
	}

	return nil, false
}

func asciiFold(b byte) byte { return asciiLower(b) }
