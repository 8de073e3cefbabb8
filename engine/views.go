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
	"strings"

	"github.com/inmemfs/inmemfs"
)

// internal ACL pseudo-permissions, consulted only by attribute
// read/write on the Acl view itself: an ACL mutation requires the
// WRITE_ACL permission, a read requires READ_ACL. These never appear
// in a public AccessMode value and are never subject to
// AccessMode.Valid()'s {READ,WRITE,EXECUTE} restriction.
type aclPermission int

const (
	aclRead aclPermission = iota
	aclWrite
)

// posixView, dosView, aclView and userView are the mutable storage for
// the optional attribute views an entry may carry; Basic is not listed
// here because its fields (timestamps, size, type) are always read
// straight off baseEntry / the entry's content.
type posixView struct {
	owner inmemfs.Principal
	group inmemfs.Principal
	perm  uint16 // 9 bits: rwxrwxrwx
}

type dosView struct {
	readOnly bool
	hidden   bool
	system   bool
	archive  bool
}

type aclView struct {
	owner   inmemfs.Principal
	entries []inmemfs.AclEntry
}

type userView struct {
	values map[string][]byte
}

// viewBundle is the per-entry set of configured views, resolved at
// creation time from the filesystem's configuration.
type viewBundle struct {
	posix *posixView
	dos   *dosView
	acl   *aclView
	user  *userView
}

// owner resolves the Owner view per Table 1: posix if present, else
// acl, else unsupported.
func (vb *viewBundle) owner() (inmemfs.Principal, bool) {
	if vb.posix != nil {
		return vb.posix.owner, true
	}

	if vb.acl != nil {
		return vb.acl.owner, true
	}

	return inmemfs.Principal{}, false
}

// checkAccess is the conjunction of every access-check-capable view
// on the entry: Basic always grants READ/EXECUTE/WRITE, DOS denies
// WRITE when read-only, POSIX resolves owner/group/other and checks
// the matching bit, ACL scans in order. Every configured view must
// agree; any one denial fails the whole check.
func checkAccess(e entry, mode inmemfs.AccessMode, who inmemfs.Principal, ps *principalService) bool {
	vb := &e.base().views

	if vb.dos != nil && mode&inmemfs.Write != 0 && vb.dos.readOnly {
		return false
	}

	if vb.posix != nil && !posixAllows(vb.posix, mode, who, ps) {
		return false
	}

	if vb.acl != nil && !aclAllows(vb.acl.entries, mode, who) {
		return false
	}

	return true
}

// posixAllows resolves the requesting principal's class (owner, group,
// other) and checks the matching 3-bit field of the permission mask.
func posixAllows(pv *posixView, mode inmemfs.AccessMode, who inmemfs.Principal, ps *principalService) bool {
	var bits uint16

	switch {
	case who.Equal(pv.owner):
		bits = (pv.perm >> 6) & 0o7
	case ps != nil && ps.isMember(who, pv.group):
		bits = (pv.perm >> 3) & 0o7
	default:
		bits = pv.perm & 0o7
	}

	want := modeToBits(mode)

	return bits&want == want
}

func modeToBits(mode inmemfs.AccessMode) uint16 {
	var bits uint16
	if mode&inmemfs.Read != 0 {
		bits |= 0o4
	}

	if mode&inmemfs.Write != 0 {
		bits |= 0o2
	}

	if mode&inmemfs.Execute != 0 {
		bits |= 0o1
	}

	return bits
}

// aclAllows scans entries in order. The first ALLOW covering the
// requested permission for a matching principal grants; the first DENY
// that matches fails the request. If no entry matches at all, the ACL
// view has no opinion and does not veto the other views (the
// conjunction in checkAccess still applies).
func aclAllows(entries []inmemfs.AclEntry, mode inmemfs.AccessMode, who inmemfs.Principal) bool {
	for _, e := range entries {
		if !e.Principal.Equal(who) {
			continue
		}

		if e.Permissions&mode != mode {
			continue
		}

		return e.Type == inmemfs.Allow
	}

	return true
}

// aclAllowsSpecial checks the internal READ_ACL/WRITE_ACL pseudo
// permission used to gate reading or mutating the Acl view itself.
func aclAllowsSpecial(entries []inmemfs.AclEntry, perm aclPermission, who inmemfs.Principal) bool {
	for _, e := range entries {
		if !e.Principal.Equal(who) {
			continue
		}

		matches := (perm == aclRead && e.Permissions&inmemfs.Read != 0) ||
			(perm == aclWrite && e.Permissions&inmemfs.Write != 0)
		if !matches {
			continue
		}

		return e.Type == inmemfs.Allow
	}

	return true
}

// defaultPosixMode returns the configured umask applied to a newly
// created entry: the umask as-is for a file, with execute bits OR-ed
// in for all three classes for a directory so traversal stays possible.
func defaultPosixMode(umask uint16, isDir bool) uint16 {
	mode := uint16(0o777) &^ umask
	if isDir {
		mode |= 0o111
	}

	return mode
}

// readBasicAttributes builds the always-present Basic view snapshot.
func readBasicAttributes(e entry, size int64) inmemfs.BasicAttributes {
	b := e.base()

	return inmemfs.BasicAttributes{
		CreationTime:   b.createdAt,
		LastAccessTime: b.accessedAt,
		LastModified:   b.modifiedAt,
		Size:           size,
		IsDirectory:    e.kind() == dirKind,
		IsSymlink:      e.kind() == symlinkKind,
		IsRegularFile:  e.kind() == fileKind,
	}
}

// readAttributeList implements readAttributes(name-list): a
// comma-separated list of fields prefixed by a view name
// ("dos:hidden,size"). Unknown fields are silently skipped.
func readAttributeList(e entry, spec string, size int64, ps *principalService) (map[string]any, error) {
	viewName, fields, err := splitAttrSpec(spec)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any)

	all := map[string]any{}

	switch inmemfs.ViewName(viewName) {
	case inmemfs.ViewBasic, "":
		b := readBasicAttributes(e, size)
		all = map[string]any{
			"creationTime":   b.CreationTime,
			"lastAccessTime": b.LastAccessTime,
			"lastModified":   b.LastModified,
			"size":           b.Size,
			"isDirectory":    b.IsDirectory,
			"isSymlink":      b.IsSymlink,
			"isRegularFile":  b.IsRegularFile,
		}
	case inmemfs.ViewPosix:
		vb := e.base().views
		if vb.posix == nil {
			return nil, inmemfs.Unsupported
		}

		all = map[string]any{"owner": vb.posix.owner, "group": vb.posix.group, "permissions": vb.posix.perm}
	case inmemfs.ViewDos:
		vb := e.base().views
		if vb.dos == nil {
			return nil, inmemfs.Unsupported
		}

		all = map[string]any{
			"readOnly": vb.dos.readOnly, "hidden": vb.dos.hidden,
			"system": vb.dos.system, "archive": vb.dos.archive,
		}
	case inmemfs.ViewAcl:
		vb := e.base().views
		if vb.acl == nil {
			return nil, inmemfs.Unsupported
		}

		all = map[string]any{"owner": vb.acl.owner, "acl": append([]inmemfs.AclEntry(nil), vb.acl.entries...)}
	case inmemfs.ViewOwner:
		owner, ok := e.base().views.owner()
		if !ok {
			return nil, inmemfs.Unsupported
		}

		all = map[string]any{"owner": owner}
	case inmemfs.ViewUser:
		vb := e.base().views
		if vb.user == nil {
			return nil, inmemfs.Unsupported
		}

		all = map[string]any{}

		for k, v := range vb.user.values {
			all[k] = append([]byte(nil), v...)
		}
	default:
		return nil, inmemfs.Unsupported
	}

	if len(fields) == 0 {
		return all, nil
	}

	for _, f := range fields {
		if v, ok := all[f]; ok {
			out[f] = v
		}
	}

	return out, nil
}

// writeAttribute sets one "view:field" attribute, used by create's
// attrs argument and by an explicit setAttribute call. Unknown fields
// fail Unsupported; there is no distinct IllegalArgument Kind for this
// corner case.
func writeAttribute(e entry, viewName, field string, value any, who inmemfs.Principal, ps *principalService) error {
	vb := &e.base().views

	switch inmemfs.ViewName(viewName) {
	case inmemfs.ViewPosix:
		if vb.posix == nil {
			return inmemfs.Unsupported
		}

		if !checkAccess(e, inmemfs.Write, who, ps) {
			return inmemfs.AccessDenied
		}

		switch field {
		case "owner":
			p, ok := value.(inmemfs.Principal)
			if !ok || p.IsZero() {
				return inmemfs.InvalidPath
			}

			vb.posix.owner = p
		case "group":
			p, ok := value.(inmemfs.Principal)
			if !ok || p.IsZero() {
				return inmemfs.InvalidPath
			}

			vb.posix.group = p
		case "permissions":
			perm, ok := value.(uint16)
			if !ok {
				return inmemfs.InvalidPath
			}

			vb.posix.perm = perm & 0o777
		default:
			return inmemfs.Unsupported
		}

		return nil
	case inmemfs.ViewDos:
		if vb.dos == nil {
			return inmemfs.Unsupported
		}
		// DOS flags never require WRITE to modify.
		b, ok := value.(bool)
		if !ok {
			return inmemfs.InvalidPath
		}

		switch field {
		case "readOnly":
			vb.dos.readOnly = b
		case "hidden":
			vb.dos.hidden = b
		case "system":
			vb.dos.system = b
		case "archive":
			vb.dos.archive = b
		default:
			return inmemfs.Unsupported
		}

		return nil
	case inmemfs.ViewAcl:
		if vb.acl == nil {
			return inmemfs.Unsupported
		}

		if !aclAllowsSpecial(vb.acl.entries, aclWrite, who) {
			return inmemfs.AccessDenied
		}

		switch field {
		case "owner":
			p, ok := value.(inmemfs.Principal)
			if !ok {
				return inmemfs.InvalidPath
			}

			vb.acl.owner = p
		case "acl":
			entries, ok := value.([]inmemfs.AclEntry)
			if !ok {
				return inmemfs.InvalidPath
			}

			vb.acl.entries = append([]inmemfs.AclEntry(nil), entries...)
		default:
			return inmemfs.Unsupported
		}

		return nil
	case inmemfs.ViewUser:
		if vb.user == nil {
			return inmemfs.Unsupported
		}

		if !checkAccess(e, inmemfs.Write, who, ps) {
			return inmemfs.AccessDenied
		}

		data, ok := value.([]byte)
		if !ok {
			return inmemfs.InvalidPath
		}

		if vb.user.values == nil {
			vb.user.values = make(map[string][]byte)
		}

		vb.user.values[field] = append([]byte(nil), data...)

		return nil
	default:
		return inmemfs.Unsupported
	}
}

func splitAttrSpec(spec string) (view string, fields []string, err error) {
	idx := strings.IndexByte(spec, ':')
	if idx < 0 {
		return "", nil, nil
	}

	view = spec[:idx]
	rest := spec[idx+1:]

	if rest == "" {
		return view, nil, nil
	}

	return view, strings.Split(rest, ","), nil
}

// userRead copies the named user-defined attribute into buf, failing
// BufferTooSmall if buf is shorter than the stored value.
func userRead(vb *viewBundle, name string, buf []byte) (int, error) {
	if vb.user == nil {
		return 0, inmemfs.Unsupported
	}

	v, ok := vb.user.values[name]
	if !ok {
		return 0, nil
	}

	if len(buf) < len(v) {
		return 0, inmemfs.BufferTooSmall
	}

	return copy(buf, v), nil
}

func userWrite(vb *viewBundle, name string, data []byte) error {
	if vb.user == nil {
		return inmemfs.Unsupported
	}

	if vb.user.values == nil {
		vb.user.values = make(map[string][]byte)
	}

	vb.user.values[name] = append([]byte(nil), data...)

	return nil
}

func userList(vb *viewBundle) ([]string, error) {
	if vb.user == nil {
		return nil, inmemfs.Unsupported
	}

	names := make([]string, 0, len(vb.user.values))
	for n := range vb.user.values {
		names = append(names, n)
	}

	return names, nil
}
