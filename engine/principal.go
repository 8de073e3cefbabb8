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

// principalService owns the user/group namespace for one filesystem
// and tracks group membership: users carry a set of group names they
// belong to, beyond their primary group.
type principalService struct {
	fs *FS

	users  map[string]inmemfs.Principal
	groups map[string]inmemfs.Principal

	// memberOf[user] is the set of group names the user belongs to,
	// in addition to whatever primary group an entry's posix view
	// names directly.
	memberOf map[string]map[string]struct{}

	defaultUser  inmemfs.Principal
	defaultGroup inmemfs.Principal
}

func newPrincipalService(fs *FS) *principalService {
	return &principalService{
		users:    make(map[string]inmemfs.Principal),
		groups:   make(map[string]inmemfs.Principal),
		memberOf: make(map[string]map[string]struct{}),
		fs:       fs,
	}
}

// addUser registers a user principal with an empty set of additional
// group memberships; a like-named group is not joined automatically.
func (ps *principalService) addUser(name string) inmemfs.Principal {
	p := inmemfs.NewPrincipal(ps.fs, inmemfs.UserPrincipal, name)
	ps.users[name] = p

	if _, ok := ps.memberOf[name]; !ok {
		ps.memberOf[name] = make(map[string]struct{})
	}

	return p
}

func (ps *principalService) addGroup(name string) inmemfs.Principal {
	p := inmemfs.NewPrincipal(ps.fs, inmemfs.GroupPrincipal, name)
	ps.groups[name] = p

	return p
}

// join adds user as a member of group, beyond whatever group a file's
// posix view names as primary.
func (ps *principalService) join(user, group string) {
	if ps.memberOf[user] == nil {
		ps.memberOf[user] = make(map[string]struct{})
	}

	ps.memberOf[user][group] = struct{}{}
}

func (ps *principalService) user(name string) (inmemfs.Principal, bool) {
	p, ok := ps.users[name]
	return p, ok
}

func (ps *principalService) group(name string) (inmemfs.Principal, bool) {
	p, ok := ps.groups[name]
	return p, ok
}

// isMember reports whether who belongs to group: either as the group's
// own principal (who == group, the primary-group case already checked
// by the caller before calling isMember) or via explicit membership.
func (ps *principalService) isMember(who, group inmemfs.Principal) bool {
	if who.Equal(group) {
		return true
	}

	if !who.IsUser() || !group.IsGroup() {
		return false
	}

	members, ok := ps.memberOf[who.Name()]
	if !ok {
		return false
	}

	_, member := members[group.Name()]

	return member
}

// Session scopes a temporary acting principal over a call chain,
// modeled on a thread-local effective-user override: Push installs an
// override, Pop restores the previous one, PopAll clears the stack.
// It is not safe for concurrent use by multiple goroutines acting as
// the same Session; each caller that needs an independent identity
// should hold its own Session.
type Session struct {
	ps    *principalService
	stack []inmemfs.Principal
}

func newSession(ps *principalService) *Session {
	return &Session{ps: ps, stack: []inmemfs.Principal{ps.defaultUser}}
}

// Current returns the currently active principal.
func (s *Session) Current() inmemfs.Principal {
	return s.stack[len(s.stack)-1]
}

// Push installs who as the acting principal until the matching Pop.
func (s *Session) Push(who inmemfs.Principal) {
	s.stack = append(s.stack, who)
}

// Pop restores the previously active principal. It is a no-op once
// only the original default remains.
func (s *Session) Pop() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// PopAll resets the session back to the filesystem's default user.
func (s *Session) PopAll() {
	s.stack = s.stack[:1]
}
