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

package engine_test

import (
	"testing"

	"github.com/inmemfs/inmemfs"
	"github.com/inmemfs/inmemfs/engine"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateThenGet(t *testing.T) {
	r := engine.NewRegistry()

	cfg := inmemfs.Configuration{
		Flavor:    inmemfs.POSIX,
		Separator: '/',
		Roots:     []string{"/"},
	}

	fs, err := r.Create("memory:one", cfg)
	require.NoError(t, err)
	require.Equal(t, "memory:one", fs.Identifier())

	got, err := r.Get("memory:one")
	require.NoError(t, err)
	require.Same(t, fs, got)
}

func TestRegistryCreateDuplicateFails(t *testing.T) {
	r := engine.NewRegistry()

	cfg := inmemfs.Configuration{Flavor: inmemfs.POSIX, Separator: '/', Roots: []string{"/"}}

	_, err := r.Create("memory:dup", cfg)
	require.NoError(t, err)

	_, err = r.Create("memory:dup", cfg)
	require.ErrorIs(t, err, inmemfs.AlreadyExists)
}

func TestRegistryGetUnregisteredFailsNotFound(t *testing.T) {
	r := engine.NewRegistry()

	_, err := r.Get("memory:missing")
	require.ErrorIs(t, err, inmemfs.NotFound)
}

func TestRegistryRemoveClosesAndUnregisters(t *testing.T) {
	r := engine.NewRegistry()

	cfg := inmemfs.Configuration{Flavor: inmemfs.POSIX, Separator: '/', Roots: []string{"/"}}

	fs, err := r.Create("memory:remove", cfg)
	require.NoError(t, err)

	require.NoError(t, r.Remove("memory:remove"))

	_, err = r.Get("memory:remove")
	require.ErrorIs(t, err, inmemfs.NotFound)

	err = fs.Create(mustPath(t, fs, "/x"), inmemfs.KindDirectory, fs.DefaultUser(), nil)
	require.ErrorIs(t, err, inmemfs.ClosedFilesystem)
}

func TestRegistryRemoveUnknownIdentifierIsNoop(t *testing.T) {
	r := engine.NewRegistry()
	require.NoError(t, r.Remove("memory:never-existed"))
}

func TestWindowsMultiRootDriveLetterCaseInsensitiveMatch(t *testing.T) {
	fs := newWindowsFS(t)
	who := fs.DefaultUser()

	require.NoError(t, fs.Create(mustPath(t, fs, `C:\dir`), inmemfs.KindDirectory, who, nil))

	lower, err := inmemfs.NewPath(fs, `c:\dir`)
	require.NoError(t, err)

	attrs, err := fs.Stat(lower, who, false)
	require.NoError(t, err)
	require.True(t, attrs.IsDirectory)
}

// Roots() returns drive letters in the order they were declared in
// Configuration.Roots, not map iteration order, and does so
// consistently across repeated calls.
func TestRootsReturnedInCreationOrder(t *testing.T) {
	cfg := inmemfs.Configuration{
		Flavor:          inmemfs.WINDOWS,
		Separator:       '\\',
		Roots:           []string{`D:\`, `C:\`, `E:\`},
		CaseSensitivity: inmemfs.InsensitiveASCII,
	}

	fs, err := engine.New("memory:roots-order", cfg)
	require.NoError(t, err)

	want := []string{`D:\`, `C:\`, `E:\`}

	for i := 0; i < 10; i++ {
		require.Equal(t, want, fs.Roots())
	}
}

func TestSessionPushPopOverridesActingPrincipal(t *testing.T) {
	fs := newPosixFS(t)

	alice := fs.DefaultUser()
	bob, ok := fs.User("bob")
	require.True(t, ok)

	s := fs.NewSession()
	require.True(t, s.Current().Equal(alice))

	s.Push(bob)
	require.True(t, s.Current().Equal(bob))

	s.Pop()
	require.True(t, s.Current().Equal(alice))
}

func TestJoinAddsGroupMembership(t *testing.T) {
	fs := newPosixFS(t, inmemfs.ViewPosix)

	bob, ok := fs.User("bob")
	require.True(t, ok)

	staff, ok := fs.Group("staff")
	require.True(t, ok)

	fs.Join(bob, staff)

	path := mustPath(t, fs, "/f")
	require.NoError(t, fs.Create(path, inmemfs.KindFile, fs.DefaultUser(), map[string]any{
		"posix:group":       staff,
		"posix:permissions": uint16(0o640),
	}))

	require.NoError(t, fs.CheckAccess(path, inmemfs.Read, bob))
	require.ErrorIs(t, fs.CheckAccess(path, inmemfs.Write, bob), inmemfs.AccessDenied)
}
