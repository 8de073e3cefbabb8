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

func newPosixFS(t *testing.T, views ...inmemfs.ViewName) *engine.FS {
	t.Helper()

	viewSet := make(map[inmemfs.ViewName]struct{}, len(views))
	for _, v := range views {
		viewSet[v] = struct{}{}
	}

	cfg := inmemfs.Configuration{
		Flavor:           inmemfs.POSIX,
		Separator:        '/',
		Roots:            []string{"/"},
		CaseSensitivity:  inmemfs.Sensitive,
		AdditionalViews:  viewSet,
		Users:            []string{"alice", "bob"},
		Groups:           []string{"staff"},
		DefaultUser:      "alice",
		DefaultGroup:     "staff",
		Umask:            0o022,
		DefaultDirectory: "/",
	}

	fs, err := engine.New("memory:test", cfg)
	require.NoError(t, err)

	return fs
}

func newWindowsFS(t *testing.T) *engine.FS {
	t.Helper()

	cfg := inmemfs.Configuration{
		Flavor:          inmemfs.WINDOWS,
		Separator:       '\\',
		Roots:           []string{"C:\\"},
		CaseSensitivity: inmemfs.InsensitiveASCII,
		Users:           []string{"alice"},
		DefaultUser:     "alice",
		DefaultDirectory: `C:\`,
	}

	fs, err := engine.New("memory:windows-test", cfg)
	require.NoError(t, err)

	return fs
}

func mustPath(t *testing.T, fs *engine.FS, raw string) inmemfs.Path {
	t.Helper()

	p, err := inmemfs.NewPath(fs, raw)
	require.NoError(t, err)

	return p
}
