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

func TestTreeGeneratorGenerateIsIdempotent(t *testing.T) {
	g := engine.NewTreeGenerator(engine.TreeOptions{Dirs: 5, Files: 5, Symlinks: 2, MaxFileSize: 16, MaxDepth: 3})

	g.Generate()
	dirs := g.Dirs()

	g.Generate()
	require.Equal(t, len(dirs), len(g.Dirs()))
}

func TestTreeGeneratorPopulateMaterializesTree(t *testing.T) {
	fs := newPosixFS(t)
	who := fs.DefaultUser()

	require.NoError(t, fs.Create(mustPath(t, fs, "/base"), inmemfs.KindDirectory, who, nil))

	g := engine.NewTreeGenerator(engine.TreeOptions{Dirs: 4, Files: 4, Symlinks: 1, MaxFileSize: 32, MaxDepth: 2})

	require.NoError(t, g.Populate(fs, mustPath(t, fs, "/base"), who))

	names, err := fs.ListDirectory(mustPath(t, fs, "/base"), who, nil)
	require.NoError(t, err)
	require.NotEmpty(t, names)
}

func TestTreeGeneratorClampsNegativeCounts(t *testing.T) {
	g := engine.NewTreeGenerator(engine.TreeOptions{Dirs: -3, Files: -1, Symlinks: -1, MaxDepth: -1, MaxFileSize: -1})
	g.Generate()

	require.Empty(t, g.Dirs())
	require.Empty(t, g.Files())
}
