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
	"github.com/stretchr/testify/require"
)

func TestMoveAcrossDirectories(t *testing.T) {
	fs := newPosixFS(t)
	who := fs.DefaultUser()

	require.NoError(t, fs.Create(mustPath(t, fs, "/src"), inmemfs.KindDirectory, who, nil))
	require.NoError(t, fs.Create(mustPath(t, fs, "/dst"), inmemfs.KindDirectory, who, nil))
	require.NoError(t, fs.Create(mustPath(t, fs, "/src/file"), inmemfs.KindFile, who, nil))

	err := fs.Move(mustPath(t, fs, "/src/file"), mustPath(t, fs, "/dst/file"), 0, who)
	require.NoError(t, err)

	_, err = fs.Stat(mustPath(t, fs, "/src/file"), who, false)
	require.ErrorIs(t, err, inmemfs.NoSuchFile)

	attrs, err := fs.Stat(mustPath(t, fs, "/dst/file"), who, false)
	require.NoError(t, err)
	require.True(t, attrs.IsRegularFile)
}

func TestMoveRejectsExistingTargetWithoutReplace(t *testing.T) {
	fs := newPosixFS(t)
	who := fs.DefaultUser()

	require.NoError(t, fs.Create(mustPath(t, fs, "/a"), inmemfs.KindFile, who, nil))
	require.NoError(t, fs.Create(mustPath(t, fs, "/b"), inmemfs.KindFile, who, nil))

	err := fs.Move(mustPath(t, fs, "/a"), mustPath(t, fs, "/b"), 0, who)
	require.ErrorIs(t, err, inmemfs.AlreadyExists)

	err = fs.Move(mustPath(t, fs, "/a"), mustPath(t, fs, "/b"), inmemfs.MoveReplaceExisting, who)
	require.NoError(t, err)
}

func TestMoveIntoOwnDescendantFails(t *testing.T) {
	fs := newPosixFS(t)
	who := fs.DefaultUser()

	require.NoError(t, fs.Create(mustPath(t, fs, "/a"), inmemfs.KindDirectory, who, nil))
	require.NoError(t, fs.Create(mustPath(t, fs, "/a/b"), inmemfs.KindDirectory, who, nil))

	err := fs.Move(mustPath(t, fs, "/a"), mustPath(t, fs, "/a/b/c"), 0, who)
	require.ErrorIs(t, err, inmemfs.InvalidOperation)
}

// copy(src, dst, COPY_ATTRIBUTES) followed by
// reading a configured-view field on dst returns the same value as on
// src.
func TestCopyWithAttributesPreservesFields(t *testing.T) {
	fs := newPosixFS(t, inmemfs.ViewDos)
	who := fs.DefaultUser()

	src := mustPath(t, fs, "/src")
	require.NoError(t, fs.Create(src, inmemfs.KindFile, who, nil))
	require.NoError(t, fs.SetAttribute(src, "dos:hidden", true, who))

	dst := mustPath(t, fs, "/dst")
	require.NoError(t, fs.Copy(src, dst, inmemfs.CopyAttributes, who))

	srcAttrs, err := fs.ReadAttributes(src, "dos:hidden", who)
	require.NoError(t, err)

	dstAttrs, err := fs.ReadAttributes(dst, "dos:hidden", who)
	require.NoError(t, err)

	require.Equal(t, srcAttrs["hidden"], dstAttrs["hidden"])
}

func TestCopyWithoutAttributesStartsFresh(t *testing.T) {
	fs := newPosixFS(t, inmemfs.ViewDos)
	who := fs.DefaultUser()

	src := mustPath(t, fs, "/src")
	require.NoError(t, fs.Create(src, inmemfs.KindFile, who, nil))
	require.NoError(t, fs.SetAttribute(src, "dos:hidden", true, who))

	dst := mustPath(t, fs, "/dst")
	require.NoError(t, fs.Copy(src, dst, 0, who))

	dstAttrs, err := fs.ReadAttributes(dst, "dos:hidden", who)
	require.NoError(t, err)
	require.Equal(t, false, dstAttrs["hidden"])
}

func TestCopyPreservesFileContent(t *testing.T) {
	fs := newPosixFS(t)
	who := fs.DefaultUser()

	src := mustPath(t, fs, "/src")
	h, err := fs.Open(src, inmemfs.OpenWrite|inmemfs.OpenCreate, who, nil)
	require.NoError(t, err)

	_, err = h.Write([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	dst := mustPath(t, fs, "/dst")
	require.NoError(t, fs.Copy(src, dst, 0, who))

	dh, err := fs.Open(dst, inmemfs.OpenRead, who, nil)
	require.NoError(t, err)

	buf := make([]byte, 7)
	n, err := dh.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "payload", string(buf))
}
