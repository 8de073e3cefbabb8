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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteStoreWriteWithinExistingData(t *testing.T) {
	b := newByteStore()
	b.write(0, []byte("hello"))

	n := b.write(1, []byte("E"))
	require.Equal(t, 1, n)
	require.Equal(t, "hEllo", string(b.snapshot()))
}

func TestByteStoreWritePastTailZeroFillsGap(t *testing.T) {
	b := newByteStore()
	b.write(3, []byte("x"))

	require.Equal(t, int64(4), b.size())
	require.Equal(t, append(make([]byte, 3), 'x'), b.snapshot())
}

func TestByteStoreReadPastEndReturnsZero(t *testing.T) {
	b := newByteStore()
	b.write(0, []byte("ab"))

	n := b.read(10, make([]byte, 4))
	require.Equal(t, 0, n)

	n = b.read(-1, make([]byte, 4))
	require.Equal(t, 0, n)
}

func TestByteStoreReadPartialAtTail(t *testing.T) {
	b := newByteStore()
	b.write(0, []byte("abcdef"))

	buf := make([]byte, 4)
	n := b.read(4, buf)
	require.Equal(t, 2, n)
	require.Equal(t, "ef", string(buf[:n]))
}

// Growing via truncate is a no-op; shrinking drops the tail.
func TestByteStoreTruncate(t *testing.T) {
	b := newByteStore()
	b.write(0, []byte("hello"))

	b.truncate(100)
	require.Equal(t, int64(5), b.size())

	b.truncate(2)
	require.Equal(t, int64(2), b.size())
	require.Equal(t, "he", string(b.snapshot()))
}

func TestByteStoreSnapshotIsDefensiveCopy(t *testing.T) {
	b := newByteStore()
	b.write(0, []byte("hello"))

	snap := b.snapshot()
	snap[0] = 'X'

	require.Equal(t, "hello", string(b.snapshot()))
}
