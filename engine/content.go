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

import "bytes"

// byteStore is the growable byte container backing a regular file:
// reallocate-to-grow, reslice-to-shrink, and zero-fill any gap left by a
// write past the current tail.
type byteStore struct {
	data []byte
}

func newByteStore() *byteStore { return &byteStore{} }

func (b *byteStore) size() int64 { return int64(len(b.data)) }

// read copies into p starting at position, returning the number of
// bytes copied. Reading past the end of the content returns 0 bytes
// and no error; EOF is the caller's (FileHandle's) concern.
func (b *byteStore) read(position int64, p []byte) int {
	if position < 0 || position >= int64(len(b.data)) {
		return 0
	}

	return copy(p, b.data[position:])
}

// write copies p into the store starting at position, zero-filling any
// gap between the current tail and position, and growing the store as
// needed. It returns the number of bytes written (always len(p)).
func (b *byteStore) write(position int64, p []byte) int {
	end := position + int64(len(p))
	if end > int64(len(b.data)) {
		grown := make([]byte, end)
		copy(grown, b.data)
		b.data = grown
	}

	return copy(b.data[position:end], p)
}

// truncate shrinks the store to size, dropping the tail; growing to a
// larger size is a no-op.
func (b *byteStore) truncate(size int64) {
	if size >= int64(len(b.data)) {
		return
	}

	b.data = b.data[:size]
}

// snapshot returns a defensive copy of the current content.
func (b *byteStore) snapshot() []byte {
	return bytes.Clone(b.data)
}
