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

	"github.com/inmemfs/inmemfs"
)

// FileHandle is an open cursor over a fileEntry's content: it owns a
// reference to the entry directly, independent of the entry's place
// (or absence) in the directory tree, so a concurrent delete never
// invalidates a handle already open on the file.
type FileHandle struct {
	fs     *FS
	file   *fileEntry
	modes  inmemfs.OpenMode
	closed int32 // atomic

	posMu sync.Mutex
	pos   int64
}

func newFileHandle(fs *FS, file *fileEntry, modes inmemfs.OpenMode) *FileHandle {
	return &FileHandle{fs: fs, file: file, modes: modes}
}

func (h *FileHandle) lockPos()   { h.posMu.Lock() }
func (h *FileHandle) unlockPos() { h.posMu.Unlock() }

func (h *FileHandle) isClosed() bool { return atomic.LoadInt32(&h.closed) != 0 }

// Close marks the handle terminal. It is idempotent and never fails;
// the underlying content is released once every handle referencing
// the entry is closed, which in this in-memory model happens
// naturally once nothing still references the fileEntry.
func (h *FileHandle) Close() error {
	atomic.StoreInt32(&h.closed, 1)
	return nil
}

// Read copies from the current position into p and advances it.
func (h *FileHandle) Read(p []byte) (int, error) {
	if h.isClosed() {
		return 0, inmemfs.ClosedFilesystem
	}

	if h.modes&inmemfs.OpenRead == 0 {
		return 0, inmemfs.NonWritable
	}

	h.lockPos()
	defer h.unlockPos()

	h.file.RLock()
	n := h.file.content.read(h.pos, p)
	h.file.touchAccess(now())
	h.file.RUnlock()

	h.pos += int64(n)

	return n, nil
}

// ReadAt reads length bytes at an explicit offset, leaving the
// handle's own position untouched.
func (h *FileHandle) ReadAt(position int64, p []byte) (int, error) {
	if h.isClosed() {
		return 0, inmemfs.ClosedFilesystem
	}

	if h.modes&inmemfs.OpenRead == 0 {
		return 0, inmemfs.NonWritable
	}

	h.file.RLock()
	n := h.file.content.read(position, p)
	h.file.touchAccess(now())
	h.file.RUnlock()

	return n, nil
}

// Write copies p into the content at the current position (or at
// size(), atomically under the entry's write lock, when the handle was
// opened APPEND) and advances the position.
func (h *FileHandle) Write(p []byte) (int, error) {
	if h.isClosed() {
		return 0, inmemfs.ClosedFilesystem
	}

	if h.modes&inmemfs.OpenWrite == 0 {
		return 0, inmemfs.NonWritable
	}

	h.lockPos()
	defer h.unlockPos()

	h.file.Lock()

	at := h.pos
	if h.modes&inmemfs.OpenAppend != 0 {
		at = h.file.content.size()
	}

	n := h.file.content.write(at, p)
	h.file.touch(now())
	h.file.Unlock()

	h.pos = at + int64(n)

	return n, nil
}

// WriteAt writes at an explicit offset, ignoring APPEND, and leaves the
// handle's position untouched.
func (h *FileHandle) WriteAt(position int64, p []byte) (int, error) {
	if h.isClosed() {
		return 0, inmemfs.ClosedFilesystem
	}

	if h.modes&inmemfs.OpenWrite == 0 {
		return 0, inmemfs.NonWritable
	}

	h.file.Lock()
	n := h.file.content.write(position, p)
	h.file.touch(now())
	h.file.Unlock()

	return n, nil
}

// Seek repositions the handle, following io.Seeker's whence
// conventions (0 = start, 1 = current, 2 = end).
func (h *FileHandle) Seek(offset int64, whence int) (int64, error) {
	if h.isClosed() {
		return 0, inmemfs.ClosedFilesystem
	}

	h.lockPos()
	defer h.unlockPos()

	var base int64

	switch whence {
	case 0:
		base = 0
	case 1:
		base = h.pos
	case 2:
		h.file.RLock()
		base = h.file.content.size()
		h.file.RUnlock()
	default:
		return 0, inmemfs.InvalidOperation
	}

	next := base + offset
	if next < 0 {
		return 0, inmemfs.InvalidOperation
	}

	h.pos = next

	return next, nil
}

// Position returns the handle's current offset.
func (h *FileHandle) Position() int64 {
	h.lockPos()
	defer h.unlockPos()

	return h.pos
}

// Truncate resizes the underlying content; growth beyond the current
// size is a no-op per the content store's contract.
func (h *FileHandle) Truncate(size int64) error {
	if h.isClosed() {
		return inmemfs.ClosedFilesystem
	}

	if h.modes&inmemfs.OpenWrite == 0 {
		return inmemfs.NonWritable
	}

	h.file.Lock()
	h.file.content.truncate(size)
	h.file.touch(now())
	h.file.Unlock()

	return nil
}

// Size returns the current content length.
func (h *FileHandle) Size() int64 {
	h.file.RLock()
	defer h.file.RUnlock()

	return h.file.content.size()
}

// Stat returns a snapshot of the handle's own entry: its current size
// and timestamps, independent of whether the entry is still reachable
// from the directory tree.
func (h *FileHandle) Stat() inmemfs.BasicAttributes {
	return basicOf(h.file)
}
