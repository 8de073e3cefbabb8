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

package inmemfs

// Kind identifies the class of failure a filesystem operation returns.
// It implements error so it can be compared directly or matched with
// errors.Is.
type Kind int

const (
	_ Kind = iota
	NoSuchFile
	AlreadyExists
	NotADirectory
	IsADirectory
	DirectoryNotEmpty
	AccessDenied
	TooManyLinks
	InvalidPath
	InvalidConfiguration
	BufferTooSmall
	NonWritable
	Unsupported
	ClosedFilesystem
	ClosedWatch
	NotFound
	InvalidOperation
)

var kindText = map[Kind]string{
	NoSuchFile:           "no such file or directory",
	AlreadyExists:        "file already exists",
	NotADirectory:        "not a directory",
	IsADirectory:         "is a directory",
	DirectoryNotEmpty:    "directory not empty",
	AccessDenied:         "access denied",
	TooManyLinks:         "too many levels of symbolic links",
	InvalidPath:          "invalid path",
	InvalidConfiguration: "invalid configuration",
	BufferTooSmall:       "buffer too small",
	NonWritable:          "file not opened for writing",
	Unsupported:          "unsupported operation",
	ClosedFilesystem:     "filesystem closed",
	ClosedWatch:          "watch closed",
	NotFound:             "filesystem identifier not found",
	InvalidOperation:     "invalid operation",
}

// Error implements the error interface.
func (k Kind) Error() string {
	if s, ok := kindText[k]; ok {
		return s
	}

	return "unknown error"
}

// Is reports whether err is the same Kind, so that
// errors.Is(err, inmemfs.NoSuchFile) works through any wrapping
// *fs.PathError or *os.LinkError the provider layer adds.
func (k Kind) Is(err error) bool {
	o, ok := err.(Kind)
	return ok && o == k
}
