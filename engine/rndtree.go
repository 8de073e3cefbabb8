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
	"strconv"

	"github.com/inmemfs/inmemfs"
	"github.com/valyala/fastrand"
)

// TreeOptions parameterizes a randomized tree fixture: counts of
// directories, files and symlinks, a maximum file size, and a maximum
// nesting depth.
type TreeOptions struct {
	Dirs        int
	Files       int
	Symlinks    int
	MaxFileSize int
	MaxDepth    int
}

type treeDir struct {
	components []string
	depth      int
}

type treeFile struct {
	components []string
	size       int
}

type treeSymlink struct {
	target, link []string
}

// TreeGenerator builds a randomized directory/file/symlink layout for
// stress and race tests: deterministic coverage of deep nesting and
// concurrent creation without hand-authoring every fixture path.
type TreeGenerator struct {
	opts TreeOptions

	dirs     []treeDir
	files    []treeFile
	symlinks []treeSymlink
}

// NewTreeGenerator returns a generator for opts, clamping any negative
// field to zero.
func NewTreeGenerator(opts TreeOptions) *TreeGenerator {
	if opts.Dirs < 0 {
		opts.Dirs = 0
	}

	if opts.Files < 0 {
		opts.Files = 0
	}

	if opts.Symlinks < 0 {
		opts.Symlinks = 0
	}

	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}

	if opts.MaxFileSize < 0 {
		opts.MaxFileSize = 0
	}

	return &TreeGenerator{opts: opts}
}

// Generate populates the generator's Dirs/Files/Symlinks. Calling it
// twice is a no-op; build a new generator to get a different layout.
func (g *TreeGenerator) Generate() {
	if g.dirs != nil {
		return
	}

	nameIdx := 0
	name := func(prefix string) string {
		nameIdx++
		return prefix + "-" + strconv.Itoa(nameIdx)
	}

	parents := make([]treeDir, 1, 10)
	parents[0] = treeDir{}

	dirs := make([]treeDir, g.opts.Dirs)

	for i := 0; i < g.opts.Dirs; i++ {
		parent := parents[fastrand.Uint32n(uint32(len(parents)))]

		comps := append(append([]string(nil), parent.components...), name("dir"))
		depth := parent.depth + 1

		d := treeDir{components: comps, depth: depth}
		dirs[i] = d

		if depth < g.opts.MaxDepth {
			parents = append(parents, d)
		}
	}

	g.dirs = dirs

	if g.opts.Files == 0 {
		return
	}

	files := make([]treeFile, g.opts.Files)

	for i := 0; i < g.opts.Files; i++ {
		parent := parents[fastrand.Uint32n(uint32(len(parents)))]
		comps := append(append([]string(nil), parent.components...), name("file"))

		size := 0
		if g.opts.MaxFileSize > 0 {
			size = int(fastrand.Uint32n(uint32(g.opts.MaxFileSize)))
		}

		files[i] = treeFile{components: comps, size: size}
	}

	g.files = files

	if g.opts.Symlinks == 0 {
		return
	}

	symlinks := make([]treeSymlink, g.opts.Symlinks)

	for i := 0; i < g.opts.Symlinks; i++ {
		target := files[fastrand.Uint32n(uint32(len(files)))].components
		parent := parents[fastrand.Uint32n(uint32(len(parents)))]
		link := append(append([]string(nil), parent.components...), name("symlink"))

		symlinks[i] = treeSymlink{target: target, link: link}
	}

	g.symlinks = symlinks
}

// Populate creates the generated tree under base on fs, acting as who.
// It generates the layout first if Generate has not been called yet.
func (g *TreeGenerator) Populate(fs *FS, base inmemfs.Path, who inmemfs.Principal) error {
	g.Generate()

	for _, d := range g.dirs {
		p, err := base.Join(d.components...)
		if err != nil {
			return err
		}

		if err := fs.Create(p, inmemfs.KindDirectory, who, nil); err != nil {
			return err
		}
	}

	buf := make([]byte, g.opts.MaxFileSize)
	for i := range buf {
		buf[i] = byte(fastrand.Uint32())
	}

	for _, f := range g.files {
		p, err := base.Join(f.components...)
		if err != nil {
			return err
		}

		h, err := fs.Open(p, inmemfs.OpenWrite|inmemfs.OpenCreate, who, nil)
		if err != nil {
			return err
		}

		if _, err := h.Write(buf[:f.size]); err != nil {
			h.Close()
			return err
		}

		if err := h.Close(); err != nil {
			return err
		}
	}

	for _, s := range g.symlinks {
		link, err := base.Join(s.link...)
		if err != nil {
			return err
		}

		target, err := base.Join(s.target...)
		if err != nil {
			return err
		}

		if err := fs.Symlink(link, target, who); err != nil {
			return err
		}
	}

	return nil
}

// Dirs returns the generated directory components, relative to base.
func (g *TreeGenerator) Dirs() []treeDir { return g.dirs }

// Files returns the generated file components, relative to base.
func (g *TreeGenerator) Files() []treeFile { return g.files }
