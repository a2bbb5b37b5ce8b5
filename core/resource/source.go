// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/devblok/litecraft/core"
	"github.com/devblok/litecraft/utility/kar"
	"github.com/gobuffalo/packr"
	"go.trai.ch/zerr"
	"golang.org/x/exp/mmap"
)

// Source resolves resource identifiers to their contents.
// Implementations must be safe for concurrent use, they are read
// from the loader pool. A missing resource is reported with ErrNotFound.
type Source interface {
	Open(id ID) (io.ReadCloser, error)
}

// ReadAll reads the entire resource identified by id from s.
func ReadAll(s Source, id ID) ([]byte, error) {
	rc, err := s.Open(id)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, withResource(zerr.Wrap(err, "read failed"), id)
	}
	return data, nil
}

// NewDirSource creates a Source reading loose files under root.
func NewDirSource(root string) *DirSource {
	return &DirSource{root: root}
}

// DirSource reads resources from a directory tree laid out as
// root/namespace/path.
type DirSource struct {
	root string
}

// Open implements Source
func (s *DirSource) Open(id ID) (io.ReadCloser, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(id.Location())))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, withResource(zerr.Wrap(ErrNotFound, s.String()), id)
	} else if err != nil {
		return nil, withResource(zerr.Wrap(err, "open failed"), id)
	}
	return f, nil
}

func (s *DirSource) String() string {
	return "dir " + s.root
}

// OpenArchive memory maps the kar archive at filename and creates
// a Source out of it. Close must be called to unmap the file.
func OpenArchive(filename string) (*ArchiveSource, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to map archive"), "archive", filename)
	}

	source, err := NewArchiveSource(filename, r)
	if err != nil {
		r.Close()
		return nil, err
	}
	source.closer = r
	return source, nil
}

// NewArchiveSource creates a Source reading from an already opened kar archive.
func NewArchiveSource(name string, r io.ReaderAt) (*ArchiveSource, error) {
	archive, err := kar.Open(r)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open archive"), "archive", name)
	}
	return &ArchiveSource{
		name:    name,
		archive: archive,
	}, nil
}

// ArchiveSource reads resources from a kar archive, files are
// stored by their location.
type ArchiveSource struct {
	name    string
	archive *kar.Archive
	closer  io.Closer
}

// Open implements Source
func (s *ArchiveSource) Open(id ID) (io.ReadCloser, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r, err := s.archive.Open(id.Location())
	if errors.Is(err, kar.ErrFileNotFound) {
		return nil, withResource(zerr.Wrap(ErrNotFound, s.String()), id)
	} else if err != nil {
		return nil, withResource(zerr.Wrap(err, "archive read failed"), id)
	}
	return io.NopCloser(r), nil
}

// Close unmaps the archive if it was opened by OpenArchive
func (s *ArchiveSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func (s *ArchiveSource) String() string {
	return "archive " + s.name
}

// NewBoxSource creates a Source out of a packr box,
// which is how resources bundled into the binary are read.
func NewBoxSource(box packr.Box) *BoxSource {
	return &BoxSource{box: box}
}

// BoxSource reads resources from a packr box.
type BoxSource struct {
	box packr.Box
}

// Open implements Source
func (s *BoxSource) Open(id ID) (io.ReadCloser, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	data, err := s.box.Find(id.Location())
	if err != nil {
		return nil, withResource(zerr.Wrap(ErrNotFound, s.String()), id)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *BoxSource) String() string {
	return "box " + s.box.Path
}

// Sources looks a resource up in every Source in order,
// the first one holding it wins.
type Sources []Source

// NewSources builds the sources described by the configuration.
// Archives take precedence over loose files, extra sources are
// consulted last.
func NewSources(cfg core.AssetsConfiguration, extra ...Source) (Sources, error) {
	var sources Sources
	for _, filename := range cfg.Archives {
		archive, err := OpenArchive(filename)
		if err != nil {
			sources.Close()
			return nil, err
		}
		sources = append(sources, archive)
	}
	if cfg.Root != "" {
		sources = append(sources, NewDirSource(cfg.Root))
	}
	return append(sources, extra...), nil
}

// Open implements Source
func (s Sources) Open(id ID) (io.ReadCloser, error) {
	for _, source := range s {
		rc, err := source.Open(id)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, withResource(zerr.Wrap(ErrNotFound, fmt.Sprintf("searched %d sources", len(s))), id)
}

// Close closes every source that needs closing
func (s Sources) Close() error {
	var errs []error
	for _, source := range s {
		if closer, ok := source.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
