// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package resource turns resource identifiers into GPU ready textures and shaders.
//
// Loading is split between the goroutine that owns the graphics context and
// a fixed pool of loader goroutines. Textures are read and decoded on the pool,
// the decoded pixels are handed back and uploaded on the next Tick, which only
// the owner of the Display can call. Shaders need the graphics context for
// compilation, so they are loaded synchronously. Both caches coalesce requests
// for the same resource.
package resource

import (
	"path"
	"strings"

	"github.com/devblok/litecraft/core"
	"go.trai.ch/zerr"
)

// DefaultNamespace is used for identifiers given without a namespace.
const DefaultNamespace = "minecraft"

// ID identifies a loadable asset. It is a comparable value
// and is used as the cache key everywhere.
type ID struct {
	Namespace string
	Path      string
}

// NewID creates an ID and validates it.
func NewID(namespace, p string) (ID, error) {
	id := ID{Namespace: namespace, Path: p}
	if err := id.Validate(); err != nil {
		return ID{}, err
	}
	return id, nil
}

// ParseID parses a "namespace:path" string. Without a namespace
// the DefaultNamespace is assumed.
func ParseID(s string) (ID, error) {
	namespace, p, found := strings.Cut(s, ":")
	if !found {
		namespace, p = DefaultNamespace, s
	}
	return NewID(namespace, p)
}

// TextureID returns the identifier of a png texture by its short name,
// for example "gui/widgets".
func TextureID(namespace, name string) ID {
	return ID{Namespace: namespace, Path: "textures/" + name + ".png"}
}

// ShaderStageID returns the identifier of a compiled shader stage.
func ShaderStageID(namespace, name string, shaderType core.ShaderType) ID {
	return ID{Namespace: namespace, Path: "shaders/" + core.ShaderFileName(name, shaderType)}
}

// Validate checks that the ID resolves to a location inside its namespace.
func (id ID) Validate() error {
	switch {
	case id.Namespace == "" || strings.ContainsAny(id.Namespace, "/\\:"):
		return zerr.With(zerr.Wrap(ErrInvalidID, "bad namespace"), "namespace", id.Namespace)
	case id.Path == "":
		return zerr.With(zerr.Wrap(ErrInvalidID, "empty path"), "namespace", id.Namespace)
	case strings.HasPrefix(id.Path, "/") || strings.Contains(id.Path, "\\"):
		return zerr.With(zerr.Wrap(ErrInvalidID, "path must be relative and slash separated"), "path", id.Path)
	}
	for _, segment := range strings.Split(id.Path, "/") {
		if segment == ".." {
			return zerr.With(zerr.Wrap(ErrInvalidID, "path escapes namespace"), "path", id.Path)
		}
	}
	return nil
}

// Location returns the slash separated location of the asset,
// relative to the root of any Source.
func (id ID) Location() string {
	return path.Join(id.Namespace, id.Path)
}

// String implements fmt.Stringer
func (id ID) String() string {
	return id.Namespace + ":" + id.Path
}
