// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"golang.org/x/exp/mmap"

	"github.com/devblok/litecraft/utility/kar"
)

func writeArchive(c *qt.C) string {
	data := build(c, map[string]string{
		"test/test1.txt": "this is a test",
		"test/test2.txt": "this is another test",
	})
	name := filepath.Join(c.TempDir(), "opentest.kar")
	c.Assert(os.WriteFile(name, data, 0o644), qt.IsNil)
	return name
}

func TestOpen(t *testing.T) {
	c := qt.New(t)
	r, err := os.Open(writeArchive(c))
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)
	c.Assert(ar.Has("test/test1.txt"), qt.IsTrue)
	c.Assert(ar.Has("test/test3.txt"), qt.IsFalse)
}

func TestOpenmmap(t *testing.T) {
	c := qt.New(t)
	r, err := mmap.Open(writeArchive(c))
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)

	f, err := ar.ReadAll("test/test2.txt")
	c.Assert(err, qt.IsNil)
	c.Assert(string(f), qt.Equals, "this is another test")
}

func TestOpenAndRead(t *testing.T) {
	c := qt.New(t)
	r, err := os.Open(writeArchive(c))
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)

	for name, expected := range map[string]string{
		"test/test1.txt": "this is a test",
		"test/test2.txt": "this is another test",
	} {
		f, err := ar.Open(name)
		c.Assert(err, qt.IsNil)

		result := new(bytes.Buffer)
		_, err = result.ReadFrom(f)
		c.Assert(err, qt.IsNil)
		c.Assert(result.String(), qt.Equals, expected)
	}
}

func TestOpenMissingFile(t *testing.T) {
	c := qt.New(t)
	r, err := mmap.Open(writeArchive(c))
	c.Assert(err, qt.IsNil)
	defer r.Close()

	ar, err := kar.Open(r)
	c.Assert(err, qt.IsNil)

	_, err = ar.Open("test/missing.txt")
	c.Assert(err, qt.ErrorIs, kar.ErrFileNotFound)
}

func TestOpenNotAnArchive(t *testing.T) {
	c := qt.New(t)
	_, err := kar.Open(bytes.NewReader([]byte("PK\x03\x04 definitely a zip")))
	c.Assert(err, qt.ErrorIs, kar.ErrFileFormat)

	_, err = kar.Open(bytes.NewReader([]byte("KA")))
	c.Assert(err, qt.ErrorIs, kar.ErrFileFormat)

	truncated := append(kar.Magic[:], 0x10, 0, 0, 0, 0, 0, 0, 0, 1, 2)
	_, err = kar.Open(bytes.NewReader(truncated))
	c.Assert(err, qt.ErrorIs, kar.ErrFileFormat)

	for _, size := range []int64{1 << 50, math.MaxInt64} {
		corrupt := append(kar.Magic[:], make([]byte, kar.HeaderSizeNumberLength)...)
		binary.LittleEndian.PutUint64(corrupt[kar.MagicLength:], uint64(size))
		_, err = kar.Open(bytes.NewReader(append(corrupt, "junk"...)))
		c.Assert(err, qt.ErrorIs, kar.ErrFileFormat)
	}
}
