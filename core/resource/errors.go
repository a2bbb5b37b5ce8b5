// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package resource

import "go.trai.ch/zerr"

// package errors
var (
	// ErrInvalidID is returned when a resource identifier can not be resolved to a location.
	ErrInvalidID = zerr.New("invalid resource id")

	// ErrNotFound is returned when no source holds the requested resource.
	ErrNotFound = zerr.New("resource not found")

	// ErrDecode is returned when a resource was read but could not be decoded.
	ErrDecode = zerr.New("resource decode failed")

	// ErrCompile is returned when a shader could not be created by the display.
	ErrCompile = zerr.New("shader compilation failed")

	// ErrPoolClosed is returned when work is submitted to a closed pool.
	ErrPoolClosed = zerr.New("loader pool closed")
)

func withResource(err error, id ID) error {
	return zerr.With(err, "resource", id.String())
}
