package bintje

import "errors"

// Package errors. The core is pure arithmetic; these cover the few
// precondition violations that are detectable at API boundaries.
var (
	// ErrInvalidDimensions is returned when a canvas width or height is zero.
	ErrInvalidDimensions = errors.New("bintje: invalid canvas dimensions")

	// ErrBufferSize is returned when a target pixel buffer does not match
	// the canvas dimensions.
	ErrBufferSize = errors.New("bintje: pixel buffer size mismatch")

	// ErrTooManyLines is returned when a single path flattens to more line
	// segments than tile entries can reference.
	ErrTooManyLines = errors.New("bintje: line count overflows tile index")
)
