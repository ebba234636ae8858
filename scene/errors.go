package scene

import (
	"errors"
	"fmt"
)

// Sentinel errors for the scene package.
var (
	// ErrInvalidClipReference is returned (wrapped in *InvalidClipReferenceError)
	// when a draw path names a clip path id not present in the scene.
	ErrInvalidClipReference = errors.New("scene: draw path references a clip path not in the scene")

	// ErrAlphaTileOverflow is returned when a render stage's alpha-tile
	// index counter would exceed the u16 index space (65535 tiles).
	ErrAlphaTileOverflow = errors.New("scene: alpha tile index overflow (more than 65535 alpha tiles in one stage)")
)

// InvalidClipReferenceError reports which draw path referenced which
// missing clip path. It wraps ErrInvalidClipReference so callers can use
// errors.Is(err, scene.ErrInvalidClipReference).
type InvalidClipReferenceError struct {
	DrawPath DrawPathID
	ClipPath ClipPathID
}

func (e *InvalidClipReferenceError) Error() string {
	return fmt.Sprintf("scene: draw path %d references missing clip path %d", e.DrawPath, e.ClipPath)
}

// Unwrap allows errors.Is(err, ErrInvalidClipReference) to succeed.
func (e *InvalidClipReferenceError) Unwrap() error {
	return ErrInvalidClipReference
}

// AlphaTileOverflowError reports which render stage overflowed its alpha
// tile index counter.
type AlphaTileOverflowError struct {
	Stage string
}

func (e *AlphaTileOverflowError) Error() string {
	return fmt.Sprintf("scene: alpha tile overflow in stage %s", e.Stage)
}

// Unwrap allows errors.Is(err, ErrAlphaTileOverflow) to succeed.
func (e *AlphaTileOverflowError) Unwrap() error {
	return ErrAlphaTileOverflow
}
