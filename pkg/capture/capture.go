// Package capture provides a uniform way to pull sequential frames from
// heterogeneous inputs: a still image file, a directory of images, a video
// file, or a live camera. Open probes the input and returns whichever
// reader kind matches; callers then drive one Read loop regardless of
// where the frames come from.
//
// All decoding, demuxing and camera I/O is delegated to OpenCV via gocv.
package capture

import (
	"image"

	"gocv.io/x/gocv"
)

// SourceType identifies which kind of reader backs a Source.
type SourceType string

const (
	TypeImage  SourceType = "IMAGE"
	TypeDir    SourceType = "DIR"
	TypeVideo  SourceType = "VIDEO"
	TypeCamera SourceType = "CAMERA"
)

// Source delivers sequential frames from a single input.
//
// A Source is not safe for concurrent use: it is meant to be driven by one
// caller loop, blocking on each Read until a frame is available or the
// source is exhausted.
type Source interface {
	// Read returns the next frame. An empty Mat with a nil error means the
	// source has no more frames (not an error). A non-nil error is a fatal
	// capture fault, currently raised only by cameras that stop producing
	// frames mid-stream. The caller owns the returned Mat and must Close it.
	Read() (gocv.Mat, error)

	// FPS returns the source's native frame rate.
	FPS() float64

	// Type identifies the reader kind backing this source.
	Type() SourceType

	// Stats returns frame delivery metrics accumulated so far.
	Stats() Stats

	// Close releases the underlying decode or capture session.
	Close() error
}

// Options configure how a source is opened.
type Options struct {
	// Loop restarts the source from StartFrame once a pass completes.
	// Cameras ignore the per-pass limit entirely when looping.
	Loop bool

	// StartFrame is the number of frames (or sorted, decodable images for a
	// directory) skipped before the first delivered frame. Must not be
	// negative. Ignored by single-image inputs.
	StartFrame int

	// ReadLimit caps how many frames one pass delivers. Must be positive.
	ReadLimit int

	// Resolution is the requested capture size, used only by cameras.
	// The zero value means 1280x720.
	Resolution image.Point
}
