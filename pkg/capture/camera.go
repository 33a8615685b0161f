package capture

import (
	"errors"
	"image"
	"math"
	"strconv"
	"time"

	"github.com/teslashibe/go-capture/internal/log"
	"gocv.io/x/gocv"
)

// grabber is the part of an open capture session the camera reader drives
// after construction.
type grabber interface {
	Read(m *gocv.Mat) bool
	Get(prop gocv.VideoCaptureProperties) float64
	Close() error
}

// cameraReader wraps a live camera session identified by a numeric device
// index. Unlike file-backed sources, a camera that stops producing frames
// mid-stream is a hardware or driver fault, not end-of-stream, so Read
// surfaces it as a hard error.
type cameraReader struct {
	cap grabber

	nextImg int
	limit   int
	stats   Stats
}

func newCameraReader(input string, loop bool, limit int, resolution image.Point) (*cameraReader, error) {
	index, err := strconv.Atoi(input)
	if err != nil {
		return nil, wrongKind("can't find the camera %s", input)
	}

	cap, err := gocv.VideoCaptureDevice(index)
	if err != nil {
		return nil, openFailed("can't open the camera from %s", input)
	}

	if loop {
		// A looping camera never runs out of frames.
		limit = math.MaxInt
	}

	// Keep latency low: single-frame buffer, MJPG so USB cameras can
	// deliver the requested resolution at full rate.
	cap.Set(gocv.VideoCaptureBufferSize, 1)
	cap.Set(gocv.VideoCaptureFrameWidth, float64(resolution.X))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(resolution.Y))
	cap.Set(gocv.VideoCaptureAutoFocus, 1)
	cap.Set(gocv.VideoCaptureFOURCC, cap.ToCodec("MJPG"))

	log.Debug("camera source ready", "device", index,
		"width", cap.Get(gocv.VideoCaptureFrameWidth),
		"height", cap.Get(gocv.VideoCaptureFrameHeight))
	return &cameraReader{cap: cap, limit: limit}, nil
}

func (r *cameraReader) Read() (gocv.Mat, error) {
	start := time.Now()

	if r.nextImg >= r.limit {
		return gocv.NewMat(), nil
	}

	img := gocv.NewMat()
	if !r.cap.Read(&img) {
		img.Close()
		return gocv.NewMat(), errors.New("the image can't be captured from the camera")
	}
	r.nextImg++
	r.stats.update(start)
	return img, nil
}

func (r *cameraReader) FPS() float64 {
	if fps := r.cap.Get(gocv.VideoCaptureFPS); fps > 0 {
		return fps
	}
	return 30
}

func (r *cameraReader) Type() SourceType { return TypeCamera }

func (r *cameraReader) Stats() Stats { return r.stats }

func (r *cameraReader) Close() error { return r.cap.Close() }
