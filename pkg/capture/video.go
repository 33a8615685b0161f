package capture

import (
	"time"

	"github.com/teslashibe/go-capture/internal/log"
	"gocv.io/x/gocv"
)

// videoReader wraps an OpenCV video decoding session. It seeks to the
// configured start frame, advances frame-by-frame up to the per-pass limit,
// and loops by re-seeking when asked to.
type videoReader struct {
	cap *gocv.VideoCapture

	nextImg int
	start   int
	limit   int
	loop    bool
	stats   Stats
}

func newVideoReader(input string, loop bool, startFrame, limit int) (*videoReader, error) {
	cap, err := gocv.VideoCaptureFile(input)
	if err != nil {
		return nil, wrongKind("can't open the video from %s", input)
	}

	r := &videoReader{cap: cap, start: startFrame, limit: limit, loop: loop}
	if !r.seek(startFrame) {
		cap.Close()
		return nil, openFailed("can't set the frame to begin with")
	}
	log.Debug("video source ready", "input", input, "fps", r.FPS())
	return r, nil
}

// seek positions the decoder at the given frame index and reports whether
// the backend honored it.
func (r *videoReader) seek(frame int) bool {
	r.cap.Set(gocv.VideoCapturePosFrames, float64(frame))
	return int(r.cap.Get(gocv.VideoCapturePosFrames)) == frame
}

func (r *videoReader) Read() (gocv.Mat, error) {
	start := time.Now()

	if r.nextImg >= r.limit {
		if r.loop && r.seek(r.start) {
			r.nextImg = 1
			img := gocv.NewMat()
			r.cap.Read(&img)
			r.stats.update(start)
			return img, nil
		}
		return gocv.NewMat(), nil
	}

	img := gocv.NewMat()
	if !r.cap.Read(&img) && r.loop && r.seek(r.start) {
		// Decode failed mid-stream: restart the pass from the start frame.
		r.nextImg = 1
		r.cap.Read(&img)
	} else {
		r.nextImg++
	}
	r.stats.update(start)
	return img, nil
}

func (r *videoReader) FPS() float64 { return r.cap.Get(gocv.VideoCaptureFPS) }

func (r *videoReader) Type() SourceType { return TypeVideo }

func (r *videoReader) Stats() Stats { return r.stats }

func (r *videoReader) Close() error { return r.cap.Close() }
