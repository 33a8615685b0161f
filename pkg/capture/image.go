package capture

import (
	"os"
	"time"

	"github.com/teslashibe/go-capture/internal/log"
	"gocv.io/x/gocv"
)

// imageReader serves a single still image: once when not looping, forever
// when looping. The decoded frame is cached and cloned on every Read so the
// caller can mutate or Close its copy freely.
type imageReader struct {
	img     gocv.Mat
	loop    bool
	canRead bool
	stats   Stats
}

func newImageReader(input string, loop bool) (*imageReader, error) {
	start := time.Now()

	info, err := os.Stat(input)
	if err != nil || info.IsDir() {
		return nil, wrongKind("can't find the image by %s", input)
	}

	img := gocv.IMRead(input, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return nil, openFailed("can't open the image from %s", input)
	}

	r := &imageReader{img: img, loop: loop, canRead: true}
	r.stats.update(start)
	log.Debug("image source ready", "input", input, "width", img.Cols(), "height", img.Rows())
	return r, nil
}

func (r *imageReader) Read() (gocv.Mat, error) {
	if r.loop {
		return r.img.Clone(), nil
	}
	if r.canRead {
		r.canRead = false
		return r.img.Clone(), nil
	}
	return gocv.NewMat(), nil
}

func (r *imageReader) FPS() float64 { return 1.0 }

func (r *imageReader) Type() SourceType { return TypeImage }

func (r *imageReader) Stats() Stats { return r.stats }

func (r *imageReader) Close() error { return r.img.Close() }
