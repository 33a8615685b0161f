package capture

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/teslashibe/go-capture/internal/log"
)

// Open resolves an input string to a concrete frame source. It probes each
// reader kind in a fixed order: still image, image directory, video file,
// camera index. A probe either opens (returned immediately), reports the
// input is not its kind (try the next), or reports the kind matched but
// opening failed.
//
// When every probe fails, the returned error concatenates the
// open-failure diagnostics if any occurred, else the kind-mismatch
// diagnostics.
func Open(input string, opts Options) (Source, error) {
	if opts.ReadLimit <= 0 {
		return nil, fmt.Errorf("read length limit must be positive")
	}
	if opts.StartFrame < 0 {
		return nil, fmt.Errorf("start frame must not be negative")
	}
	if opts.Resolution.X <= 0 || opts.Resolution.Y <= 0 {
		opts.Resolution = image.Pt(1280, 720)
	}

	probes := []func() (Source, error){
		func() (Source, error) { return newImageReader(input, opts.Loop) },
		func() (Source, error) { return newDirReader(input, opts.Loop, opts.StartFrame, opts.ReadLimit) },
		func() (Source, error) { return newVideoReader(input, opts.Loop, opts.StartFrame, opts.ReadLimit) },
		func() (Source, error) {
			return newCameraReader(input, opts.Loop, opts.ReadLimit, opts.Resolution)
		},
	}

	var mismatches, openFailures []string
	for _, probe := range probes {
		src, err := probe()
		if err == nil {
			log.Info("capture source opened",
				"input", input, "type", src.Type(), "fps", src.FPS())
			return src, nil
		}

		var wrong *wrongKindError
		if errors.As(err, &wrong) {
			mismatches = append(mismatches, err.Error())
		} else {
			openFailures = append(openFailures, err.Error())
		}
	}

	// Open failures are the stronger signal: at least one probe recognized
	// the input but could not use it.
	msgs := openFailures
	if len(msgs) == 0 {
		msgs = mismatches
	}
	return nil, errors.New(strings.Join(msgs, "\n"))
}
