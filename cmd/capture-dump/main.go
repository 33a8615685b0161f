// Capture Dump - save frames from any source as numbered JPEGs
//
// Works the same for an image, a directory, a video, or a camera:
// whatever the resolver opens gets drained into the output directory.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/teslashibe/go-capture/internal/config"
	"github.com/teslashibe/go-capture/internal/log"
	"github.com/teslashibe/go-capture/pkg/capture"
	"github.com/teslashibe/go-capture/pkg/debug"
)

func main() {
	input := flag.String("input", config.Input(""), "image file, image directory, video file, or camera index")
	out := flag.String("out", "frames", "output directory for JPEG frames")
	start := flag.Int("start", config.StartFrame(), "frames to skip before the first delivered frame")
	limit := flag.Int("limit", config.ReadLimit(300), "max frames delivered per pass")
	res := flag.String("resolution", "", "camera resolution hint, WIDTHxHEIGHT")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.BoolVar(&debug.Enabled, "debug", false, "print each saved frame")
	flag.Parse()

	log.Init(*logLevel)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: capture-dump -input <path|dir|video|camera index> [-out dir]")
		os.Exit(1)
	}

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Error("can't create output directory", "dir", *out, "error", err)
		os.Exit(1)
	}

	src, err := capture.Open(*input, capture.Options{
		StartFrame: *start,
		ReadLimit:  *limit,
		Resolution: config.ParseResolution(*res),
	})
	if err != nil {
		log.Error("no reader could open the input", "error", err)
		os.Exit(1)
	}
	defer src.Close()

	fmt.Printf("💾 dumping %s (%s) to %s\n", *input, src.Type(), *out)

	saved := 0
	for {
		frame, err := src.Read()
		if err != nil {
			log.Error("capture fault", "error", err)
			os.Exit(1)
		}
		if frame.Empty() {
			frame.Close()
			break
		}

		name := filepath.Join(*out, fmt.Sprintf("frame-%06d.jpg", saved))
		if !gocv.IMWrite(name, frame) {
			frame.Close()
			log.Error("can't write frame", "file", name)
			os.Exit(1)
		}
		debug.Log("saved %s (%dx%d)\n", name, frame.Cols(), frame.Rows())
		saved++
		frame.Close()
	}

	fmt.Printf("✅ saved %d frames\n", saved)
}
