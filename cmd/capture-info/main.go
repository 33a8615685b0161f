// Capture Info - probe an input and drain it
//
// Resolves the input to a concrete source (image, directory, video or
// camera), prints what it found, then reads frames until exhaustion
// and reports delivery stats.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/teslashibe/go-capture/internal/config"
	"github.com/teslashibe/go-capture/internal/log"
	"github.com/teslashibe/go-capture/pkg/capture"
	"github.com/teslashibe/go-capture/pkg/debug"
)

func main() {
	input := flag.String("input", config.Input(""), "image file, image directory, video file, or camera index")
	loop := flag.Bool("loop", config.Loop(), "restart from the start offset after each pass")
	start := flag.Int("start", config.StartFrame(), "frames to skip before the first delivered frame")
	limit := flag.Int("limit", config.ReadLimit(1_000_000), "max frames delivered per pass")
	max := flag.Int("max", 0, "stop after this many frames total (0 = until exhausted)")
	res := flag.String("resolution", "", "camera resolution hint, WIDTHxHEIGHT")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.BoolVar(&debug.Frames, "debug-frames", false, "print one line per decoded frame")
	flag.Parse()

	log.Init(*logLevel)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: capture-info -input <path|dir|video|camera index>")
		os.Exit(1)
	}
	if *loop && *max == 0 {
		log.Warn("looping without -max never exits; press Ctrl+C to stop")
	}

	fmt.Println("🎞  go-capture info")
	fmt.Println("==================")
	fmt.Printf("Input: %s\n\n", *input)

	src, err := capture.Open(*input, capture.Options{
		Loop:       *loop,
		StartFrame: *start,
		ReadLimit:  *limit,
		Resolution: config.ParseResolution(*res),
	})
	if err != nil {
		log.Error("no reader could open the input", "error", err)
		os.Exit(1)
	}
	defer src.Close()

	fmt.Printf("Type: %s\n", src.Type())
	fmt.Printf("FPS:  %.2f\n\n", src.FPS())

	frames := 0
	for *max == 0 || frames < *max {
		frame, err := src.Read()
		if err != nil {
			log.Error("capture fault", "error", err)
			os.Exit(1)
		}
		if frame.Empty() {
			frame.Close()
			break
		}
		debug.FrameLog("frame %d: %dx%d\n", frames, frame.Cols(), frame.Rows())
		frames++
		frame.Close()
	}

	stats := src.Stats()
	fmt.Printf("\nDelivered %d frames (avg read %.2fms)\n",
		frames, float64(stats.AverageLatency().Microseconds())/1000)
}
