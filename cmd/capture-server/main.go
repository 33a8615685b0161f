// Capture Server - stream any source to the browser
//
// Opens an input through the capture resolver and serves it live:
//
//	GET /stream      MJPEG stream (point an <img> at it)
//	GET /api/status  JSON status and delivery stats
//	GET /ws/frames   binary JPEG frames over websocket
//	GET /ws/stats    periodic JSON stats over websocket
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-capture/internal/config"
	"github.com/teslashibe/go-capture/internal/log"
	"github.com/teslashibe/go-capture/pkg/capture"
	"github.com/teslashibe/go-capture/pkg/web"
)

func main() {
	input := flag.String("input", config.Input(""), "image file, image directory, video file, or camera index")
	port := flag.String("port", config.Port(), "dashboard port")
	loop := flag.Bool("loop", config.Loop(), "restart from the start offset after each pass")
	start := flag.Int("start", config.StartFrame(), "frames to skip before the first delivered frame")
	limit := flag.Int("limit", config.ReadLimit(1_000_000), "max frames delivered per pass")
	res := flag.String("resolution", "", "camera resolution hint, WIDTHxHEIGHT")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	in := *input
	if in == "" {
		in = config.InputRequired()
	}

	src, err := capture.Open(in, capture.Options{
		Loop:       *loop,
		StartFrame: *start,
		ReadLimit:  *limit,
		Resolution: config.ParseResolution(*res),
	})
	if err != nil {
		log.Error("no reader could open the input", "error", err)
		os.Exit(1)
	}

	server := web.NewServer(*port, in, src)

	fmt.Println("📺 go-capture server")
	fmt.Println("====================")
	fmt.Printf("Input:  %s (%s, %.2f fps)\n", in, src.Type(), src.FPS())
	fmt.Printf("Stream: http://localhost:%s/stream\n", *port)
	fmt.Printf("Status: http://localhost:%s/api/status\n\n", *port)

	// Handle Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 shutting down")
		server.Shutdown()
	}()

	runErr := server.Run()

	// The pump is the source's only driver. Signal it (in case Run failed
	// before a shutdown was requested) and wait for it to exit before
	// releasing the capture session.
	server.Shutdown()
	<-server.Done()
	if err := src.Close(); err != nil {
		log.Warn("closing source", "error", err)
	}

	if runErr != nil {
		log.Error("server stopped", "error", runErr)
		os.Exit(1)
	}
}
