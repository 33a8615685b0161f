// Package web provides a live dashboard for a capture source: a JSON
// status API, an MJPEG stream, and websocket feeds pushing JPEG frames
// and reader stats to connected clients.
//
// The server's pump goroutine is the single caller driving the Source,
// as the capture contract requires. Handlers never touch the Source
// directly; they read snapshots the pump publishes.
package web

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-capture/internal/log"
	"github.com/teslashibe/go-capture/pkg/capture"
	"github.com/teslashibe/go-capture/pkg/hub"
	"gocv.io/x/gocv"
)

// Status is the dashboard's view of the running source.
type Status struct {
	Session      string  `json:"session"`
	Input        string  `json:"input"`
	Type         string  `json:"type"`
	FPS          float64 `json:"fps"`
	Frames       int     `json:"frames"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	Clients      int     `json:"clients"`
	UptimeS      float64 `json:"uptime_s"`
	Streaming    bool    `json:"streaming"`
}

// Server streams one capture source to any number of dashboard clients.
type Server struct {
	app     *fiber.App
	port    string
	session string
	input   string
	logger  *slog.Logger

	src      capture.Source
	srcType  capture.SourceType
	srcFPS   float64
	interval time.Duration

	frameHub *hub.Hub
	statsHub *hub.Hub

	latest   []byte
	stats    capture.Stats
	mu       sync.RWMutex
	started  time.Time
	done     chan struct{}
	pumpDone chan struct{}
	stopOnce sync.Once
}

// NewServer creates a dashboard server for the given source. The input
// string is echoed in the status API so clients can tell what is playing.
func NewServer(port, input string, src capture.Source) *Server {
	s := &Server{
		port:     port,
		session:  uuid.NewString(),
		input:    input,
		logger:   log.Component("web"),
		src:      src,
		srcType:  src.Type(),
		srcFPS:   src.FPS(),
		frameHub: hub.New("frames"),
		statsHub: hub.New("stats"),
		done:     make(chan struct{}),
		pumpDone: make(chan struct{}),
	}

	// File-backed sources decode as fast as the disk allows; pace them to
	// their native rate. Cameras block on the driver anyway.
	s.interval = time.Second / 30
	if s.srcFPS > 0 && s.srcFPS <= 120 {
		s.interval = time.Duration(float64(time.Second) / s.srcFPS)
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-capture dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)

	app.Get("/stream", s.handleStream)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))
	app.Get("/ws/stats", websocket.New(s.handleStatsWS))

	s.app = app
	return s
}

// Run starts the hubs, the capture pump, and the HTTP listener.
// It blocks until the listener stops.
func (s *Server) Run() error {
	s.started = time.Now()
	go s.frameHub.Run()
	go s.statsHub.Run()
	go s.pump()

	s.logger.Info("dashboard listening", "port", s.port, "session", s.session,
		"input", s.input, "type", s.srcType)
	return s.app.Listen(":" + s.port)
}

// Shutdown signals the pump to stop and shuts down the HTTP listener.
// The pump may still be inside a blocking Read when Shutdown returns;
// wait on Done before closing the source.
func (s *Server) Shutdown() error {
	s.stop()
	return s.app.Shutdown()
}

func (s *Server) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Done closes once the pump goroutine has exited. The Source is not read
// after that, so only then is it safe for the owner to Close it.
func (s *Server) Done() <-chan struct{} { return s.pumpDone }

// pump is the one goroutine allowed to drive the Source. It encodes each
// frame to JPEG, keeps the newest one for the MJPEG handler, and fans the
// rest out through the hubs.
func (s *Server) pump() {
	defer close(s.pumpDone)
	defer s.stop()

	statsTick := time.NewTicker(time.Second)
	defer statsTick.Stop()

	for {
		select {
		case <-s.done:
			return
		default:
		}

		frame, err := s.src.Read()
		if err != nil {
			frame.Close()
			s.logger.Error("capture fault, stopping stream", "input", s.input, "error", err)
			return
		}
		if frame.Empty() {
			frame.Close()
			s.logger.Info("source exhausted", "input", s.input, "frames", s.src.Stats().Frames)
			return
		}

		buf, err := gocv.IMEncode(gocv.JPEGFileExt, frame)
		frame.Close()
		if err != nil {
			s.logger.Warn("jpeg encode failed", "error", err)
			continue
		}
		data := make([]byte, len(buf.GetBytes()))
		copy(data, buf.GetBytes())
		buf.Close()

		s.mu.Lock()
		s.latest = data
		s.stats = s.src.Stats()
		s.mu.Unlock()

		s.frameHub.BroadcastBinary(data)

		select {
		case <-statsTick.C:
			if err := s.statsHub.BroadcastJSON(s.status()); err != nil {
				s.logger.Warn("stats broadcast failed", "error", err)
			}
		default:
		}

		select {
		case <-s.done:
			return
		case <-time.After(s.interval):
		}
	}
}

// Latest returns the newest encoded frame, or nil before the first one.
func (s *Server) Latest() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Server) status() Status {
	s.mu.RLock()
	stats := s.stats
	s.mu.RUnlock()

	streaming := true
	select {
	case <-s.done:
		streaming = false
	default:
	}

	uptime := 0.0
	if !s.started.IsZero() {
		uptime = time.Since(s.started).Seconds()
	}

	return Status{
		Session:      s.session,
		Input:        s.input,
		Type:         string(s.srcType),
		FPS:          s.srcFPS,
		Frames:       stats.Frames,
		AvgLatencyMS: float64(stats.AverageLatency()) / float64(time.Millisecond),
		Clients:      s.frameHub.ClientCount() + s.statsHub.ClientCount(),
		UptimeS:      uptime,
		Streaming:    streaming,
	}
}
