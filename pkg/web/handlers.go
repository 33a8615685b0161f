package web

import (
	"bufio"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-capture/pkg/hub"
)

// handleStatus serves the JSON status snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.status())
}

// handleStream serves an MJPEG multipart stream of the newest frames.
// Browsers render this directly in an <img> tag.
func (s *Server) handleStream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "multipart/x-mixed-replace; boundary=frame")

	interval := s.interval
	done := s.done

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		for {
			select {
			case <-done:
				return
			default:
			}

			if frame := s.Latest(); frame != nil {
				fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(frame))
				if _, err := w.Write(frame); err != nil {
					return
				}
				if _, err := w.WriteString("\r\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
			time.Sleep(interval)
		}
	})
	return nil
}

// handleFramesWS pushes binary JPEG frames to a websocket client.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	client := hub.NewClient(s.frameHub, conn)
	client.Run()
}

// handleStatsWS pushes periodic JSON stats to a websocket client.
func (s *Server) handleStatsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.statsHub, conn)
	client.Run()
}
