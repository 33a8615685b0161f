// Package config provides configuration helpers for go-capture commands.
package config

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"
)

// Default capture configuration.
const (
	DefaultPort   = "8090"
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// Input returns the capture input from CAPTURE_INPUT env var.
// Falls back to the provided default if not set.
func Input(defaultInput string) string {
	if in := os.Getenv("CAPTURE_INPUT"); in != "" {
		return in
	}
	return defaultInput
}

// InputRequired returns the capture input from CAPTURE_INPUT env var.
// Exits if not set.
func InputRequired() string {
	in := os.Getenv("CAPTURE_INPUT")
	if in == "" {
		fmt.Fprintln(os.Stderr, "Error: CAPTURE_INPUT environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: CAPTURE_INPUT=video.mp4 go run ./cmd/...")
		os.Exit(1)
	}
	return in
}

// Loop reports whether CAPTURE_LOOP is set to a truthy value.
func Loop() bool {
	switch strings.ToLower(os.Getenv("CAPTURE_LOOP")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// StartFrame returns the initial frame offset from CAPTURE_START, or 0.
func StartFrame() int {
	n, err := strconv.Atoi(os.Getenv("CAPTURE_START"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ReadLimit returns the per-pass frame limit from CAPTURE_LIMIT.
// Falls back to the provided default if unset or not positive.
func ReadLimit(defaultLimit int) int {
	n, err := strconv.Atoi(os.Getenv("CAPTURE_LIMIT"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return n
}

// Resolution returns the camera resolution hint from CAPTURE_RESOLUTION
// ("WIDTHxHEIGHT", e.g. "1920x1080"). Falls back to 1280x720.
func Resolution() image.Point {
	return ParseResolution(os.Getenv("CAPTURE_RESOLUTION"))
}

// ParseResolution parses a "WIDTHxHEIGHT" string.
// Returns the 1280x720 default for anything it cannot parse.
func ParseResolution(s string) image.Point {
	def := image.Pt(DefaultWidth, DefaultHeight)
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return def
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return def
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return def
	}
	return image.Pt(width, height)
}

// Port returns the dashboard port from CAPTURE_PORT env var or the default.
func Port() string {
	if port := os.Getenv("CAPTURE_PORT"); port != "" {
		return port
	}
	return DefaultPort
}
