package capture

import (
	"errors"
	"image"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_ZeroLimitFailsBeforeProbing(t *testing.T) {
	// The input is a perfectly valid image; the limit check must fire first.
	path := imageFixture(t, 8, 8)

	if _, err := Open(path, Options{ReadLimit: 0}); err == nil {
		t.Fatal("Open with zero limit succeeded")
	} else if !strings.Contains(err.Error(), "read length limit must be positive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpen_NegativeStartFrame(t *testing.T) {
	path := imageFixture(t, 8, 8)

	if _, err := Open(path, Options{ReadLimit: 1, StartFrame: -1}); err == nil {
		t.Fatal("Open with negative start frame succeeded")
	}
}

func TestOpen_ResolvesImage(t *testing.T) {
	src, err := Open(imageFixture(t, 8, 8), Options{ReadLimit: 1})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if src.Type() != TypeImage {
		t.Errorf("Type() = %q, want %q", src.Type(), TypeImage)
	}
}

func TestOpen_ResolvesDir(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"), 8, 8)

	src, err := Open(dir, Options{ReadLimit: 10})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if src.Type() != TypeDir {
		t.Errorf("Type() = %q, want %q", src.Type(), TypeDir)
	}
}

func TestOpen_AggregatesMismatchDiagnostics(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "no-such-input"), Options{ReadLimit: 1})
	if err == nil {
		t.Fatal("Open on nonexistent input succeeded")
	}

	// No probe got far enough to fail opening, so the aggregate carries
	// one mismatch diagnostic per probed kind.
	for _, want := range []string{
		"can't find the image by",
		"can't find the dir by",
		"can't open the video from",
		"can't find the camera",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("aggregate error missing %q:\n%v", want, err)
		}
	}
}

func TestOpen_OpenFailureWinsAggregate(t *testing.T) {
	// A text file is found by the image probe but does not decode: that
	// open failure displaces the weaker mismatch diagnostics.
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeText(t, path)

	_, err := Open(path, Options{ReadLimit: 1})
	if err == nil {
		t.Fatal("Open on a text file succeeded")
	}
	if !strings.Contains(err.Error(), "can't open the image from") {
		t.Errorf("aggregate error missing image open failure:\n%v", err)
	}
	if strings.Contains(err.Error(), "can't find the camera") {
		t.Errorf("aggregate error still carries mismatch diagnostics:\n%v", err)
	}
}

func TestOpen_CameraIndexOutOfRange(t *testing.T) {
	// "999" parses as a camera index, so the camera probe reports an open
	// failure, which takes over the whole aggregate.
	_, err := Open("999", Options{ReadLimit: 1})
	if err == nil {
		t.Skip("device 999 exists on this machine")
	}
	if !strings.Contains(err.Error(), "can't open the camera from 999") {
		t.Errorf("aggregate error missing camera open failure:\n%v", err)
	}
	if strings.Contains(err.Error(), "can't find the image by") {
		t.Errorf("mismatch diagnostics should have been displaced:\n%v", err)
	}
}

func TestOpen_NonNumericCameraIdentifier(t *testing.T) {
	_, err := newCameraReader("front-door", false, 1, image.Pt(1280, 720))
	var wrong *wrongKindError
	if !errors.As(err, &wrong) {
		t.Fatalf("non-numeric identifier: got %v, want kind mismatch", err)
	}
}
