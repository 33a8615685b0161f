package capture

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestImageReader_SingleShot(t *testing.T) {
	path := imageFixture(t, 32, 24)

	r, err := newImageReader(path, false)
	if err != nil {
		t.Fatalf("newImageReader: %v", err)
	}
	defer r.Close()

	frame, err := r.Read()
	if err != nil {
		t.Fatalf("first Read: %v", err)
	}
	if frame.Empty() {
		t.Fatal("first Read returned an empty frame")
	}
	if frame.Cols() != 32 || frame.Rows() != 24 {
		t.Errorf("frame is %dx%d, want 32x24", frame.Cols(), frame.Rows())
	}
	frame.Close()

	// Every subsequent read is empty when not looping
	for i := 0; i < 3; i++ {
		frame, err := r.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		if !frame.Empty() {
			t.Errorf("Read %d after exhaustion returned a frame", i)
		}
		frame.Close()
	}
}

func TestImageReader_Loop(t *testing.T) {
	path := imageFixture(t, 16, 16)

	r, err := newImageReader(path, true)
	if err != nil {
		t.Fatalf("newImageReader: %v", err)
	}
	defer r.Close()

	for i := 0; i < 5; i++ {
		frame, err := r.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		if frame.Empty() {
			t.Fatalf("Read %d: looping image reader ran out of frames", i)
		}
		if frame.Cols() != 16 || frame.Rows() != 16 {
			t.Errorf("Read %d: frame is %dx%d, want 16x16", i, frame.Cols(), frame.Rows())
		}
		frame.Close()
	}
}

func TestImageReader_Meta(t *testing.T) {
	r, err := newImageReader(imageFixture(t, 8, 8), false)
	if err != nil {
		t.Fatalf("newImageReader: %v", err)
	}
	defer r.Close()

	if r.Type() != TypeImage {
		t.Errorf("Type() = %q, want %q", r.Type(), TypeImage)
	}
	if r.FPS() != 1.0 {
		t.Errorf("FPS() = %v, want 1.0", r.FPS())
	}
	if r.Stats().Frames != 1 {
		t.Errorf("Stats().Frames after construction = %d, want 1", r.Stats().Frames)
	}
}

func TestImageReader_MissingFile(t *testing.T) {
	_, err := newImageReader(filepath.Join(t.TempDir(), "nope.png"), false)
	var wrong *wrongKindError
	if !errors.As(err, &wrong) {
		t.Fatalf("missing file: got %v, want kind mismatch", err)
	}
}

func TestImageReader_Undecodable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeText(t, path)

	_, err := newImageReader(path, false)
	var open *openFailedError
	if !errors.As(err, &open) {
		t.Fatalf("undecodable file: got %v, want open failure", err)
	}
}
