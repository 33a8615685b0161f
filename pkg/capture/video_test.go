package capture

import (
	"path/filepath"
	"testing"

	"gocv.io/x/gocv"
)

// videoFixture writes a short MJPG-in-AVI clip with the given frame count.
// Skips the test when no MJPG encoder is available.
func videoFixture(t *testing.T, frames int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.avi")
	writer, err := gocv.VideoWriterFile(path, "MJPG", 10, 64, 48, true)
	if err != nil {
		t.Skipf("MJPG writer unavailable: %v", err)
	}
	defer writer.Close()
	if !writer.IsOpened() {
		t.Skip("MJPG writer did not open")
	}

	frame := gocv.NewMatWithSize(48, 64, gocv.MatTypeCV8UC3)
	defer frame.Close()
	for i := 0; i < frames; i++ {
		if err := writer.Write(frame); err != nil {
			t.Fatalf("write frame %d: %v", i, err)
		}
	}
	return path
}

func drain(t *testing.T, r *videoReader, max int) int {
	t.Helper()
	read := 0
	for i := 0; i < max; i++ {
		frame, err := r.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		empty := frame.Empty()
		frame.Close()
		if empty {
			break
		}
		read++
	}
	return read
}

func TestVideoReader_DrainsWholeClip(t *testing.T) {
	r, err := newVideoReader(videoFixture(t, 10), false, 0, 1000)
	if err != nil {
		t.Fatalf("newVideoReader: %v", err)
	}
	defer r.Close()

	if got := drain(t, r, 50); got != 10 {
		t.Errorf("delivered %d frames, want 10", got)
	}
	if r.Type() != TypeVideo {
		t.Errorf("Type() = %q, want %q", r.Type(), TypeVideo)
	}
	if fps := r.FPS(); fps < 9 || fps > 11 {
		t.Errorf("FPS() = %v, want ~10", fps)
	}
}

func TestVideoReader_LimitStopsPass(t *testing.T) {
	r, err := newVideoReader(videoFixture(t, 10), false, 0, 3)
	if err != nil {
		t.Fatalf("newVideoReader: %v", err)
	}
	defer r.Close()

	if got := drain(t, r, 50); got != 3 {
		t.Errorf("delivered %d frames, want 3", got)
	}

	// Still empty afterwards
	frame, err := r.Read()
	if err != nil {
		t.Fatalf("Read after limit: %v", err)
	}
	defer frame.Close()
	if !frame.Empty() {
		t.Error("Read after limit returned a frame")
	}
}

func TestVideoReader_StartFrameShortensPass(t *testing.T) {
	r, err := newVideoReader(videoFixture(t, 10), false, 4, 1000)
	if err != nil {
		t.Fatalf("newVideoReader: %v", err)
	}
	defer r.Close()

	if got := drain(t, r, 50); got != 6 {
		t.Errorf("delivered %d frames, want 6", got)
	}
}

func TestVideoReader_LoopReseeksAtLimit(t *testing.T) {
	r, err := newVideoReader(videoFixture(t, 10), true, 2, 4)
	if err != nil {
		t.Fatalf("newVideoReader: %v", err)
	}
	defer r.Close()

	// Three passes worth of reads, all of which must deliver frames
	for i := 0; i < 12; i++ {
		frame, err := r.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		empty := frame.Empty()
		frame.Close()
		if empty {
			t.Fatalf("Read %d: looping video ran out of frames", i)
		}
	}

	// Counter resets to 1 whenever a pass restarts
	if r.nextImg < 1 || r.nextImg > 4 {
		t.Errorf("nextImg = %d, want within pass bounds [1,4]", r.nextImg)
	}
}

func TestVideoReader_LoopPastEndOfClip(t *testing.T) {
	// Limit beyond the clip length: decode fails at EOF, looping reseeks
	// to the start frame and the pass counter resets to 1.
	r, err := newVideoReader(videoFixture(t, 5), true, 0, 1000)
	if err != nil {
		t.Fatalf("newVideoReader: %v", err)
	}
	defer r.Close()

	for i := 0; i < 5; i++ {
		frame, err := r.Read()
		if err != nil {
			t.Fatalf("Read %d: %v", i, err)
		}
		empty := frame.Empty()
		frame.Close()
		if empty {
			t.Fatalf("Read %d: empty before end of clip", i)
		}
	}

	// Sixth read hits EOF and must wrap to the beginning
	frame, err := r.Read()
	if err != nil {
		t.Fatalf("Read past end: %v", err)
	}
	empty := frame.Empty()
	frame.Close()
	if empty {
		t.Fatal("looping video returned empty at end of clip")
	}
	if r.nextImg != 1 {
		t.Errorf("nextImg after wrap = %d, want 1", r.nextImg)
	}
}

func TestVideoReader_NotAVideo(t *testing.T) {
	_, err := newVideoReader(filepath.Join(t.TempDir(), "missing.mp4"), false, 0, 1)
	if err == nil {
		t.Fatal("newVideoReader on missing file succeeded")
	}
}
