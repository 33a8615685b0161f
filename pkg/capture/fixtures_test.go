package capture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG writes a width x height PNG fixture. Tests use distinct widths
// to tell frames apart after decoding.
func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// writeText writes a file that will never decode as an image.
func writeText(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("not an image\n"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// imageFixture returns the path of a fresh single-image fixture.
func imageFixture(t *testing.T, width, height int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frame.png")
	writePNG(t, path, width, height)
	return path
}
