package capture

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/teslashibe/go-capture/internal/log"
	"gocv.io/x/gocv"
)

// dirReader walks a directory listing in lexicographic order, decoding each
// entry as an image. Entries that don't decode are skipped silently, so a
// directory can mix frames with stray files (readmes, annotations) and
// still play back cleanly.
type dirReader struct {
	dir   string
	names []string

	fileID  int // cursor into names
	nextImg int // frames delivered in the current pass
	start   int // decodable images skipped at the head of each pass
	limit   int
	loop    bool
	stats   Stats
}

func newDirReader(input string, loop bool, startFrame, limit int) (*dirReader, error) {
	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, wrongKind("can't find the dir by %s", input)
	}
	if len(entries) == 0 {
		return nil, openFailed("the dir %s is empty", input)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	r := &dirReader{dir: input, names: names, start: startFrame, limit: limit, loop: loop}

	// Position the cursor on the image that starts the first pass: skip
	// startFrame successfully-decoded images, ignoring entries that don't
	// decode at all.
	readImgs := 0
	for r.fileID < len(r.names) {
		if r.decodable(r.names[r.fileID]) {
			readImgs++
			if readImgs-1 >= startFrame {
				log.Debug("directory source ready", "input", input, "entries", len(names))
				return r, nil
			}
		}
		r.fileID++
	}
	return nil, openFailed("can't read the first image from %s", input)
}

func (r *dirReader) decodable(name string) bool {
	img := gocv.IMRead(filepath.Join(r.dir, name), gocv.IMReadColor)
	defer img.Close()
	return !img.Empty()
}

func (r *dirReader) Read() (gocv.Mat, error) {
	start := time.Now()

	for r.fileID < len(r.names) && r.nextImg < r.limit {
		name := r.names[r.fileID]
		img := gocv.IMRead(filepath.Join(r.dir, name), gocv.IMReadColor)
		r.fileID++
		if !img.Empty() {
			r.nextImg++
			r.stats.update(start)
			log.Debug("directory frame", "name", name, "width", img.Cols(), "height", img.Rows())
			return img, nil
		}
		img.Close()
	}

	if r.loop {
		// Restart the pass: rewind, re-skip the initial offset the same
		// permissive way the constructor did, deliver the next image.
		r.fileID = 0
		readImgs := 0
		for r.fileID < len(r.names) {
			img := gocv.IMRead(filepath.Join(r.dir, r.names[r.fileID]), gocv.IMReadColor)
			r.fileID++
			if !img.Empty() {
				readImgs++
				if readImgs-1 >= r.start {
					r.nextImg = 1
					r.stats.update(start)
					return img, nil
				}
			}
			img.Close()
		}
	}
	return gocv.NewMat(), nil
}

func (r *dirReader) FPS() float64 { return 1.0 }

func (r *dirReader) Type() SourceType { return TypeDir }

func (r *dirReader) Stats() Stats { return r.stats }

func (r *dirReader) Close() error { return nil }
