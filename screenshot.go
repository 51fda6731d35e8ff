package scene2d

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where Screenshot writes unless SetScreenshotDir
// was called.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to the render's screenshot directory with a timestamped name.
func (r *Render) Screenshot(label string) {
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// SetScreenshotDir changes where screenshots are written.
func (r *Render) SetScreenshotDir(dir string) { r.screenshotDir = dir }

func (r *Render) screenshotDirOrDefault() string {
	if r.screenshotDir == "" {
		return DefaultScreenshotDir
	}
	return r.screenshotDir
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file. Called at the end of Render.Draw.
func (r *Render) flushScreenshots(screen *ebiten.Image) {
	if len(r.screenshotQueue) == 0 {
		return
	}

	dir := r.screenshotDirOrDefault()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Warn("screenshot: mkdir failed", "dir", dir, "err", err)
		r.screenshotQueue = r.screenshotQueue[:0]
		return
	}

	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)

	// Convert premultiplied RGBA to straight-alpha NRGBA.
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(pixels); i += 4 {
		pr, pg, pb, pa := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if pa > 0 && pa < 255 {
			pr = uint8(min(int(pr)*255/int(pa), 255))
			pg = uint8(min(int(pg)*255/int(pa), 255))
			pb = uint8(min(int(pb)*255/int(pa), 255))
		}
		img.Pix[i] = pr
		img.Pix[i+1] = pg
		img.Pix[i+2] = pb
		img.Pix[i+3] = pa
	}

	stamp := time.Now().Format("20060102_150405")

	for _, label := range r.screenshotQueue {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			Logger().Warn("screenshot failed", "label", label, "err", err)
			continue
		}
		Logger().Info("screenshot written", "path", path)
	}

	r.screenshotQueue = r.screenshotQueue[:0]
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
