package preview

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/soocke/flick-bot-go/domain/geom"
)

func TestWriter_SavesCrop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	w := &Writer{Path: path, Margin: 10}
	frame := image.NewRGBA(image.Rect(0, 0, 400, 300))
	if err := w.Save(frame, geom.R(100, 200, 140, 240), geom.R(300, 40, 340, 80)); err != nil {
		t.Fatalf("save: %v", err)
	}
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// x: 90..350, y: 30..250
	if b := img.Bounds(); b.Dx() != 260 || b.Dy() != 220 {
		t.Fatalf("unexpected preview size %dx%d", b.Dx(), b.Dy())
	}
}

func TestWriter_DisabledIsNoop(t *testing.T) {
	var w *Writer
	if err := w.Save(nil, geom.Rect{}, geom.Rect{}); err != nil {
		t.Fatalf("nil writer should be a no-op, got %v", err)
	}
	dir := t.TempDir()
	if err := (&Writer{}).Save(image.NewRGBA(image.Rect(0, 0, 10, 10)), geom.Rect{}, geom.Rect{}); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("unexpected files written: %v", entries)
	}
}

func TestWriter_RegionOutsideFrame(t *testing.T) {
	w := &Writer{Path: filepath.Join(t.TempDir(), "shot.png")}
	frame := image.NewRGBA(image.Rect(0, 0, 50, 50))
	if err := w.Save(frame, geom.R(500, 500, 540, 540), geom.R(600, 400, 640, 440)); err == nil {
		t.Fatalf("expected error for crop outside frame")
	}
}
