package stdimg

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 0, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return path
}

func TestLoadNormalizesToRGBA(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	s := New()
	img, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("dims = %dx%d, want 4x4", img.Width, img.Height)
	}
	if len(img.Pixels) != 4*4*4 {
		t.Fatalf("len(Pixels) = %d, want %d", len(img.Pixels), 4*4*4)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	s := New()
	if _, err := s.Load("/nonexistent/path.png"); err == nil {
		t.Fatalf("expected error loading a missing file")
	}
}

func TestResizeChangesDimensions(t *testing.T) {
	path := writeTestPNG(t, 8, 8)
	s := New()
	img, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	resized, err := s.Resize(img, 4, 4)
	if err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if resized.Width != 4 || resized.Height != 4 {
		t.Fatalf("resized dims = %dx%d, want 4x4", resized.Width, resized.Height)
	}
}

func TestCropExtractsSubRegion(t *testing.T) {
	path := writeTestPNG(t, 8, 8)
	s := New()
	img, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cropped, err := s.Crop(img, 2, 2, 3, 3)
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if cropped.Width != 3 || cropped.Height != 3 {
		t.Fatalf("cropped dims = %dx%d, want 3x3", cropped.Width, cropped.Height)
	}
}

func TestCropOutsideBoundsErrors(t *testing.T) {
	path := writeTestPNG(t, 4, 4)
	s := New()
	img, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := s.Crop(img, 100, 100, 3, 3); err == nil {
		t.Fatalf("expected error cropping entirely outside the image")
	}
}
