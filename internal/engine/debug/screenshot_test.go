package debug

import (
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")

	// 1x2 image: bottom row red, top row blue as GL would hand it over.
	pixels := []byte{
		255, 0, 0, 255, // GL row 0 = bottom
		0, 0, 255, 255, // GL row 1 = top
	}

	path, err := sc.CaptureFromPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}

	r, _, b, _ := img.At(0, 0).RGBA()
	if r != 0 || b == 0 {
		t.Error("top image row should be blue (GL top row)")
	}
	r, _, b, _ = img.At(0, 1).RGBA()
	if r == 0 || b != 0 {
		t.Error("bottom image row should be red (GL bottom row)")
	}
}

func TestCaptureSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	if _, err := sc.CaptureFromPixels(make([]byte, 7), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestBMPFormat(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")
	sc.SetFormat(FormatBMP)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	path, err := sc.CaptureFromImage(img)
	if err != nil {
		t.Fatalf("CaptureFromImage failed: %v", err)
	}
	if !strings.HasSuffix(path, ".bmp") {
		t.Errorf("expected .bmp suffix, got %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()

	if _, err := bmp.Decode(f); err != nil {
		t.Errorf("capture is not a valid BMP: %v", err)
	}
}

func TestFormatFallback(t *testing.T) {
	sc := NewScreenshotCapture("", "shot")
	sc.SetFormat("jpeg")
	if !strings.HasSuffix(sc.GenerateFilename(), ".png") {
		t.Error("unknown format should fall back to PNG")
	}
}
