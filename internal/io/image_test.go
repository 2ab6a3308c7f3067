package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// encodePNG renders a solid image of the given dimensions.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func decodeDims(t *testing.T, data []byte) (width, height int, format string) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode result: %v", err)
	}
	return img.Bounds().Dx(), img.Bounds().Dy(), format
}

func TestPrepareCoverArt_Resize(t *testing.T) {
	svc := NewImageService()
	data := encodePNG(t, 2000, 1000)

	out, err := svc.PrepareCoverArt(context.Background(), data, true, 1000, true)
	if err != nil {
		t.Fatalf("PrepareCoverArt() error = %v", err)
	}

	w, h, format := decodeDims(t, out)
	if w != 1000 || h != 500 {
		t.Errorf("dimensions = %dx%d, want 1000x500", w, h)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
}

func TestPrepareCoverArt_ConvertOnly(t *testing.T) {
	svc := NewImageService()
	data := encodePNG(t, 300, 300)

	out, err := svc.PrepareCoverArt(context.Background(), data, false, 0, true)
	if err != nil {
		t.Fatalf("PrepareCoverArt() error = %v", err)
	}

	w, h, format := decodeDims(t, out)
	if w != 300 || h != 300 {
		t.Errorf("dimensions = %dx%d, want 300x300", w, h)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
}

func TestPrepareCoverArt_Passthrough(t *testing.T) {
	svc := NewImageService()
	data := encodePNG(t, 100, 100)

	out, err := svc.PrepareCoverArt(context.Background(), data, false, 0, false)
	if err != nil {
		t.Fatalf("PrepareCoverArt() error = %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Error("without transformations the input should be returned unchanged")
	}
}

func TestResizeImage_SmallImageKeepsDimensions(t *testing.T) {
	svc := NewImageService()
	data := encodePNG(t, 400, 300)

	out, err := svc.ResizeImage(context.Background(), data, 1000, 1000)
	if err != nil {
		t.Fatalf("ResizeImage() error = %v", err)
	}

	w, h, _ := decodeDims(t, out)
	if w != 400 || h != 300 {
		t.Errorf("dimensions = %dx%d, want 400x300", w, h)
	}
}

func TestResizeImage_InvalidData(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.ResizeImage(context.Background(), []byte("not an image"), 100, 100); err == nil {
		t.Error("expected error for invalid image data")
	}
}

func TestWriteFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "cover.jpg")

	if err := WriteFile(context.Background(), path, []byte("data")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q, want %q", got, "data")
	}
}

func TestWriteFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "cover.jpg")
	if err := WriteFile(ctx, path, []byte("data")); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written under a cancelled context")
	}
}
