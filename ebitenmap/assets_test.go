package ebitenmap

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAssetsPreload(t *testing.T) {
	fsys := fstest.MapFS{
		"Base.png":  {Data: encodePNG(t, 8, 4)},
		"Plane.png": {Data: encodePNG(t, 2, 2)},
	}
	a := NewAssets(fsys)
	if err := a.Preload(context.Background(), "Base.png", "Plane.png"); err != nil {
		t.Fatalf("Preload: %v", err)
	}
	for _, src := range []string{"Base.png", "Plane.png"} {
		if !a.Ready(src) {
			t.Errorf("%s not ready", src)
		}
	}
	if got := a.decoded["Base.png"].Bounds().Size(); got != image.Pt(8, 4) {
		t.Errorf("Base.png size = %v, want 8x4", got)
	}
}

func TestAssetsPreloadMissing(t *testing.T) {
	a := NewAssets(fstest.MapFS{"ok.png": {Data: encodePNG(t, 1, 1)}})
	err := a.Preload(context.Background(), "ok.png", "missing.png")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if a.Err("missing.png") == nil {
		t.Error("missing.png should record its error")
	}
	if a.Ready("missing.png") {
		t.Error("missing.png should not be ready")
	}
}

func TestAssetsPreloadBadData(t *testing.T) {
	a := NewAssets(fstest.MapFS{"bad.png": {Data: []byte("not an image")}})
	if err := a.Preload(context.Background(), "bad.png"); err == nil {
		t.Fatal("expected decode error")
	}
	if img := a.Image("bad.png"); img != nil {
		t.Errorf("Image of failed source = %v, want nil", img)
	}
}
