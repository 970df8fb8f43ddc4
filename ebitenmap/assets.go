package ebitenmap

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/routemap"
)

// Assets loads images from a file system. Decoding runs on background
// goroutines; Image returns nil until a source is ready, so entities show up
// with zero size and grow once their image arrives.
type Assets struct {
	fsys fs.FS

	mu      sync.Mutex
	decoded map[string]image.Image
	images  map[string]*ebiten.Image
	pending map[string]bool
	failed  map[string]error
}

// NewAssets returns a loader reading from fsys.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:    fsys,
		decoded: make(map[string]image.Image),
		images:  make(map[string]*ebiten.Image),
		pending: make(map[string]bool),
		failed:  make(map[string]error),
	}
}

// Image returns the image for source, or nil when it is still loading or
// could not be loaded. The first request for a source starts loading it.
// Must be called from the game goroutine.
func (a *Assets) Image(source string) routemap.Image {
	a.mu.Lock()
	defer a.mu.Unlock()

	if img, ok := a.images[source]; ok {
		return img
	}
	if dec, ok := a.decoded[source]; ok {
		img := ebiten.NewImageFromImage(dec)
		a.images[source] = img
		delete(a.decoded, source)
		return img
	}
	if _, ok := a.failed[source]; ok || a.pending[source] {
		return nil
	}
	a.pending[source] = true
	go func() {
		_ = a.load(source)
	}()
	return nil
}

// Preload decodes the given sources in parallel and returns the first error.
// Sources that fail stay unavailable.
func (a *Assets) Preload(ctx context.Context, sources ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		a.mu.Lock()
		_, done := a.images[src]
		_, decoded := a.decoded[src]
		skip := done || decoded || a.pending[src]
		if !skip {
			a.pending[src] = true
		}
		a.mu.Unlock()
		if skip {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				a.mu.Lock()
				delete(a.pending, src)
				a.mu.Unlock()
				return err
			}
			return a.load(src)
		})
	}
	return g.Wait()
}

// Ready reports whether source has finished decoding.
func (a *Assets) Ready(source string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, done := a.images[source]
	_, decoded := a.decoded[source]
	return done || decoded
}

// Err returns the load error of source, if any.
func (a *Assets) Err(source string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.failed[source]
}

func (a *Assets) load(source string) error {
	img, err := decode(a.fsys, source)

	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.pending, source)
	if err != nil {
		a.failed[source] = err
		slog.Warn("load image", "source", source, "error", err)
		return err
	}
	a.decoded[source] = img
	slog.Debug("image loaded", "source", source, "size", img.Bounds().Size())
	return nil
}

func decode(fsys fs.FS, source string) (image.Image, error) {
	f, err := fsys.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", source, err)
	}
	return img, nil
}
