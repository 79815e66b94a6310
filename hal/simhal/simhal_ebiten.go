//go:build !headless

package simhal

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenBackend presents decoded frames in a real window, following the
// same Update/Draw/Layout ebiten.Game shape an ebiten-backed video output
// uses for its video backend.
type ebitenBackend struct {
	width, height int

	mu      sync.Mutex
	frame   *image.RGBA
	started bool
	img     *ebiten.Image
}

func newBackend(width, height int) backend {
	return &ebitenBackend{width: width, height: height}
}

func (b *ebitenBackend) start() error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return nil
	}
	b.started = true
	b.mu.Unlock()

	ebiten.SetWindowSize(b.width, b.height)
	ebiten.SetWindowTitle("epd simulator")
	ebiten.SetWindowResizable(true)
	go func() {
		_ = ebiten.RunGame(b)
	}()
	return nil
}

func (b *ebitenBackend) present(img *image.RGBA) {
	b.mu.Lock()
	b.frame = img
	b.mu.Unlock()
}

func (b *ebitenBackend) stop() error {
	b.mu.Lock()
	b.started = false
	b.mu.Unlock()
	return nil
}

func (b *ebitenBackend) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	return nil
}

func (b *ebitenBackend) Draw(screen *ebiten.Image) {
	b.mu.Lock()
	frame := b.frame
	b.mu.Unlock()
	if frame == nil {
		return
	}
	if b.img == nil {
		b.img = ebiten.NewImage(b.width, b.height)
	}
	b.img.WritePixels(frame.Pix)
	screen.DrawImage(b.img, nil)
}

func (b *ebitenBackend) Layout(_, _ int) (int, int) {
	return b.width, b.height
}
