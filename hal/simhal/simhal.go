// Package simhal implements hal.HAL against a visual simulator instead of
// real hardware: every bulk SPI write made while DC selects data mode is
// decoded, using the configured pixel format's palette, into an RGBA
// image and handed to a pluggable backend for display. The backend is
// selected by build tag exactly like a VideoOutput backend split
// between a real ebiten-backed window and a headless no-op renderer.
package simhal

import (
	"image"
	"image/color"
	"sync"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/pixfmt"
)

// backend is the pluggable presentation surface; newBackend is defined
// once per build tag (simhal_ebiten.go / simhal_headless.go).
type backend interface {
	start() error
	present(img *image.RGBA)
	stop() error
}

// SimHAL is a hal.HAL backed by a decoded visual frame instead of real
// GPIO/SPI lines. BUSY alternates 0, 1, 0, ... on successive reads, so a
// wait-busy clears within two polls under either busy polarity: the
// simulator has no refresh latency to model.
type SimHAL struct {
	width, height int
	format        *pixfmt.Format

	mu        sync.Mutex
	pins      map[hal.Pin]int
	dcData    bool
	lastFrame *image.RGBA

	bk backend
}

// New builds a SimHAL sized and paletted for one panel's geometry.
func New(width, height int, formatName pixfmt.Name) (*SimHAL, error) {
	if width <= 0 || height <= 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "simhal.New",
			Details:   "width and height must be positive",
		}
	}
	f, err := pixfmt.Canonical(formatName)
	if err != nil {
		return nil, err
	}
	return &SimHAL{
		width:  width,
		height: height,
		format: f,
		pins:   map[hal.Pin]int{},
		bk:     newBackend(width, height),
	}, nil
}

func (s *SimHAL) DigitalWrite(pin hal.Pin, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins[pin] = level
	if pin == hal.DC {
		s.dcData = level != 0
	}
	return nil
}

// DigitalRead reports BUSY as 0 on the first read and then alternates, so
// the caller's polarity check sees the ready level on the first or second
// poll — simhal never stalls a refresh.
func (s *SimHAL) DigitalRead(pin hal.Pin) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pin == hal.BUSY {
		level := s.pins[hal.BUSY]
		s.pins[hal.BUSY] = level ^ 1
		return level, nil
	}
	return s.pins[pin], nil
}

func (s *SimHAL) SPIWriteByte(b byte) error {
	return s.SPIWriteBulk([]byte{b})
}

func (s *SimHAL) SPIWriteBulk(data []byte) error {
	s.mu.Lock()
	dcData := s.dcData
	s.mu.Unlock()
	if dcData {
		s.tryDecode(data)
	}
	return nil
}

func (s *SimHAL) DelayMS(ms int) {}

func (s *SimHAL) ModuleInit() error { return s.bk.start() }
func (s *SimHAL) ModuleExit() error { return s.bk.stop() }

// tryDecode interprets data as a full framebuffer payload in s.format and
// presents it; any write not matching the exact expected byte count
// (i.e. not a full-frame write) is recorded by SPIWriteBulk's caller but
// not rendered, since partial/windowed writes don't carry enough context
// here to place them without a region.
func (s *SimHAL) tryDecode(data []byte) {
	fb, err := framebuf.New(s.width, s.height, s.format)
	if err != nil || len(data) != len(fb.Bytes()) {
		return
	}
	copy(fb.Bytes(), data)

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	pal := s.format.Palette
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			idx, ok := fb.IndexAt(x, y)
			if !ok {
				continue
			}
			entry, err := pal.ColorAt(idx)
			if err != nil {
				continue
			}
			img.Set(x, y, color.RGBA{R: entry.Color.R, G: entry.Color.G, B: entry.Color.B, A: 255})
		}
	}

	s.mu.Lock()
	s.lastFrame = img
	s.mu.Unlock()
	s.bk.present(img)
}

// LastFrame returns the most recently decoded full-frame image, or nil if
// none has been written yet. Exposed for tests and for cmd/epdsim.
func (s *SimHAL) LastFrame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFrame
}

var _ hal.HAL = (*SimHAL)(nil)
