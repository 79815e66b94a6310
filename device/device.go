// Package device implements the Device façade: lifecycle (open/closed),
// busy-wait cancellation, and the display/display_dual/display_region/
// clear operations, dispatching through a model's Driver. Grounded on the
// teacher's VideoCompositor lifecycle (a mutex-guarded Start/Stop pair
// around a background operation) and CoprocessorManager's cancellation
// pattern (an atomic flag observed inside a polling loop).
package device

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopanel/epd/driver"
	"github.com/gopanel/epd/driver/overrides"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/model"
	"github.com/gopanel/epd/pixfmt"
	"github.com/gopanel/epd/seqlang"
)

// Options configures an optional Device facility beyond the required HAL.
type Options struct {
	// Logger receives lifecycle and error diagnostics; a no-op by default.
	Logger hal.Logger
}

// Device binds a model configuration and its tier-2 driver to a concrete
// HAL, serializing every refresh operation through a single lock so SPI
// command streams issued against hw are never interleaved.
type Device struct {
	name   string
	cfg    *model.Config
	drv    *driver.Driver
	hw     hal.HAL
	logger hal.Logger

	mu     sync.Mutex
	opened bool
	cancel atomic.Bool
}

// New binds modelName to hw, looking up both the static configuration and
// its tier-2 override driver. Returns a not-found error if modelName is
// unregistered.
func New(modelName string, hw hal.HAL, opts Options) (*Device, error) {
	cfg, err := model.Lookup(modelName)
	if err != nil {
		return nil, err
	}
	drv, err := overrides.ForModel(modelName)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = hal.NopLogger{}
	}
	return &Device{name: modelName, cfg: cfg, drv: drv, hw: hw, logger: logger}, nil
}

// Config returns the model's static configuration.
func (d *Device) Config() *model.Config { return d.cfg }

// Open acquires the HAL's module resources. Re-entry on an already-open
// Device is a no-op.
func (d *Device) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.opened {
		return nil
	}
	if err := d.hw.ModuleInit(); err != nil {
		return &epderr.InitError{Operation: "device.Open", Details: d.name, Err: err}
	}
	d.opened = true
	d.logger.Printf("%s: opened", d.name)
	return nil
}

// Close releases the HAL's module resources. Re-entry on an already-closed
// Device is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.opened {
		return nil
	}
	if err := d.hw.ModuleExit(); err != nil {
		return &epderr.InitError{Operation: "device.Close", Details: d.name, Err: err}
	}
	d.opened = false
	d.logger.Printf("%s: closed", d.name)
	return nil
}

// Opened reports whether Open has succeeded without a matching Close.
func (d *Device) Opened() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opened
}

// Cancel is the unblocking callback an external scheduler registers to cut
// a refresh short: it sets the cancel flag the current wait-busy observes
// on its next 1ms poll. Safe to call from any goroutine while a display
// operation is in flight.
func (d *Device) Cancel() {
	d.cancel.Store(true)
}

// run serializes one native operation behind d.mu, asserting the device is
// open and resetting the cancel flag first. The host-language concurrency
// model this is generalized from additionally releases a process-wide
// scheduler lock around the native body and reacquires it afterward; Go's
// goroutine scheduler already preempts other goroutines during blocking
// hardware I/O without any such lock to release, so that step has no
// equivalent action to perform here (see DESIGN.md).
func (d *Device) run(op string, body func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.opened {
		return &epderr.DeviceError{Operation: op, Code: -1, Details: "device is closed"}
	}
	d.cancel.Store(false)
	if err := body(); err != nil {
		return translate(op, err)
	}
	return nil
}

// translate passes through errors already in the typed taxonomy untouched
// and wraps anything else (e.g. a raw error surfaced by a HAL backend) as
// a DeviceError, matching the "raise a typed error" step of the display
// operation contract.
func translate(op string, err error) error {
	switch err.(type) {
	case *epderr.BusyTimeoutError, *epderr.InitError, *epderr.DeviceError,
		*epderr.InvalidArgumentError, *epderr.FormatMismatchError,
		*epderr.NotFoundError, *epderr.DependencyError:
		return err
	default:
		return &epderr.DeviceError{Operation: op, Code: -1, Details: err.Error()}
	}
}

// Init runs the model's init sequence in the given refresh mode.
func (d *Device) Init(mode seqlang.Mode) error {
	return d.run("device.init", func() error {
		return d.drv.Init(d.hw, mode, &d.cancel)
	})
}

func (d *Device) validateFramebuffer(op string, fb *framebuf.Framebuffer) error {
	if fb == nil {
		return &epderr.InvalidArgumentError{Operation: op, Details: "framebuffer must not be nil"}
	}
	if fb.Width() != d.cfg.Width || fb.Height() != d.cfg.Height {
		return &epderr.InvalidArgumentError{
			Operation: op,
			Details:   fmt.Sprintf("framebuffer %dx%d does not match model %dx%d", fb.Width(), fb.Height(), d.cfg.Width, d.cfg.Height),
		}
	}
	want, err := pixfmt.Canonical(d.cfg.PixelFormat)
	if err != nil {
		return err
	}
	if fb.Format().Name != want.Name {
		return &epderr.FormatMismatchError{Expected: want.Name.String(), Got: fb.Format().Name.String()}
	}
	return nil
}

// Display sends fb to the panel via the model's generic or overridden
// display path.
func (d *Device) Display(fb *framebuf.Framebuffer) error {
	if err := d.validateFramebuffer("device.display", fb); err != nil {
		return err
	}
	return d.run("device.display", func() error {
		return d.drv.Display(d.hw, fb.Bytes(), &d.cancel)
	})
}

// DisplayDual sends two independent mono planes (e.g. render.RenderDual's
// black/red split) to a dual-buffer color model. Only color4 models
// advertising model.DualBuf support it. The planes are packed back-to-back into one
// buffer for driver.Driver's single-buf DisplayFunc signature; the
// family's override (driver/overrides.NewDualBufferColor) splits them
// back apart before sending each on its own command.
func (d *Device) DisplayDual(black, red *framebuf.Framebuffer) error {
	if !d.cfg.Capabilities.Has(model.DualBuf) {
		return &epderr.InvalidArgumentError{Operation: "device.display_dual", Details: d.name + " has no dual-buffer capability"}
	}
	if d.cfg.PixelFormat != pixfmt.Color4 {
		return &epderr.InvalidArgumentError{Operation: "device.display_dual", Details: d.name + " is not a two-plane color model"}
	}
	monoFmt, err := pixfmt.Canonical(pixfmt.Mono)
	if err != nil {
		return err
	}
	for _, fb := range []*framebuf.Framebuffer{black, red} {
		if fb == nil {
			return &epderr.InvalidArgumentError{Operation: "device.display_dual", Details: "both planes must be supplied"}
		}
		if fb.Width() != d.cfg.Width || fb.Height() != d.cfg.Height {
			return &epderr.InvalidArgumentError{Operation: "device.display_dual", Details: "plane dimensions do not match model"}
		}
		if fb.Format().Name != monoFmt.Name {
			return &epderr.FormatMismatchError{Expected: monoFmt.Name.String(), Got: fb.Format().Name.String()}
		}
	}
	combined := make([]byte, 0, len(black.Bytes())+len(red.Bytes()))
	combined = append(combined, black.Bytes()...)
	combined = append(combined, red.Bytes()...)
	return d.run("device.display_dual", func() error {
		return d.drv.Display(d.hw, combined, &d.cancel)
	})
}

// DisplayRegion refreshes a sub-rectangle of the panel. Only models
// advertising model.Regional support it; others return InvalidArgument.
// Only the region's own byte-aligned slice of fb is transmitted, not the
// whole framebuffer.
func (d *Device) DisplayRegion(region driver.Region, fb *framebuf.Framebuffer) error {
	if !d.cfg.Capabilities.Has(model.Regional) {
		return &epderr.InvalidArgumentError{Operation: "device.display_region", Details: d.name + " has no regional-refresh capability"}
	}
	if err := d.validateFramebuffer("device.display_region", fb); err != nil {
		return err
	}
	buf, err := extractRegion(fb, region)
	if err != nil {
		return err
	}
	return d.run("device.display_region", func() error {
		return d.drv.DisplayRegion(d.hw, region, buf, &d.cancel)
	})
}

// extractRegion copies out region's own row-by-row byte slice of fb
// instead of handing a driver override the entire framebuffer. region's X
// and Width must each land on a whole byte (a multiple of the format's
// pixels-per-byte) since Waveshare controllers address regional refresh
// windows in whole bytes.
func extractRegion(fb *framebuf.Framebuffer, region driver.Region) ([]byte, error) {
	if region.Width <= 0 || region.Height <= 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "device.display_region",
			Details:   "region width and height must be positive",
		}
	}
	if region.X < 0 || region.Y < 0 || region.X+region.Width > fb.Width() || region.Y+region.Height > fb.Height() {
		return nil, &epderr.InvalidArgumentError{
			Operation: "device.display_region",
			Details:   fmt.Sprintf("region %+v is out of bounds for a %dx%d framebuffer", region, fb.Width(), fb.Height()),
		}
	}
	pixelsPerByte := 8 / fb.Format().BitsPerPixel
	if region.X%pixelsPerByte != 0 || region.Width%pixelsPerByte != 0 {
		return nil, &epderr.InvalidArgumentError{
			Operation: "device.display_region",
			Details:   fmt.Sprintf("region X and width must be multiples of %d pixels for this pixel format", pixelsPerByte),
		}
	}
	byteOffset := region.X / pixelsPerByte
	byteWidth := region.Width / pixelsPerByte
	rowBytes := fb.RowBytes()
	src := fb.Bytes()
	out := make([]byte, byteWidth*region.Height)
	for row := 0; row < region.Height; row++ {
		start := (region.Y+row)*rowBytes + byteOffset
		copy(out[row*byteWidth:(row+1)*byteWidth], src[start:start+byteWidth])
	}
	return out, nil
}

// Sleep runs the model's deep-sleep command/data pair.
func (d *Device) Sleep() error {
	return d.run("device.sleep", func() error {
		return d.drv.Sleep(d.hw)
	})
}

// Clear fills the whole panel with its format's white fill byte and
// displays it: 1bpp/2bpp formats (mono, gray4) use 0xFF since white is the
// all-ones palette entry in both; 4bpp formats (color4, color7) use 0x11,
// white's palette index (1) replicated into both nibbles.
func (d *Device) Clear() error {
	format, err := pixfmt.Canonical(d.cfg.PixelFormat)
	if err != nil {
		return err
	}
	fill := byte(0xFF)
	if format.BitsPerPixel == 4 {
		fill = 0x11
	}
	buf := make([]byte, format.BufferSize(d.cfg.Width, d.cfg.Height))
	for i := range buf {
		buf[i] = fill
	}
	return d.run("device.clear", func() error {
		return d.drv.Display(d.hw, buf, &d.cancel)
	})
}
