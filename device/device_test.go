package device

import (
	"sync"
	"testing"
	"time"

	"github.com/gopanel/epd/driver"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/framebuf"
	"github.com/gopanel/epd/hal/memhal"
	"github.com/gopanel/epd/pixfmt"
	"github.com/gopanel/epd/seqlang"
)

func newTestDevice(t *testing.T, modelName string) (*Device, *memhal.HAL) {
	t.Helper()
	m := memhal.New()
	d, err := New(modelName, m, Options{})
	if err != nil {
		t.Fatalf("New(%q): %v", modelName, err)
	}
	return d, m
}

func TestOpenCloseIdempotent(t *testing.T) {
	d, m := newTestDevice(t, "epd1in54")
	if d.Opened() {
		t.Fatalf("expected not opened before Open")
	}
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Open(); err != nil {
		t.Fatalf("second Open: %v", err)
	}
	if !m.Opened() {
		t.Errorf("expected underlying HAL to report opened")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if m.Opened() {
		t.Errorf("expected underlying HAL to report closed")
	}
}

func TestDisplayRequiresOpen(t *testing.T) {
	d, _ := newTestDevice(t, "epd1in54")
	fb, err := framebuf.New(200, 200, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	err = d.Display(fb)
	if err == nil {
		t.Fatalf("expected an error displaying on a closed device")
	}
	if _, ok := err.(*epderr.DeviceError); !ok {
		t.Errorf("error = %T, want *epderr.DeviceError", err)
	}
}

func TestDisplayRejectsMismatchedDimensions(t *testing.T) {
	d, _ := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(8, 8, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	err = d.Display(fb)
	if _, ok := err.(*epderr.InvalidArgumentError); !ok {
		t.Fatalf("error = %T (%v), want *epderr.InvalidArgumentError", err, err)
	}
}

func TestDisplaySendsFramebufferBytes(t *testing.T) {
	d, m := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(200, 200, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	if err := d.Display(fb); err != nil {
		t.Fatalf("Display: %v", err)
	}
	var sawBulk bool
	for _, c := range m.Calls {
		if c.Op == "spi_bulk" && len(c.Bytes) == len(fb.Bytes()) {
			sawBulk = true
		}
	}
	if !sawBulk {
		t.Errorf("expected a bulk write of the full framebuffer")
	}
}

func TestClearFillsColor4WithRepeatedWhiteNibble(t *testing.T) {
	d, m := newTestDevice(t, "epd4in2b_v2")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	var bulk []byte
	for _, c := range m.Calls {
		if c.Op == "spi_bulk" {
			bulk = c.Bytes
		}
	}
	if len(bulk) == 0 {
		t.Fatalf("expected a bulk write from Clear")
	}
	for _, b := range bulk {
		if b != 0x11 {
			t.Errorf("clear fill byte = %#x, want 0x11", b)
		}
	}
}

func TestClearFillsMonoWithAllOnes(t *testing.T) {
	d, m := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	var bulk []byte
	for _, c := range m.Calls {
		if c.Op == "spi_bulk" {
			bulk = c.Bytes
		}
	}
	for _, b := range bulk {
		if b != 0xFF {
			t.Errorf("clear fill byte = %#x, want 0xFF", b)
		}
	}
}

// TestDisplayRegionSendsOnlyRegionBytes asserts DisplayRegion transmits
// only the requested sub-rectangle's byte-aligned slice of the
// framebuffer, not the whole frame.
func TestDisplayRegionSendsOnlyRegionBytes(t *testing.T) {
	d, m := newTestDevice(t, "epd7in5b_v2")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(800, 480, mustColor4(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}

	region := driver.Region{X: 0, Y: 0, Width: 16, Height: 4}
	if err := d.DisplayRegion(region, fb); err != nil {
		t.Fatalf("DisplayRegion: %v", err)
	}

	wantBytes := 8 * 4 // 16 px at 2 px/byte (color4) wide, 4 rows
	if wantBytes >= len(fb.Bytes()) {
		t.Fatalf("test region must be smaller than the full frame, got %d of %d", wantBytes, len(fb.Bytes()))
	}
	var sawFullFrame bool
	for _, c := range m.Calls {
		if c.Op != "spi_bulk" {
			continue
		}
		if len(c.Bytes) == len(fb.Bytes()) {
			sawFullFrame = true
		}
		if len(c.Bytes) != wantBytes {
			t.Errorf("bulk write of %d bytes, want %d (region size)", len(c.Bytes), wantBytes)
		}
	}
	if sawFullFrame {
		t.Errorf("DisplayRegion transmitted the entire framebuffer instead of the region")
	}
}

func TestDisplayRegionRejectsUnalignedRegion(t *testing.T) {
	d, _ := newTestDevice(t, "epd7in5b_v2")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(800, 480, mustColor4(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	err = d.DisplayRegion(driver.Region{X: 1, Y: 0, Width: 16, Height: 4}, fb)
	if _, ok := err.(*epderr.InvalidArgumentError); !ok {
		t.Fatalf("error = %T (%v), want *epderr.InvalidArgumentError", err, err)
	}
}

func TestDisplayRegionRejectedWithoutCapability(t *testing.T) {
	d, _ := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(200, 200, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	err = d.DisplayRegion(driver.Region{X: 0, Y: 0, Width: 8, Height: 8}, fb)
	if _, ok := err.(*epderr.InvalidArgumentError); !ok {
		t.Fatalf("error = %T (%v), want *epderr.InvalidArgumentError", err, err)
	}
}

func TestDisplayDualRejectedWithoutCapability(t *testing.T) {
	d, _ := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(200, 200, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}
	err = d.DisplayDual(fb, fb)
	if _, ok := err.(*epderr.InvalidArgumentError); !ok {
		t.Fatalf("error = %T (%v), want *epderr.InvalidArgumentError", err, err)
	}
}

// TestCancelUnblocksWaitBusyWithBoundedLatency exercises testable property
// #10: a cancelled refresh observes cancellation within one polling
// interval after the flag is set, rather than waiting out the full 5000ms
// busy-wait ceiling.
func TestCancelUnblocksWaitBusyWithBoundedLatency(t *testing.T) {
	d, m := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	stuck := 1 // BusyHigh polarity: 1 means "still busy", forever
	m.Stuck = &stuck

	var wg sync.WaitGroup
	var initErr error
	start := time.Now()
	wg.Add(1)
	go func() {
		defer wg.Done()
		initErr = d.Init(seqlang.ModeFull)
	}()

	time.Sleep(5 * time.Millisecond)
	d.Cancel()
	wg.Wait()
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("cancellation took %v, expected well under the 5000ms timeout ceiling", elapsed)
	}
	busyErr, ok := initErr.(*epderr.BusyTimeoutError)
	if !ok {
		t.Fatalf("Init error = %T (%v), want *epderr.BusyTimeoutError", initErr, initErr)
	}
	if !busyErr.Cancelled {
		t.Errorf("expected Cancelled=true, got %+v", busyErr)
	}
}

// TestReinitAfterDisplayLeavesDeviceRefreshReady exercises the other half
// of invariant #9: re-running Init after a full display cycle succeeds
// and leaves the device ready for another Display, rather than wedging
// on leftover state from the previous cycle (e.g. a stale cancel flag).
func TestReinitAfterDisplayLeavesDeviceRefreshReady(t *testing.T) {
	d, m := newTestDevice(t, "epd1in54")
	if err := d.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, err := framebuf.New(200, 200, mustMono(t))
	if err != nil {
		t.Fatalf("framebuf.New: %v", err)
	}

	if err := d.Init(seqlang.ModeFull); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	if err := d.Display(fb); err != nil {
		t.Fatalf("first Display: %v", err)
	}

	d.Cancel() // simulate a stray cancel left over from the previous cycle

	if err := d.Init(seqlang.ModeFull); err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if err := d.Display(fb); err != nil {
		t.Fatalf("second Display after reinit: %v", err)
	}

	var bulkWrites int
	for _, c := range m.Calls {
		if c.Op == "spi_bulk" && len(c.Bytes) == len(fb.Bytes()) {
			bulkWrites++
		}
	}
	if bulkWrites != 2 {
		t.Errorf("expected 2 full-frame bulk writes across both cycles, got %d", bulkWrites)
	}
}

func mustMono(t *testing.T) *pixfmt.Format {
	t.Helper()
	f, err := pixfmt.Canonical(pixfmt.Mono)
	if err != nil {
		t.Fatalf("pixfmt.Canonical(Mono): %v", err)
	}
	return f
}

func mustColor4(t *testing.T) *pixfmt.Format {
	t.Helper()
	f, err := pixfmt.Canonical(pixfmt.Color4)
	if err != nil {
		t.Fatalf("pixfmt.Canonical(Color4): %v", err)
	}
	return f
}
