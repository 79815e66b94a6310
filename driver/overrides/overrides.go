// Package overrides implements the six tier-2 refresh families this driver
// describes: LUT-based SSD1680, SSD1677/83, the 4-color gate-driver
// family, 7-color ACeP, dual-buffer UC8176/UC8179, and UC8179 regional
// refresh. Each builder wraps a driver.Driver with the hook closures its
// family needs; everything else falls back to the generic interpreter.
package overrides

import (
	"sync/atomic"

	"github.com/gopanel/epd/driver"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/model"
	"github.com/gopanel/epd/seqlang"
)

func runRaw(h hal.HAL, cfg *model.Config, parts ...[]byte) error {
	var seqBytes []byte
	for _, p := range parts {
		seqBytes = append(seqBytes, p...)
	}
	seqBytes = append(seqBytes, 0xFE)
	return seqlang.Run(h, cfg, seqBytes, nil)
}

func cmd(op byte, data ...byte) []byte {
	return append([]byte{op, byte(len(data))}, data...)
}

var waitBusy = []byte{0xFF}

// NewSSD1680 wires the LUT-based SSD1680 family post-display sequence.
// Mode is tracked across Init/Display since the partial-refresh
// post-display differs from the full-refresh one; the LUT itself is
// already embedded in the model's static init sequences (seqlang commands
// writing 0x32), so CustomInit only records the mode before running the
// generic init.
func NewSSD1680(cfg *model.Config) *driver.Driver {
	d := driver.New(cfg)
	var mode atomic.Int32
	d.CustomInit = func(h hal.HAL, cfg *model.Config, m seqlang.Mode, cancel *atomic.Bool) error {
		mode.Store(int32(m))
		return seqlang.Init(h, cfg, m, cancel)
	}
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		if seqlang.Mode(mode.Load()) == seqlang.ModePartial {
			return runRaw(h, cfg, cmd(0x22, 0x1C), cmd(0x20), waitBusy)
		}
		return runRaw(h, cfg, cmd(0x22, 0xC4), cmd(0x20), waitBusy)
	}
	return d
}

// NewSSD1677 wires the SSD1677/SSD1683 wide-panel post-display sequence.
func NewSSD1677(cfg *model.Config) *driver.Driver {
	d := driver.New(cfg)
	var mode atomic.Int32
	d.CustomInit = func(h hal.HAL, cfg *model.Config, m seqlang.Mode, cancel *atomic.Bool) error {
		mode.Store(int32(m))
		return seqlang.Init(h, cfg, m, cancel)
	}
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		if seqlang.Mode(mode.Load()) == seqlang.ModePartial {
			return runRaw(h, cfg, cmd(0x22, 0xFF), cmd(0x20), waitBusy)
		}
		return runRaw(h, cfg, cmd(0x22, 0xF7), cmd(0x20), waitBusy)
	}
	return d
}

// NewColorGate wires the 4-color gate-driver family's charge-pump
// pre-display and power-down post-display sequence.
func NewColorGate(cfg *model.Config) *driver.Driver {
	d := driver.New(cfg)
	d.PreDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		return runRaw(h, cfg, cmd(0x68, 0x01), cmd(0x04), waitBusy)
	}
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		return runRaw(h, cfg,
			cmd(0x68, 0x00),
			cmd(0x12, 0x01), waitBusy,
			cmd(0x02, 0x00), waitBusy,
		)
	}
	return d
}

// NewACeP wires the 7-color ACeP power-cycled refresh: power-on, an
// optional re-booster step (7in3e), refresh, and a dual-polarity
// power-off wait followed by a fixed hold. reBooster is nil for models
// that don't need it.
func NewACeP(cfg *model.Config, reBooster []byte) *driver.Driver {
	d := driver.New(cfg)
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		if err := seqlang.SendCommand(h, 0x04); err != nil {
			return err
		}
		if err := hal.WaitBusy(h, cfg.BusyPolarity, cancel, "acep.power_on"); err != nil {
			return err
		}
		if reBooster != nil {
			if err := seqlang.SendCommand(h, reBooster[0]); err != nil {
				return err
			}
			for _, b := range reBooster[1:] {
				if err := seqlang.SendData(h, b); err != nil {
					return err
				}
			}
		}
		if err := seqlang.SendCommand(h, 0x12); err != nil {
			return err
		}
		if err := hal.WaitBusy(h, cfg.BusyPolarity, cancel, "acep.refresh"); err != nil {
			return err
		}
		if err := seqlang.SendCommand(h, 0x02); err != nil {
			return err
		}
		inverted := hal.BusyLow
		if cfg.BusyPolarity == hal.BusyLow {
			inverted = hal.BusyHigh
		}
		if err := hal.WaitBusy(h, inverted, cancel, "acep.power_off"); err != nil {
			return err
		}
		h.DelayMS(200)
		return nil
	}
	return d
}

// invert returns a byte-wise bitwise inversion of buf, allocated fresh —
// the transient second-buffer copy the UC8179 dual-buffer family requires.
func invert(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = ^b
	}
	return out
}

// NewDualBuffer wires the UC8176/UC8179 two-payload display write. The
// second buffer sent on cfg.DisplayCmd2 is a fresh bitwise inversion of
// buf, matching the 7in5_v2 variant's documented requirement.
func NewDualBuffer(cfg *model.Config) *driver.Driver {
	d := driver.New(cfg)
	d.CustomDisplay = func(h hal.HAL, cfg *model.Config, buf []byte, cancel *atomic.Bool) error {
		if err := seqlang.SendCommand(h, cfg.DisplayCmd); err != nil {
			return err
		}
		if err := sendBulk(h, buf); err != nil {
			return err
		}
		if cfg.DisplayCmd2 != 0 {
			if err := seqlang.SendCommand(h, cfg.DisplayCmd2); err != nil {
				return err
			}
			if err := sendBulk(h, invert(buf)); err != nil {
				return err
			}
		}
		return nil
	}
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		if err := seqlang.SendCommand(h, 0x12); err != nil {
			return err
		}
		h.DelayMS(100)
		return hal.WaitBusy(h, cfg.BusyPolarity, cancel, "dualbuf.post_display")
	}
	return d
}

// sendBulk mirrors seqlang's unexported data-framing for a bulk write,
// re-derived here since overrides only has SendCommand/SendData access.
func sendBulk(h hal.HAL, data []byte) error {
	if err := h.DigitalWrite(hal.DC, 1); err != nil {
		return err
	}
	return h.SPIWriteBulk(data)
}

// NewDualBufferColor wires the 3-color dual-buffer family (epd7in5b_v2):
// two independent plane buffers sent verbatim on DisplayCmd/DisplayCmd2
// (no inversion — each plane already carries its own meaning), plus
// regional refresh with the documented white-fill old-data buffer.
//
// The generic DisplayFunc signature carries a single buf, so Device packs
// both mono planes back-to-back (black plane then red/yellow plane, each
// one mono framebuffer's byte length) before calling in; CustomDisplay
// splits them back apart at the halfway point.
func NewDualBufferColor(cfg *model.Config) *driver.Driver {
	d := driver.New(cfg)
	d.CustomDisplay = func(h hal.HAL, cfg *model.Config, buf []byte, cancel *atomic.Bool) error {
		half := len(buf) / 2
		black, red := buf[:half], buf[half:]
		if err := seqlang.SendCommand(h, cfg.DisplayCmd); err != nil {
			return err
		}
		if err := sendBulk(h, black); err != nil {
			return err
		}
		if cfg.DisplayCmd2 != 0 {
			if err := seqlang.SendCommand(h, cfg.DisplayCmd2); err != nil {
				return err
			}
			if err := sendBulk(h, red); err != nil {
				return err
			}
		}
		return nil
	}
	d.PostDisplay = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		if err := seqlang.SendCommand(h, 0x12); err != nil {
			return err
		}
		h.DelayMS(100)
		return hal.WaitBusy(h, cfg.BusyPolarity, cancel, "dualbuf.post_display")
	}
	d.CustomDisplayRegion = func(h hal.HAL, cfg *model.Config, region driver.Region, buf []byte, cancel *atomic.Bool) error {
		return regionalRefresh(h, cfg, region, buf, cancel, true)
	}
	d.PostDisplayRegion = func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error {
		return seqlang.SendCommand(h, 0x92)
	}
	return d
}

// regionalRefresh implements the UC8179 regional-refresh byte protocol:
// enter partial mode, program the byte-aligned window, write the region's
// slice of the buffer, refresh, and wait-busy. whiteFillOld additionally
// sends an all-white "old data" buffer via 0x10 ahead of the new-data
// write on 0x13, as the 7in5b_v2 variant requires.
func regionalRefresh(h hal.HAL, cfg *model.Config, region driver.Region, buf []byte, cancel *atomic.Bool, whiteFillOld bool) error {
	if err := seqlang.SendCommand(h, 0x91); err != nil {
		return err
	}
	x0, x1 := region.X&^0x7, (region.X+region.Width-1)|0x7
	y0, y1 := region.Y, region.Y+region.Height-1
	window := []byte{
		byte(x0 >> 8), byte(x0),
		byte(x1 >> 8), byte(x1 | 0x07),
		byte(y0 >> 8), byte(y0),
		byte(y1 >> 8), byte(y1),
		0x01,
	}
	if err := seqlang.SendCommand(h, 0x90); err != nil {
		return err
	}
	for _, b := range window {
		if err := seqlang.SendData(h, b); err != nil {
			return err
		}
	}
	if whiteFillOld {
		oldData := make([]byte, len(buf))
		for i := range oldData {
			oldData[i] = 0xFF
		}
		if err := seqlang.SendCommand(h, 0x10); err != nil {
			return err
		}
		if err := sendBulk(h, oldData); err != nil {
			return err
		}
	}
	if err := seqlang.SendCommand(h, 0x13); err != nil {
		return err
	}
	if err := sendBulk(h, buf); err != nil {
		return err
	}
	if err := seqlang.SendCommand(h, 0x12); err != nil {
		return err
	}
	h.DelayMS(100)
	return hal.WaitBusy(h, cfg.BusyPolarity, cancel, "regional.refresh")
}
