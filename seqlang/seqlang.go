// Package seqlang interprets the sentinel-opcode byte language model
// configs use to encode panel init/refresh sequences: a flat stream of
// command/data groups interspersed with control opcodes (reset, delay,
// wait-busy, cursor/window setup, end). It is the fetch-decode-dispatch
// core of the driver runtime, generalized from a CPU instruction stream to
// a fixed hardware command vocabulary.
package seqlang

import (
	"fmt"
	"sync/atomic"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/model"
)

// Sentinel opcodes, all >= commandThreshold. Bytes below commandThreshold
// are commands, each followed by a 1-byte data count and that many data
// bytes.
const (
	SetCursor byte = 0xF9 // cursor-reset commands 0x4E=0, 0x4F=0,0
	SetWindow byte = 0xFA // X/Y window commands from model width/height
	SwReset   byte = 0xFB // send 0x12; wait busy
	HwReset   byte = 0xFC // 3-phase reset pin toggle
	DelayMs   byte = 0xFD // next byte is a 0..255 ms delay
	End       byte = 0xFE // terminate successfully
	WaitBusy  byte = 0xFF // poll busy pin with timeout
)

const commandThreshold = 0xF0

// swResetCmd is the SSD1680-family software-reset command byte emitted by
// SwReset, matching periph.io/x/devices' waveshare2in13v4 swReset const.
const swResetCmd byte = 0x12

// Cursor/window command bytes, matching the same vendor driver's
// setRAMXAddressCounter/setRAMYAddressCounter/setRAMXAddressStartEndPosition/
// setRAMYAddressStartEndPosition constants.
const (
	cmdSetCursorX byte = 0x4E
	cmdSetCursorY byte = 0x4F
	cmdSetWindowX byte = 0x44
	cmdSetWindowY byte = 0x45
)

// Mode selects which of a model's init sequences Init walks.
type Mode int

const (
	ModeFull Mode = iota
	ModeFast
	ModePartial
)

// SendCommand and SendData expose the DC-gated command/data framing to
// driver overrides that need to emit bytes outside a static sequence
// (e.g. a power-cycled refresh with hardware-polled intermediate steps).
func SendCommand(h hal.HAL, cmd byte) error { return sendCommand(h, cmd) }
func SendData(h hal.HAL, b byte) error      { return sendData(h, b) }

func sendCommand(h hal.HAL, cmd byte) error {
	if err := h.DigitalWrite(hal.DC, 0); err != nil {
		return err
	}
	return h.SPIWriteByte(cmd)
}

func sendData(h hal.HAL, b byte) error {
	if err := h.DigitalWrite(hal.DC, 1); err != nil {
		return err
	}
	return h.SPIWriteByte(b)
}

func sendDataBulk(h hal.HAL, data []byte) error {
	if err := h.DigitalWrite(hal.DC, 1); err != nil {
		return err
	}
	return h.SPIWriteBulk(data)
}

func truncated(detail string) error {
	return &epderr.InitError{Operation: "seqlang.Run", Details: detail}
}

// Run walks seq against h, using cfg for busy polarity, reset timing, and
// window dimensions, observing cancel (may be nil) during every wait-busy.
// It returns on the first non-OK step with no partial rollback, per
// the documented propagation policy.
func Run(h hal.HAL, cfg *model.Config, seq []byte, cancel *atomic.Bool) error {
	i := 0
	for i < len(seq) {
		b := seq[i]
		i++

		if b < commandThreshold {
			if i >= len(seq) {
				return truncated("command byte missing its data-count byte")
			}
			n := int(seq[i])
			i++
			if i+n > len(seq) {
				return truncated(fmt.Sprintf("command 0x%02X declares %d data bytes but only %d remain", b, n, len(seq)-i))
			}
			data := seq[i : i+n]
			i += n
			if err := sendCommand(h, b); err != nil {
				return err
			}
			for _, d := range data {
				if err := sendData(h, d); err != nil {
					return err
				}
			}
			continue
		}

		switch b {
		case WaitBusy:
			if err := hal.WaitBusy(h, cfg.BusyPolarity, cancel, "seqlang.wait_busy"); err != nil {
				return err
			}
		case DelayMs:
			if i >= len(seq) {
				return truncated("SEQ_DELAY_MS missing its delay byte")
			}
			ms := int(seq[i])
			i++
			h.DelayMS(ms)
		case HwReset:
			if err := hal.HardwareReset(h, cfg.ResetMS); err != nil {
				return err
			}
		case SwReset:
			if err := sendCommand(h, swResetCmd); err != nil {
				return err
			}
			if err := hal.WaitBusy(h, cfg.BusyPolarity, cancel, "seqlang.sw_reset"); err != nil {
				return err
			}
		case SetWindow:
			if err := emitSetWindow(h, cfg); err != nil {
				return err
			}
		case SetCursor:
			if err := emitSetCursor(h); err != nil {
				return err
			}
		case End:
			return nil
		default:
			return truncated(fmt.Sprintf("unrecognized opcode 0x%02X", b))
		}
	}
	return truncated("sequence ended without SEQ_END")
}

// emitSetCursor resets the RAM address counters to the origin: command
// 0x4E with a single zero data byte, then 0x4F with two zero data bytes.
func emitSetCursor(h hal.HAL) error {
	if err := sendCommand(h, cmdSetCursorX); err != nil {
		return err
	}
	if err := sendData(h, 0); err != nil {
		return err
	}
	if err := sendCommand(h, cmdSetCursorY); err != nil {
		return err
	}
	if err := sendData(h, 0); err != nil {
		return err
	}
	return sendData(h, 0)
}

// emitSetWindow programs the full-panel RAM address window: X in
// byte-aligned columns (command 0x44), Y in row units across two bytes per
// bound (command 0x45), matching the SSD1680-family addressing convention.
func emitSetWindow(h hal.HAL, cfg *model.Config) error {
	xEnd := (cfg.Width - 1) >> 3
	if err := sendCommand(h, cmdSetWindowX); err != nil {
		return err
	}
	if err := sendData(h, 0x00); err != nil {
		return err
	}
	if err := sendData(h, byte(xEnd)); err != nil {
		return err
	}

	yEnd := cfg.Height - 1
	if err := sendCommand(h, cmdSetWindowY); err != nil {
		return err
	}
	if err := sendData(h, 0x00); err != nil {
		return err
	}
	if err := sendData(h, 0x00); err != nil {
		return err
	}
	if err := sendData(h, byte(yEnd&0xFF)); err != nil {
		return err
	}
	return sendData(h, byte((yEnd>>8)&0xFF))
}

// selectSequence implements the fast -> partial -> full fallback: a mode
// with no dedicated sequence falls through to the next-most-general one.
func selectSequence(cfg *model.Config, mode Mode) []byte {
	if mode == ModeFast && cfg.Init.Fast != nil {
		return cfg.Init.Fast
	}
	if (mode == ModeFast || mode == ModePartial) && cfg.Init.Partial != nil {
		return cfg.Init.Partial
	}
	return cfg.Init.Full
}

// Init runs the init sequence selected for mode against h.
func Init(h hal.HAL, cfg *model.Config, mode Mode, cancel *atomic.Bool) error {
	return Run(h, cfg, selectSequence(cfg, mode), cancel)
}

// Display emits the primary display command followed by a bulk write of
// buf, then the secondary display command (no payload) when the model
// defines one.
func Display(h hal.HAL, cfg *model.Config, buf []byte) error {
	if err := sendCommand(h, cfg.DisplayCmd); err != nil {
		return err
	}
	if err := sendDataBulk(h, buf); err != nil {
		return err
	}
	if cfg.DisplayCmd2 != 0 {
		if err := sendCommand(h, cfg.DisplayCmd2); err != nil {
			return err
		}
	}
	return nil
}

// Sleep emits the model's deep-sleep command/data pair.
func Sleep(h hal.HAL, cfg *model.Config) error {
	if err := sendCommand(h, cfg.SleepCmd); err != nil {
		return err
	}
	for _, d := range cfg.SleepData {
		if err := sendData(h, d); err != nil {
			return err
		}
	}
	return nil
}
