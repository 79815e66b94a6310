// Package periphhal implements hal.HAL against real hardware using
// periph.io: an spi.Conn for the byte/bulk SPI writes, and gpio.PinIO for
// the four directly-manipulated pins (RST, DC, CS, BUSY). Grounded on
// periph.io/x/devices' waveshare2in13v4 driver's pin wiring convention
// (dc, cs, rst gpio.PinOut; busy gpio.PinIn, configured gpio.Float +
// gpio.FallingEdge).
package periphhal

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	_ "periph.io/x/host/v3"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/hal"
)

// HAL drives a real panel over an SPI port and four GPIO pins.
type HAL struct {
	conn conn.Conn
	rst  gpio.PinOut
	dc   gpio.PinOut
	cs   gpio.PinOut
	busy gpio.PinIn
}

// Pins names the four GPIO lines the core manipulates directly; CS may be
// nil when the SPI port itself owns chip-select.
type Pins struct {
	RST  gpio.PinOut
	DC   gpio.PinOut
	CS   gpio.PinOut
	Busy gpio.PinIn
}

// New opens an SPI connection at the given clock speed and binds pins,
// matching waveshare2in13v4.New's Connect(4*physic.MegaHertz, spi.Mode0,
// 8) call.
func New(port spi.Port, pins Pins, clockHz physic.Frequency) (*HAL, error) {
	if clockHz == 0 {
		clockHz = 4 * physic.MegaHertz
	}
	c, err := port.Connect(clockHz, spi.Mode0, 8)
	if err != nil {
		return nil, &epderr.InitError{Operation: "periphhal.New", Details: "spi connect", Err: err}
	}
	if err := pins.Busy.In(gpio.Float, gpio.FallingEdge); err != nil {
		return nil, &epderr.InitError{Operation: "periphhal.New", Details: "configure BUSY pin", Err: err}
	}
	return &HAL{conn: c, rst: pins.RST, dc: pins.DC, cs: pins.CS, busy: pins.Busy}, nil
}

func (h *HAL) pin(p hal.Pin) (gpio.PinOut, error) {
	switch p {
	case hal.RST:
		return h.rst, nil
	case hal.DC:
		return h.dc, nil
	case hal.CS:
		if h.cs == nil {
			return nil, fmt.Errorf("periphhal: CS is owned by the SPI port, not wired directly")
		}
		return h.cs, nil
	default:
		return nil, fmt.Errorf("periphhal: pin %v is not an output", p)
	}
}

func (h *HAL) DigitalWrite(pin hal.Pin, level int) error {
	out, err := h.pin(pin)
	if err != nil {
		return err
	}
	l := gpio.Low
	if level != 0 {
		l = gpio.High
	}
	return out.Out(l)
}

func (h *HAL) DigitalRead(pin hal.Pin) (int, error) {
	if pin != hal.BUSY {
		return 0, fmt.Errorf("periphhal: pin %v is not an input", pin)
	}
	if h.busy.Read() == gpio.High {
		return 1, nil
	}
	return 0, nil
}

func (h *HAL) SPIWriteByte(b byte) error {
	return h.SPIWriteBulk([]byte{b})
}

func (h *HAL) SPIWriteBulk(data []byte) error {
	return h.conn.Tx(data, nil)
}

func (h *HAL) DelayMS(ms int) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

// ModuleInit is a no-op: periph.io's host.Init() is a process-wide call
// made once by the caller before constructing any HAL, not per-device.
func (h *HAL) ModuleInit() error { return nil }

// ModuleExit releases nothing periph.io requires explicit teardown for;
// present to satisfy hal.HAL and to mirror the vendor lifecycle shape.
func (h *HAL) ModuleExit() error { return nil }

var _ hal.HAL = (*HAL)(nil)
