// Package memhal implements a pure in-memory hal.HAL for host-side
// development and tests: no goroutines, no real timing, every call
// recorded so a test can assert on the exact command/data stream a
// sequence interpreter or driver override produced.
package memhal

import (
	"github.com/gopanel/epd/hal"
)

// Call records one HAL invocation for later inspection by a test.
type Call struct {
	Op    string // "digital_write", "digital_read", "spi_byte", "spi_bulk", "delay_ms"
	Pin   hal.Pin
	Level int
	Bytes []byte
	MS    int
}

// HAL is a deterministic in-memory mock. BUSY alternates 1/0 on every read
// by default so both busy polarities resolve within hal.WaitBusy's
// timeout; tests that need to force a timeout can set Stuck instead.
type HAL struct {
	Calls []Call

	pins map[hal.Pin]int

	// Stuck, when non-nil, is returned verbatim for every BUSY read
	// instead of alternating — used to exercise the timeout path.
	Stuck *int

	busyToggle int
	opened     bool
}

// New builds a memhal.HAL with all pins initialized low.
func New() *HAL {
	return &HAL{
		pins: map[hal.Pin]int{hal.RST: 0, hal.DC: 0, hal.CS: 0, hal.BUSY: 0},
	}
}

func (m *HAL) DigitalWrite(pin hal.Pin, level int) error {
	m.pins[pin] = level
	m.Calls = append(m.Calls, Call{Op: "digital_write", Pin: pin, Level: level})
	return nil
}

func (m *HAL) DigitalRead(pin hal.Pin) (int, error) {
	var level int
	if pin == hal.BUSY {
		if m.Stuck != nil {
			level = *m.Stuck
		} else {
			m.busyToggle ^= 1
			level = m.busyToggle
		}
	} else {
		level = m.pins[pin]
	}
	m.Calls = append(m.Calls, Call{Op: "digital_read", Pin: pin, Level: level})
	return level, nil
}

func (m *HAL) SPIWriteByte(b byte) error {
	m.Calls = append(m.Calls, Call{Op: "spi_byte", Bytes: []byte{b}})
	return nil
}

func (m *HAL) SPIWriteBulk(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Calls = append(m.Calls, Call{Op: "spi_bulk", Bytes: cp})
	return nil
}

func (m *HAL) DelayMS(ms int) {
	m.Calls = append(m.Calls, Call{Op: "delay_ms", MS: ms})
}

func (m *HAL) ModuleInit() error {
	m.opened = true
	return nil
}

func (m *HAL) ModuleExit() error {
	m.opened = false
	return nil
}

// Opened reports whether ModuleInit has been called without a matching
// ModuleExit — useful for asserting Device lifecycle behavior in tests.
func (m *HAL) Opened() bool { return m.opened }

// Commands extracts the command/data byte stream implied by Calls: every
// spi_byte call is a command or data byte in emission order, letting a
// test assert on an exact byte sequence a driver produced.
func (m *HAL) Commands() []byte {
	var out []byte
	for _, c := range m.Calls {
		if c.Op == "spi_byte" {
			out = append(out, c.Bytes...)
		}
	}
	return out
}
