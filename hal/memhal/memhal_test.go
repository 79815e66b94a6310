package memhal

import (
	"testing"

	"github.com/gopanel/epd/hal"
)

func TestNewInitializesAllPinsLow(t *testing.T) {
	m := New()
	for _, pin := range []hal.Pin{hal.RST, hal.DC, hal.CS, hal.BUSY} {
		level, err := m.DigitalRead(pin)
		if err != nil {
			t.Fatalf("DigitalRead(%v): %v", pin, err)
		}
		if pin != hal.BUSY && level != 0 {
			t.Errorf("pin %v = %d, want 0", pin, level)
		}
	}
}

func TestBusyAlternatesByDefault(t *testing.T) {
	m := New()
	first, _ := m.DigitalRead(hal.BUSY)
	second, _ := m.DigitalRead(hal.BUSY)
	if first == second {
		t.Errorf("BUSY reads did not alternate: %d, %d", first, second)
	}
}

func TestStuckOverridesAlternation(t *testing.T) {
	m := New()
	level := 1
	m.Stuck = &level
	for i := 0; i < 3; i++ {
		got, _ := m.DigitalRead(hal.BUSY)
		if got != 1 {
			t.Errorf("read %d: BUSY = %d, want stuck at 1", i, got)
		}
	}
}

func TestModuleInitAndExitTrackOpened(t *testing.T) {
	m := New()
	if m.Opened() {
		t.Fatalf("expected not opened before ModuleInit")
	}
	if err := m.ModuleInit(); err != nil {
		t.Fatalf("ModuleInit: %v", err)
	}
	if !m.Opened() {
		t.Errorf("expected opened after ModuleInit")
	}
	if err := m.ModuleExit(); err != nil {
		t.Fatalf("ModuleExit: %v", err)
	}
	if m.Opened() {
		t.Errorf("expected not opened after ModuleExit")
	}
}

func TestCommandsExtractsSPIByteStreamInOrder(t *testing.T) {
	m := New()
	_ = m.SPIWriteByte(0x01)
	_ = m.SPIWriteBulk([]byte{0xAA, 0xBB}) // bulk writes are not commands
	_ = m.SPIWriteByte(0x10)
	_ = m.SPIWriteByte(0x20)

	got := m.Commands()
	want := []byte{0x01, 0x10, 0x20}
	if len(got) != len(want) {
		t.Fatalf("Commands() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Commands()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestSPIWriteBulkCopiesInputSlice(t *testing.T) {
	m := New()
	data := []byte{0x01, 0x02}
	_ = m.SPIWriteBulk(data)
	data[0] = 0xFF // mutate caller's slice after the call

	if m.Calls[len(m.Calls)-1].Bytes[0] != 0x01 {
		t.Errorf("SPIWriteBulk retained a reference to the caller's slice instead of copying it")
	}
}

func TestDigitalWriteRecordsCallAndPinState(t *testing.T) {
	m := New()
	if err := m.DigitalWrite(hal.DC, 1); err != nil {
		t.Fatalf("DigitalWrite: %v", err)
	}
	level, err := m.DigitalRead(hal.DC)
	if err != nil {
		t.Fatalf("DigitalRead: %v", err)
	}
	if level != 1 {
		t.Errorf("DC = %d, want 1", level)
	}

	found := false
	for _, c := range m.Calls {
		if c.Op == "digital_write" && c.Pin == hal.DC && c.Level == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a recorded digital_write call for DC=1")
	}
}

func TestDelayMSRecordsDuration(t *testing.T) {
	m := New()
	m.DelayMS(42)
	last := m.Calls[len(m.Calls)-1]
	if last.Op != "delay_ms" || last.MS != 42 {
		t.Errorf("last call = %+v, want delay_ms of 42", last)
	}
}
