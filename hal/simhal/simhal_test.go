package simhal

import (
	"testing"

	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/pixfmt"
)

func TestNewRejectsNonPositiveDimensions(t *testing.T) {
	if _, err := New(0, 4, pixfmt.Mono); err == nil {
		t.Fatalf("expected an error for zero width")
	}
}

func TestBusyFirstReadIsZero(t *testing.T) {
	s, err := New(8, 8, pixfmt.Mono)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	level, err := s.DigitalRead(hal.BUSY)
	if err != nil {
		t.Fatalf("DigitalRead: %v", err)
	}
	if level != 0 {
		t.Errorf("BUSY = %d, want 0 on the first read", level)
	}
}

func TestSPIWriteBulkDecodesFullFrameWhileDCIsData(t *testing.T) {
	s, err := New(8, 1, pixfmt.Mono)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.DigitalWrite(hal.DC, 1); err != nil {
		t.Fatalf("DigitalWrite: %v", err)
	}
	// 8x1 mono is 1 row byte; all-zero bits mean every pixel maps to
	// palette index 0 (black).
	if err := s.SPIWriteBulk([]byte{0x00}); err != nil {
		t.Fatalf("SPIWriteBulk: %v", err)
	}
	frame := s.LastFrame()
	if frame == nil {
		t.Fatalf("expected a decoded frame after a full-size bulk write")
	}
	r, g, b, _ := frame.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("pixel(0,0) = (%d,%d,%d), want black", r, g, b)
	}
}

func TestSPIWriteBulkIgnoresPartialWritesForRendering(t *testing.T) {
	s, err := New(16, 16, pixfmt.Mono)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.DigitalWrite(hal.DC, 1); err != nil {
		t.Fatalf("DigitalWrite: %v", err)
	}
	if err := s.SPIWriteBulk([]byte{0x00, 0xFF}); err != nil {
		t.Fatalf("SPIWriteBulk: %v", err)
	}
	if s.LastFrame() != nil {
		t.Errorf("expected no decoded frame from an undersized bulk write")
	}
}

func TestSPIWriteBulkIgnoredWhileDCSelectsCommand(t *testing.T) {
	s, err := New(8, 1, pixfmt.Mono)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SPIWriteBulk([]byte{0x00}); err != nil {
		t.Fatalf("SPIWriteBulk: %v", err)
	}
	if s.LastFrame() != nil {
		t.Errorf("expected no decoded frame while DC selects command mode")
	}
}
