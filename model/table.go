package model

import (
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/pixfmt"
)

// Sentinel opcode bytes, duplicated here as byte constants rather than
// imported from seqlang: model depends on hal and pixfmt only, and seqlang
// depends on model, so model cannot import seqlang without a cycle. The
// values must stay in lockstep with seqlang's exported constants.
const (
	opSetCursor byte = 0xF9
	opSetWindow byte = 0xFA
	opSwReset   byte = 0xFB
	opHwReset   byte = 0xFC
	opDelayMs   byte = 0xFD
	opEnd       byte = 0xFE
	opWaitBusy  byte = 0xFF
)

// cmd builds one command/data-count/data group for an init sequence.
func cmd(op byte, data ...byte) []byte {
	return append([]byte{op, byte(len(data))}, data...)
}

func seq(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var standardReset = hal.ResetMS{PreHigh: 20, Low: 2, PostHigh: 20}

// ssd1680FullLUT and ssd1680PartialLUT are structurally representative
// placeholders for the 30-byte
// waveform blob a real SSD1680 init sequence writes via command 0x32; the
// offline code-generation pass that extracts the real vendor waveform
// tables from C source is explicitly out of scope for this driver core.
var ssd1680FullLUT = []byte{
	0x80, 0x66, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00,
	0x00, 0x10, 0x10, 0x00, 0x00, 0x05, 0x00, 0x03,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

var ssd1680PartialLUT = []byte{
	0x00, 0x40, 0x00, 0x00, 0x00, 0x00, 0x80, 0x80,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func ssd1680FullInit() []byte {
	return seq(
		[]byte{opHwReset},
		[]byte{opSwReset},
		cmd(0x01, 0xF9, 0x00, 0x00), // driver output control
		cmd(0x0C, 0xD7, 0xD6, 0x9D), // booster soft-start control
		cmd(0x2C, 0x36),             // VCOM register write
		cmd(0x3C, 0x05),             // border waveform control
		cmd(0x11, 0x03),             // data entry mode
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		cmd(0x32, ssd1680FullLUT...),
		[]byte{opEnd},
	)
}

func ssd1680PartialInit() []byte {
	return seq(
		cmd(0x2C, 0x26),
		cmd(0x3C, 0x80),
		cmd(0x32, ssd1680PartialLUT...),
		cmd(0x37, 0x00, 0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x00, 0x00),
		cmd(0x22, 0xC0),
		[]byte{opWaitBusy},
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		[]byte{opEnd},
	)
}

func epd2in13v4Config() *Config {
	return &Config{
		Name:         "epd2in13_v4",
		Width:        122,
		Height:       250,
		PixelFormat:  mustCanonical(pixfmt.Mono),
		BusyPolarity: hal.BusyHigh,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		Init:         Sequences{Full: ssd1680FullInit(), Partial: ssd1680PartialInit()},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
		Capabilities: Capabilities(Partial),
	}
}

func epd2in9v2Config() *Config {
	return &Config{
		Name:         "epd2in9_v2",
		Width:        128,
		Height:       296,
		PixelFormat:  mustCanonical(pixfmt.Mono),
		BusyPolarity: hal.BusyHigh,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		Init:         Sequences{Full: ssd1680FullInit(), Partial: ssd1680PartialInit()},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
		Capabilities: Capabilities(Partial),
	}
}

func epd7in5hdConfig() *Config {
	full := seq(
		[]byte{opHwReset},
		[]byte{opSwReset},
		cmd(0x01, 0x17, 0x17, 0x3F, 0x3F), // driver output control, SSD1677/83 wide panel
		cmd(0x18, 0x80),                   // temperature sensor select
		cmd(0x0C, 0xAE, 0xC7, 0xC3, 0xC0, 0x40),
		cmd(0x3C, 0x01),
		cmd(0x11, 0x03),
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd7in5_hd",
		Width:        880,
		Height:       528,
		PixelFormat:  mustCanonical(pixfmt.Mono),
		BusyPolarity: hal.BusyLow,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		Init:         Sequences{Full: full},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
	}
}

func epd1in54Config() *Config {
	full := seq(
		[]byte{opHwReset},
		[]byte{opSwReset},
		cmd(0x01, 0x27, 0x01, 0x00),
		cmd(0x0C, 0xD7, 0xD6, 0x9D),
		cmd(0x2C, 0xA8),
		cmd(0x3A, 0x1A),
		cmd(0x3B, 0x08),
		cmd(0x11, 0x03),
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd1in54",
		Width:        200,
		Height:       200,
		PixelFormat:  mustCanonical(pixfmt.Mono),
		BusyPolarity: hal.BusyHigh,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		Init:         Sequences{Full: full},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
	}
}

func epd4in2gray4Config() *Config {
	full := seq(
		[]byte{opHwReset},
		[]byte{opSwReset},
		cmd(0x74, 0x54),
		cmd(0x7E, 0x3B),
		cmd(0x2B, 0x04, 0x63),
		cmd(0x0C, 0xAE, 0xC7, 0xC3, 0xC0, 0x40),
		cmd(0x01, 0x2B, 0x01, 0x00),
		cmd(0x11, 0x03),
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd4in2_gray4",
		Width:        400,
		Height:       300,
		PixelFormat:  mustCanonical(pixfmt.Gray4),
		BusyPolarity: hal.BusyLow,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		DisplayCmd2:  0x26,
		Init:         Sequences{Full: full},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
		Capabilities: Capabilities(Grayscale),
	}
}

func epd4in2bv2Config() *Config {
	full := seq(
		[]byte{opHwReset},
		[]byte{opSwReset},
		cmd(0x01, 0x2B, 0x01, 0x00),
		cmd(0x0C, 0xAE, 0xC7, 0xC3, 0xC0, 0x40),
		cmd(0x11, 0x03),
		[]byte{opSetWindow},
		[]byte{opSetCursor},
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd4in2b_v2",
		Width:        400,
		Height:       300,
		PixelFormat:  mustCanonical(pixfmt.Color4),
		BusyPolarity: hal.BusyLow,
		ResetMS:      standardReset,
		DisplayCmd:   0x24,
		DisplayCmd2:  0x26,
		Init:         Sequences{Full: full},
		SleepCmd:     0x10,
		SleepData:    []byte{0x01},
	}
}

func epd7in3eConfig() *Config {
	full := seq(
		[]byte{opHwReset},
		cmd(0xAA, 0x49, 0x55, 0x20, 0x08, 0x09, 0x18),
		cmd(0x01, 0x3F),
		cmd(0x00, 0x5F, 0x69),
		cmd(0x03, 0x00, 0x54, 0x00, 0x44),
		cmd(0x05, 0x40, 0x1F, 0x1F, 0x2C),
		cmd(0x06, 0x6F, 0x1F, 0x17, 0x49),
		cmd(0x08, 0x6F, 0x1F, 0x1F, 0x22),
		cmd(0x13, 0x00, 0x04),
		cmd(0x30, 0x3C),
		cmd(0x41, 0x00),
		cmd(0x50, 0x3F),
		cmd(0x60, 0x02, 0x00),
		cmd(0x61, 0x03, 0x20, 0x01, 0xE0),
		cmd(0x82, 0x1E),
		cmd(0x84, 0x00),
		cmd(0x86, 0x00),
		cmd(0xE3, 0x2F),
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd7in3e",
		Width:        800,
		Height:       480,
		PixelFormat:  mustCanonical(pixfmt.Color7),
		BusyPolarity: hal.BusyHigh,
		ResetMS:      standardReset,
		DisplayCmd:   0x10,
		Init:         Sequences{Full: full},
		SleepCmd:     0x07,
		SleepData:    []byte{0xA5},
		Capabilities: Capabilities(0),
	}
}

func epd7in5v2Config() *Config {
	full := seq(
		[]byte{opHwReset},
		cmd(0x01, 0x07, 0x07, 0x3F, 0x3F), // panel setting / driver output control (UC8176)
		cmd(0x00, 0x1F),                   // panel setting
		cmd(0x61, 0x03, 0x20, 0x01, 0xE0), // resolution
		cmd(0x15, 0x00),
		cmd(0x50, 0x10, 0x07),
		cmd(0x60, 0x22),
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd7in5_v2",
		Width:        800,
		Height:       480,
		PixelFormat:  mustCanonical(pixfmt.Mono),
		BusyPolarity: hal.BusyLow,
		ResetMS:      standardReset,
		DisplayCmd:   0x10,
		DisplayCmd2:  0x13,
		Init:         Sequences{Full: full},
		SleepCmd:     0x02,
		SleepData:    nil,
		Capabilities: Capabilities(DualBuf),
	}
}

func epd7in5bv2Config() *Config {
	full := seq(
		[]byte{opHwReset},
		cmd(0x01, 0x07, 0x07, 0x3F, 0x3F),
		cmd(0x00, 0x0F),
		cmd(0x61, 0x03, 0x20, 0x01, 0xE0),
		cmd(0x15, 0x00),
		cmd(0x50, 0x11, 0x07),
		cmd(0x60, 0x22),
		[]byte{opEnd},
	)
	return &Config{
		Name:         "epd7in5b_v2",
		Width:        800,
		Height:       480,
		PixelFormat:  mustCanonical(pixfmt.Color4),
		BusyPolarity: hal.BusyLow,
		ResetMS:      standardReset,
		DisplayCmd:   0x10,
		DisplayCmd2:  0x13,
		Init:         Sequences{Full: full},
		SleepCmd:     0x02,
		SleepData:    nil,
		Capabilities: Capabilities(DualBuf | Regional),
	}
}
