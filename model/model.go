// Package model holds the static per-model panel configuration table: the
// data a code-generation pass would derive from vendor init-sequence
// listings. Deriving that table from vendor source is explicitly out of
// scope here; table is hand-populated with one or more representative
// models per tier-2 override category plus two generic-interpreter-only
// models.
package model

import (
	"fmt"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/pixfmt"
)

// Capability is a composable flag describing an optional ability a panel
// exposes beyond a plain full-refresh mono write.
type Capability int

const (
	Partial Capability = 1 << iota
	Fast
	Grayscale
	DualBuf
	Regional
)

// Capabilities is a set of Capability flags.
type Capabilities int

// Has reports whether every flag in want is present in c.
func (c Capabilities) Has(want Capability) bool { return Capabilities(want)&c == Capabilities(want) }

// Sequences bundles the named init-sequence byte streams a model may
// define. Fast and Partial are optional (nil); the generic interpreter
// falls back fast -> partial -> full when a requested mode is absent.
type Sequences struct {
	Full    []byte
	Fast    []byte
	Partial []byte
}

// Config is one panel's immutable static configuration.
type Config struct {
	Name         string
	Width        int
	Height       int
	PixelFormat  pixfmt.Name
	BusyPolarity hal.BusyPolarity
	ResetMS      hal.ResetMS
	DisplayCmd   byte
	DisplayCmd2  byte // 0 means none
	Init         Sequences
	SleepCmd     byte
	SleepData    []byte
	Capabilities Capabilities
}

// table is the static, read-only-after-init model registry. Populated by
// register() calls in this package's init; never mutated afterward.
var table []*Config

func register(c *Config) {
	table = append(table, c)
}

// Lookup finds a model by name via linear search over the static table,
// matching the documented "driver table populated lazily... registered by
// name" model (here populated eagerly at package init instead, since the
// full 70-model vendor code-gen pass is out of scope).
func Lookup(name string) (*Config, error) {
	for _, c := range table {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &epderr.NotFoundError{Kind: "model", Name: name}
}

// Models lists every registered model name, in registration order.
func Models() []string {
	out := make([]string, len(table))
	for i, c := range table {
		out[i] = c.Name
	}
	return out
}

func mustCanonical(name pixfmt.Name) pixfmt.Name {
	if _, err := pixfmt.Canonical(name); err != nil {
		panic(fmt.Sprintf("model: bad canonical pixel format %v: %v", name, err))
	}
	return name
}

func init() {
	register(epd2in13v4Config())
	register(epd2in9v2Config())
	register(epd7in5hdConfig())
	register(epd1in54Config())
	register(epd4in2gray4Config())
	register(epd4in2bv2Config())
	register(epd7in3eConfig())
	register(epd7in5v2Config())
	register(epd7in5bv2Config())
}
