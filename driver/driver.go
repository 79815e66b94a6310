// Package driver binds a model configuration to an optional set of
// per-family override hooks. A nil hook falls back to the generic
// sequence-interpreter path in seqlang; a non-nil hook replaces (or, for
// pre/post hooks, augments) that path for panels whose refresh semantics
// the sequence language cannot express — LUT selection, dual-buffer
// writes, power-cycled ACeP refresh, regional partial refresh.
package driver

import (
	"sync/atomic"

	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/model"
	"github.com/gopanel/epd/seqlang"
)

// Region is a byte-aligned rectangular window for a regional (partial)
// refresh. Override implementations are responsible for enforcing their
// controller's alignment constraints (e.g. UC8179 rounds X to multiples
// of 8).
type Region struct {
	X, Y, Width, Height int
}

// InitFunc replaces the generic epd_generic_init path.
type InitFunc func(h hal.HAL, cfg *model.Config, mode seqlang.Mode, cancel *atomic.Bool) error

// DisplayFunc replaces the generic epd_generic_display path.
type DisplayFunc func(h hal.HAL, cfg *model.Config, buf []byte, cancel *atomic.Bool) error

// HookFunc is a pre/post-display side effect that runs around the display
// body regardless of whether it was overridden.
type HookFunc func(h hal.HAL, cfg *model.Config, cancel *atomic.Bool) error

// DisplayRegionFunc implements a model family's regional refresh.
type DisplayRegionFunc func(h hal.HAL, cfg *model.Config, region Region, buf []byte, cancel *atomic.Bool) error

// Driver binds a model.Config to its optional family-specific overrides.
// The zero value of every hook field is nil, meaning "fall back to the
// generic interpreter path" — most models need no overrides at all.
type Driver struct {
	Config *model.Config

	CustomInit          InitFunc
	CustomDisplay       DisplayFunc
	PreDisplay          HookFunc
	PostDisplay         HookFunc
	CustomDisplayRegion DisplayRegionFunc
	PostDisplayRegion   HookFunc
}

// New builds a Driver with no overrides; callers set hook fields directly
// (see the overrides subpackage for the six tier-2 families).
func New(cfg *model.Config) *Driver {
	return &Driver{Config: cfg}
}

// Init runs the model's init sequence, preferring CustomInit when set.
func (d *Driver) Init(h hal.HAL, mode seqlang.Mode, cancel *atomic.Bool) error {
	if d.CustomInit != nil {
		return d.CustomInit(h, d.Config, mode, cancel)
	}
	return seqlang.Init(h, d.Config, mode, cancel)
}

// Display runs PreDisplay (if set), the display body (CustomDisplay if
// set, else the generic interpreter path), and PostDisplay (if set and
// the body succeeded) — the exact step sequence Device's display
// operation delegates to.
func (d *Driver) Display(h hal.HAL, buf []byte, cancel *atomic.Bool) error {
	if d.PreDisplay != nil {
		if err := d.PreDisplay(h, d.Config, cancel); err != nil {
			return err
		}
	}
	var err error
	if d.CustomDisplay != nil {
		err = d.CustomDisplay(h, d.Config, buf, cancel)
	} else {
		err = seqlang.Display(h, d.Config, buf)
	}
	if err != nil {
		return err
	}
	if d.PostDisplay != nil {
		return d.PostDisplay(h, d.Config, cancel)
	}
	return nil
}

// DisplayRegion runs a regional refresh. Only defined when the model's
// Driver sets CustomDisplayRegion (the sequence language cannot express
// regional addressing); otherwise it is an unsupported operation.
func (d *Driver) DisplayRegion(h hal.HAL, region Region, buf []byte, cancel *atomic.Bool) error {
	if d.CustomDisplayRegion == nil {
		return &epderr.InvalidArgumentError{
			Operation: "driver.DisplayRegion",
			Details:   d.Config.Name + " does not support regional refresh",
		}
	}
	if err := d.CustomDisplayRegion(h, d.Config, region, buf, cancel); err != nil {
		return err
	}
	if d.PostDisplayRegion != nil {
		return d.PostDisplayRegion(h, d.Config, cancel)
	}
	return nil
}

// Sleep runs the model's sleep command/data pair.
func (d *Driver) Sleep(h hal.HAL) error {
	return seqlang.Sleep(h, d.Config)
}
