//go:build headless

package simhal

import "image"

// headlessBackend discards frames instead of opening a window — the same
// role a headless video output backend plays for CI and host-only
// development.
type headlessBackend struct {
	width, height int
}

func newBackend(width, height int) backend {
	return &headlessBackend{width: width, height: height}
}

func (b *headlessBackend) start() error           { return nil }
func (b *headlessBackend) present(_ *image.RGBA) {}
func (b *headlessBackend) stop() error            { return nil }
