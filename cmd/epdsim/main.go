// Command epdsim drives a hand-drawn test scene through a full Device
// against the ebiten-backed software panel, for visual smoke-testing a
// model's render/dither/driver pipeline without real hardware. Mirrors
// the placement of the repository's other standalone cmd/ tool: a small,
// single-purpose binary living in its own cmd subdirectory.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gopanel/epd/color"
	"github.com/gopanel/epd/device"
	"github.com/gopanel/epd/dither"
	"github.com/gopanel/epd/hal"
	"github.com/gopanel/epd/hal/simhal"
	"github.com/gopanel/epd/model"
	"github.com/gopanel/epd/pixfmt"
	"github.com/gopanel/epd/raster"
	"github.com/gopanel/epd/render"
	"github.com/gopanel/epd/seqlang"
	"github.com/gopanel/epd/surface"
)

func main() {
	modelName := flag.String("model", "epd7in5_hd", "panel model name to simulate")
	strategyName := flag.String("dither", "floyd_steinberg", "dither strategy: threshold, ordered, floyd_steinberg")
	flag.Parse()

	strategy, err := parseStrategy(*strategyName)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := model.Lookup(*modelName)
	if err != nil {
		log.Fatalf("unknown model %q (known: %v): %v", *modelName, model.Models(), err)
	}

	panel, err := simhal.New(cfg.Width, cfg.Height, cfg.PixelFormat)
	if err != nil {
		log.Fatalf("simhal.New: %v", err)
	}

	dev, err := device.New(*modelName, panel, device.Options{Logger: hal.NewStdLogger()})
	if err != nil {
		log.Fatalf("device.New: %v", err)
	}
	if err := dev.Open(); err != nil {
		log.Fatalf("Open: %v", err)
	}
	defer dev.Close()

	if err := dev.Init(seqlang.ModeFull); err != nil {
		log.Fatalf("Init: %v", err)
	}

	canvas, err := drawScene(cfg.Width, cfg.Height)
	if err != nil {
		log.Fatalf("drawScene: %v", err)
	}

	format, err := pixfmt.Canonical(cfg.PixelFormat)
	if err != nil {
		log.Fatalf("pixfmt.Canonical: %v", err)
	}
	fb, err := render.New(format, strategy).Render(canvas, nil)
	if err != nil {
		log.Fatalf("Render: %v", err)
	}

	if err := dev.Display(fb); err != nil {
		log.Fatalf("Display: %v", err)
	}

	fmt.Printf("rendered %s (%dx%d, %s) with %s dithering; close the window to exit\n",
		*modelName, cfg.Width, cfg.Height, cfg.PixelFormat, strategy)

	// Keep the process alive so the ebiten window stays open; the headless
	// build of simhal has no window and returns immediately from present,
	// so this sleep is the only thing keeping epdsim running there too.
	time.Sleep(time.Hour)
}

func parseStrategy(name string) (dither.Strategy, error) {
	switch name {
	case "threshold":
		return dither.Threshold, nil
	case "ordered":
		return dither.Ordered, nil
	case "floyd_steinberg":
		return dither.FloydSteinberg, nil
	default:
		return 0, fmt.Errorf("epdsim: unknown dither strategy %q", name)
	}
}

// drawScene paints a simple test pattern: a border, a diagonal cross, and
// a filled circle — enough to exercise lines, fills, and the renderer's
// quantization across every supported pixel format.
func drawScene(width, height int) (*surface.Canvas, error) {
	white, err := color.Lookup(color.White)
	if err != nil {
		return nil, err
	}
	black, err := color.Lookup(color.Black)
	if err != nil {
		return nil, err
	}
	red, err := color.Lookup(color.Red)
	if err != nil {
		return nil, err
	}

	canvas, err := surface.NewCanvas(width, height, white)
	if err != nil {
		return nil, err
	}

	raster.DrawLine(canvas, 0, 0, width-1, 0, black, 2)
	raster.DrawLine(canvas, 0, height-1, width-1, height-1, black, 2)
	raster.DrawLine(canvas, 0, 0, 0, height-1, black, 2)
	raster.DrawLine(canvas, width-1, 0, width-1, height-1, black, 2)

	raster.DrawLine(canvas, 0, 0, width-1, height-1, black, 1)
	raster.DrawLine(canvas, 0, height-1, width-1, 0, black, 1)

	cx, cy, r := width/2, height/2, min(width, height)/4
	if _, err := raster.DrawCircle(canvas, cx, cy, r, raster.With(black), raster.With(red), 3); err != nil {
		return nil, err
	}

	return canvas, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
