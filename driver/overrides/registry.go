package overrides

import (
	"github.com/gopanel/epd/driver"
	"github.com/gopanel/epd/epderr"
	"github.com/gopanel/epd/model"
)

// epd7in3eReBooster is the re-booster step documented for 7in3e
// specifically: command 0x06 with a 4-byte payload.
var epd7in3eReBooster = []byte{0x06, 0x6F, 0x1F, 0x17, 0x17}

// ForModel builds the Driver for a registered model name, wiring the
// tier-2 override that matches its representative category (see
// DESIGN.md's model table). Models with no override need fall back to a
// plain driver.New, using only the generic sequence interpreter.
func ForModel(name string) (*driver.Driver, error) {
	cfg, err := model.Lookup(name)
	if err != nil {
		return nil, err
	}
	switch name {
	case "epd2in13_v4", "epd2in9_v2":
		return NewSSD1680(cfg), nil
	case "epd7in5_hd":
		return NewSSD1677(cfg), nil
	case "epd4in2b_v2":
		return NewColorGate(cfg), nil
	case "epd7in3e":
		return NewACeP(cfg, epd7in3eReBooster), nil
	case "epd7in5_v2":
		return NewDualBuffer(cfg), nil
	case "epd7in5b_v2":
		return NewDualBufferColor(cfg), nil
	case "epd1in54", "epd4in2_gray4":
		return driver.New(cfg), nil
	default:
		return nil, &epderr.NotFoundError{Kind: "driver override", Name: name}
	}
}
