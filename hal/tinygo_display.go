//go:build tinygo

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/st7789"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// StatusPanel mirrors the LED strip on an ST7789 panel, for boards whose
// LEDs are hidden in an enclosure. Optional; the board works without it.
type StatusPanel struct {
	d     st7789.Device
	title string
	last  string
}

// NewStatusPanel brings up the panel on SPI0 with the default wiring:
// SCK GP18, SDO GP19, RST GP20, DC GP21, CS GP17, BL GP22.
func NewStatusPanel(title string) (*StatusPanel, error) {
	err := machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP18,
		SDO:       machine.GP19,
		Frequency: 32_000_000,
	})
	if err != nil {
		return nil, err
	}

	d := st7789.New(machine.SPI0, machine.GP20, machine.GP21, machine.GP17, machine.GP22)
	d.Configure(st7789.Config{
		Width:    240,
		Height:   240,
		Rotation: st7789.ROTATION_90,
	})
	d.FillScreen(color.RGBA{A: 0xFF})

	p := &StatusPanel{d: d, title: title}
	tinyfont.WriteLine(&p.d, &freemono.Regular12pt7b, 8, 24, title, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	return p, nil
}

// Show redraws the strip line. Levels render as filled or hollow markers.
func (p *StatusPanel) Show(levels []bool) {
	line := make([]byte, len(levels))
	for i, lit := range levels {
		if lit {
			line[i] = '#'
		} else {
			line[i] = '.'
		}
	}
	s := string(line)
	if s == p.last {
		return
	}
	p.last = s

	p.d.FillRectangle(0, 40, 240, 40, color.RGBA{A: 0xFF})
	tinyfont.WriteLine(&p.d, &freemono.Regular12pt7b, 8, 64, s, color.RGBA{G: 0xFF, A: 0xFF})
}
