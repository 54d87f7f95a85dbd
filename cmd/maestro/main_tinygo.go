//go:build tinygo

// Maestro on hardware: the LED strip maps to real pins, the button raises
// a pin interrupt, and an optional ST7789 panel mirrors the strip.
package main

import (
	"time"

	"quark/app"
	"quark/hal"
)

func main() {
	board := hal.NewTinyBoard(4)
	sys := app.New(board, app.Config{}, nil)
	board.OnButton(sys.PressButton)

	panel, err := hal.NewStatusPanel("maestro")
	if err != nil {
		// No panel wired; the strip alone carries the demo.
		select {}
	}

	for {
		levels := make([]bool, board.NumLEDs())
		for i := range levels {
			levels[i] = board.LED(i).IsOn()
		}
		panel.Show(levels)
		time.Sleep(100 * time.Millisecond)
	}
}
