//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"quark/internal/buildinfo"
)

// WindowConfig controls the host board window.
type WindowConfig struct {
	Title string
	// OnButton runs on the window goroutine when the user presses space,
	// the simulated board button.
	OnButton func()
	// Status, if set, is drawn as a text overlay each frame.
	Status func() string
}

// RunWindow opens a desktop window showing the board's LED strip. It blocks
// until the window closes. The application's tasks keep running on their own
// goroutines; the window only observes the board.
func RunWindow(b *HostBoard, cfg WindowConfig) error {
	title := cfg.Title
	if title == "" {
		title = "quark"
	}
	g := &boardGame{b: b, cfg: cfg}
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", title, buildinfo.Short()))
	ebiten.SetWindowSize(boardViewWidth(b), boardViewHeight)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

const (
	ledRadius  = 18
	ledPitch   = 56
	ledMarginX = 40
	ledY       = 60

	boardViewHeight = 220
)

func boardViewWidth(b *HostBoard) int {
	return 2*ledMarginX + (b.NumLEDs()-1)*ledPitch + 2*ledRadius
}

type boardGame struct {
	b   *HostBoard
	cfg WindowConfig
}

func (g *boardGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.cfg.OnButton != nil {
		g.cfg.OnButton()
	}
	return nil
}

func (g *boardGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x10, G: 0x10, B: 0x14, A: 0xFF})

	off := color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
	on := color.RGBA{R: 0x30, G: 0xE0, B: 0x40, A: 0xFF}
	for i, lit := range g.b.levels() {
		c := off
		if lit {
			c = on
		}
		x := float32(ledMarginX + ledRadius + i*ledPitch)
		vector.DrawFilledCircle(screen, x, ledY, ledRadius, c, true)
	}

	overlay := "space: button"
	if g.cfg.Status != nil {
		overlay += "\n" + g.cfg.Status()
	}
	ebitenutil.DebugPrintAt(screen, overlay, 8, ledY+2*ledRadius)
}

func (g *boardGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return boardViewWidth(g.b), boardViewHeight
}
