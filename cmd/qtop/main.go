//go:build !tinygo

// Qtop runs the demo headless and shows live kernel state in the terminal:
// every queue's fill and waiters, every task's notification words. Press b
// to simulate the board button, q to quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"quark/app"
	"quark/hal"
	"quark/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	refresh := flag.Duration("refresh", 200*time.Millisecond, "stats refresh interval")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "qtop:", err)
		os.Exit(1)
	}

	// The demo runs silently; the TUI is the observer.
	board := hal.NewHostBoard(cfg.Board.LEDs, nil)
	sys := app.New(board, app.Config{
		BlinkTimeout:    cfg.Demo.BlinkTimeout.Std(),
		MessengerPeriod: cfg.Demo.MessengerPeriod.Std(),
		Heartbeat:       cfg.Demo.Heartbeat.Std(),
	}, nil)

	p := tea.NewProgram(newModel(board, sys, *refresh), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "qtop:", err)
		os.Exit(1)
	}
}
