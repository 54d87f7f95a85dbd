//go:build !tinygo

// Maestro runs the demo application on a simulated board: a window showing
// the LED strip by default, or a headless soak run with -headless.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"quark/app"
	"quark/hal"
	"quark/internal/buildinfo"
	"quark/internal/config"
	"quark/internal/logging"
	"quark/kernel"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to YAML config (optional)")
		headless    = flag.Bool("headless", false, "run without a window")
		duration    = flag.Duration("duration", 0, "headless: stop after this long (0 = until interrupted)")
		logEvery    = flag.Duration("log-every", 2*time.Second, "headless: LED strip log interval")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("maestro", buildinfo.Short())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "maestro:", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	defer logger.Sync()

	board := hal.NewHostBoard(cfg.Board.LEDs, logger.Named("board"))
	sys := app.New(board, app.Config{
		BlinkTimeout:    cfg.Demo.BlinkTimeout.Std(),
		MessengerPeriod: cfg.Demo.MessengerPeriod.Std(),
		Heartbeat:       cfg.Demo.Heartbeat.Std(),
	}, logger)

	if *headless {
		if err := runHeadless(board, logger, *duration, *logEvery); err != nil {
			logger.Fatal("headless run failed", zap.Error(err))
		}
		return
	}

	if err := hal.RunWindow(board, hal.WindowConfig{
		Title:    "maestro",
		OnButton: sys.PressButton,
		Status:   sys.Status,
	}); err != nil {
		logger.Fatal("window closed with error", zap.Error(err))
	}
}

func runHeadless(board *hal.HostBoard, logger *zap.Logger, duration, logEvery time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// A timed run ends the stats goroutine too.
		defer cancel()
		return hal.RunHeadless(ctx, board, logger.Named("board"), hal.HeadlessConfig{
			LogEvery: logEvery,
			Duration: duration,
		})
	})
	g.Go(func() error {
		t := time.NewTicker(10 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				snap := kernel.Stats()
				logger.Info("kernel",
					zap.Uint32("tick", uint32(snap.Ticks)),
					zap.Int("queues", len(snap.Queues)),
					zap.Int("tasks", len(snap.Tasks)))
			}
		}
	})

	err := g.Wait()
	if err == context.Canceled {
		return nil
	}
	return err
}
