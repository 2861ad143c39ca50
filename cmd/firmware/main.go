//go:build rp2040

// Command firmware runs the focusdial controller on the RP2040 prototype.
//
// Build with: tinygo flash -target=pico ./cmd/firmware
package main

import (
	"context"
	"log/slog"
	"machine"
	"os"
	"time"

	"github.com/xvierd/focusdial/internal/adapters/board"
	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/services"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	b, err := board.New(board.DefaultConfig())
	if err != nil {
		// Nothing to drive; keep the serial console up so the error is visible.
		for {
			logger.Error("board init failed", "error", err)
			time.Sleep(5 * time.Second)
		}
	}

	ctl := services.NewController(services.Dependencies{
		Input:    b,
		Board:    b,
		Settings: board.NewFlashStore(machine.Flash),
	}, domain.DefaultSettings(), logger)

	if err := ctl.Run(context.Background()); err != nil {
		logger.Error("controller stopped", "error", err)
	}
}
