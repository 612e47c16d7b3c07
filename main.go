package main

import (
	"log/slog"
	"os"
	"strings"

	fyneapp "fyne.io/fyne/v2/app"

	"batch-gauge/internal/app"
	"batch-gauge/ui/mainwindow"
	"batch-gauge/ui/prefs"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	fyneApp := fyneapp.NewWithID("io.batchgauge.app")
	fyneApp.Settings().SetTheme(&app.GaugeTheme{})

	state := app.NewState(logger)
	p := prefs.Load()

	win := mainwindow.New(fyneApp, state, p)

	// Optional startup arguments: a session file, or a photo optionally
	// followed by a detection payload.
	args := os.Args[1:]
	if len(args) >= 1 && strings.HasSuffix(args[0], ".bgauge") {
		if err := state.LoadSession(args[0]); err != nil {
			logger.Error("startup session load failed", "path", args[0], "error", err)
		}
	} else {
		if len(args) >= 1 {
			if err := state.LoadPhoto(args[0]); err != nil {
				logger.Error("startup photo load failed", "path", args[0], "error", err)
			}
		}
		if len(args) >= 2 {
			if err := state.LoadDetection(args[1]); err != nil {
				logger.Error("startup detection load failed", "path", args[1], "error", err)
			}
		}
	}

	win.ShowAndRun()

	if err := p.Save(); err != nil {
		logger.Warn("saving preferences", "error", err)
	}
}
