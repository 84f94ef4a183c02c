package main

import (
	"log/slog"
	"os"
)

func main() {
	slog.Info("Started")
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Crashed",
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	if err := runApplication(cfg); err != nil {
		slog.Error("Crashed",
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
	slog.Info("Stopped")
}
