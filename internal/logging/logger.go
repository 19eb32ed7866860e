package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger as the slog default. It runs
// before the database is up; once connected, main swaps the default
// for a MultiHandler that also feeds the system_logs sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
