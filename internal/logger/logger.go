package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const TimeFormat = "15:04:05"

type Config struct {
	Debug   bool
	Writer  io.Writer // defaults to os.Stderr
	NoColor bool
}

// New builds a tint console logger. Debug lowers the level and adds the
// source location.
func New(cfg Config) *slog.Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  cfg.Debug,
		TimeFormat: TimeFormat,
		NoColor:    cfg.NoColor,
	}))
}

// Setup installs New(cfg) as the slog default and returns it.
func Setup(cfg Config) *slog.Logger {
	l := New(cfg)
	slog.SetDefault(l)
	return l
}
