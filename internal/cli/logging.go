package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"

	"github.com/roach88/rsvp/internal/config"
)

// defaultConfigPath returns ~/.rsvp/config.yaml, or "" if the home
// directory is unknown.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rsvp", "config.yaml")
}

// setupLogging installs the default slog logger: text on stderr, plus JSON
// to the log file when one is configured. closeLogging undoes it.
func (o *RootOptions) setupLogging(stderr io.Writer) error {
	prev := slog.Default()
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}),
	}

	logFile := o.LogFile
	if logFile == "" {
		// The config file may name a log file; a broken config is reported
		// by the command that needs it, not here.
		if cfg, err := config.Load(o.ConfigPath); err == nil {
			logFile = cfg.LogFile
		}
	}

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		o.closeLog = func() error {
			slog.SetDefault(prev)
			return f.Close()
		}
	} else {
		o.closeLog = func() error {
			slog.SetDefault(prev)
			return nil
		}
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)))
	return nil
}

// closeLogging restores the logger that setupLogging replaced and closes
// the log file. It is safe to call more than once.
func (o *RootOptions) closeLogging() error {
	if o.closeLog == nil {
		return nil
	}
	closeLog := o.closeLog
	o.closeLog = nil
	return closeLog()
}
