package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rsvp/internal/config"
	"github.com/roach88/rsvp/internal/store"
	"github.com/roach88/rsvp/internal/text"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
	LogFile    string

	closeLog func() error
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Execute runs the rsvp command line with args. Logging set up for the
// command is released however it ends, including on error.
func Execute(ctx context.Context, args []string) error {
	cmd, opts := newRootCommand()
	cmd.SetArgs(args)
	return executeRoot(ctx, cmd, opts)
}

func executeRoot(ctx context.Context, cmd *cobra.Command, opts *RootOptions) (err error) {
	defer func() {
		if cerr := opts.closeLogging(); err == nil && cerr != nil {
			err = fmt.Errorf("close log file: %w", cerr)
		}
	}()
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand creates the root command for the rsvp CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *RootOptions) {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rsvp",
		Short: "rsvp - rapid serial visual presentation reader",
		Long: `A speed reader that flashes one word at a time at a fixed point,
pausing longer on punctuation and remembering where you left off.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setupLogging(cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.closeLogging()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "also write JSON logs to this file")

	// Add subcommands
	cmd.AddCommand(NewReadCommand(opts))
	cmd.AddCommand(NewTokensCommand(opts))
	cmd.AddCommand(NewEstimateCommand(opts))
	cmd.AddCommand(NewSettingsCommand(opts))
	cmd.AddCommand(NewSessionsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd, opts
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the config file and applies the global overrides.
func (o *RootOptions) loadConfig() (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.DBPath != "" {
		cfg.Database = o.DBPath
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}
	return cfg, nil
}

// openStore opens the database named by cfg.
func openStore(cfg config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// rate resolves the reading rate for commands that take --rate: the flag
// when given, otherwise the saved settings, otherwise the config file.
// A database that does not exist yet is left alone.
func (o *RootOptions) rate(cmd *cobra.Command, flagRate float64) (float64, error) {
	if cmd.Flags().Changed("rate") {
		if err := text.ValidateRate(flagRate); err != nil {
			return 0, WrapExitError(ExitCommandError, "invalid --rate", err)
		}
		return flagRate, nil
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return 0, err
	}
	if _, err := os.Stat(cfg.Database); err != nil {
		return config.ClampRate(cfg.Settings.Rate), nil
	}

	st, err := openStore(cfg)
	if err != nil {
		return 0, err
	}
	defer st.Close()

	settings, err := effectiveSettings(cmd.Context(), cmd, st, cfg, flagRate)
	if err != nil {
		return 0, err
	}
	return settings.Rate, nil
}
