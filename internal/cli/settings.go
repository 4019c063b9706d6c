package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rsvp/internal/config"
)

// SettingsOptions holds flags for the settings set command.
type SettingsOptions struct {
	*RootOptions
	Rate           float64
	FontSize       int
	Highlight      bool
	FixationMarker bool
}

// settingsView renders settings for text output.
type settingsView config.Settings

func (s settingsView) String() string {
	return fmt.Sprintf("rate: %.0f\nfont_size: %d\nhighlight: %t\nfixation_marker: %t",
		s.Rate, s.FontSize, s.Highlight, s.FixationMarker)
}

// NewSettingsCommand creates the settings command with get and set
// subcommands.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change saved reader settings",
		Long: `Saved settings override the config file. Command-line flags on read
override both.

Examples:
  rsvp settings get
  rsvp settings set --rate 400 --highlight=false`,
	}

	cmd.AddCommand(newSettingsGetCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))

	return cmd
}

func newSettingsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get",
		Short:         "Print the effective settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			settings := cfg.Settings
			saved, ok, err := st.LoadSettings(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load settings", err)
			}
			if ok {
				settings = saved
			}

			return newFormatter(rootOpts, cmd).Success(settingsView(settings))
		},
	}
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SettingsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "set",
		Short:         "Change saved settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Rate, "rate", config.DefaultRate, "words per minute (100-1000)")
	cmd.Flags().IntVar(&opts.FontSize, "font-size", 48, "font size for graphical hosts (12-200)")
	cmd.Flags().BoolVar(&opts.Highlight, "highlight", true, "colour the highlight letter")
	cmd.Flags().BoolVar(&opts.FixationMarker, "fixation-marker", true, "show the fixation marker")

	return cmd
}

func runSettingsSet(cmd *cobra.Command, opts *SettingsOptions) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	settings := cfg.Settings
	saved, ok, err := st.LoadSettings(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load settings", err)
	}
	if ok {
		settings = saved
	}

	flags := cmd.Flags()
	if flags.Changed("rate") {
		settings.Rate = opts.Rate
	}
	if flags.Changed("font-size") {
		settings.FontSize = opts.FontSize
	}
	if flags.Changed("highlight") {
		settings.Highlight = opts.Highlight
	}
	if flags.Changed("fixation-marker") {
		settings.FixationMarker = opts.FixationMarker
	}

	candidate := cfg
	candidate.Settings = settings
	if err := config.Validate(candidate); err != nil {
		f := newFormatter(opts.RootOptions, cmd)
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			_ = f.Error(CodeInvalidConfig, "invalid settings", verr.Problems)
		}
		return WrapExitError(ExitCommandError, "invalid settings", err)
	}

	if err := st.SaveSettings(cmd.Context(), settings, time.Now()); err != nil {
		return WrapExitError(ExitCommandError, "failed to save settings", err)
	}

	return newFormatter(opts.RootOptions, cmd).Success(settingsView(settings))
}
