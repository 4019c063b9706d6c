package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/rsvp/internal/config"
	"github.com/roach88/rsvp/internal/display"
	"github.com/roach88/rsvp/internal/engine"
	"github.com/roach88/rsvp/internal/store"
	"github.com/roach88/rsvp/internal/text"
)

// ReadOptions holds flags for the read command.
type ReadOptions struct {
	*RootOptions
	Rate      float64 // words per minute; overrides saved settings when set
	FromStart bool    // ignore the saved position
	Paused    bool    // show the first word without starting playback
	Width     int     // terminal line width
	NoColor   bool    // disable the ANSI highlight

	ids store.IDGenerator
}

// ReadSummary is the result of a read command.
type ReadSummary struct {
	SessionID  string  `json:"session_id"`
	Title      string  `json:"title"`
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Total      int     `json:"total"`
	Rate       float64 `json:"rate"`
}

func (s ReadSummary) String() string {
	return fmt.Sprintf("Read %d/%d words of %s at %.0f wpm", min(s.EndIndex, s.Total), s.Total, s.Title, s.Rate)
}

// NewReadCommand creates the read command.
func NewReadCommand(rootOpts *RootOptions) *cobra.Command {
	return newReadCommand(rootOpts, store.UUIDv7Generator{})
}

func newReadCommand(rootOpts *RootOptions, ids store.IDGenerator) *cobra.Command {
	opts := &ReadOptions{RootOptions: rootOpts, ids: ids}

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Read a text file one word at a time",
		Long: `Present a document word by word at a fixed point on the screen.

Each word is shown for 60000/rate milliseconds, longer after punctuation.
Reading resumes where you last stopped in the same document unless
--from-start is given. Type a command and press enter while reading:

` + commandHelp + `

Use "-" to read the document from stdin; commands are then unavailable and
the document plays to the end.

Examples:
  rsvp read article.txt
  rsvp read article.txt --rate 450
  rsvp read article.txt --from-start --paused
  cat notes.txt | rsvp read -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, opts, args[0])
		},
	}

	cmd.Flags().Float64VarP(&opts.Rate, "rate", "r", config.DefaultRate, "reading rate in words per minute")
	cmd.Flags().BoolVar(&opts.FromStart, "from-start", false, "ignore the saved position")
	cmd.Flags().BoolVar(&opts.Paused, "paused", false, "start paused")
	cmd.Flags().IntVar(&opts.Width, "width", display.DefaultWidth, "line width in columns")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable the highlight colour")

	return cmd
}

func runRead(cmd *cobra.Command, opts *ReadOptions, path string) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	raw, title, err := readText(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	total := len(text.Tokenize(raw))
	if total == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no words to read in %s", path))
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	// Persistence outlives an interrupted context.
	ctx := context.WithoutCancel(cmd.Context())

	settings, err := effectiveSettings(ctx, cmd, st, cfg, opts.Rate)
	if err != nil {
		return err
	}

	docHash := store.DocumentHash(raw)
	startIndex := 0
	if !opts.FromStart {
		pos, ok, err := st.LoadPosition(ctx, docHash)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load position", err)
		}
		if ok && pos.Index < total {
			startIndex = pos.Index
		}
	}

	session := store.Session{
		ID:         opts.ids.Generate(),
		DocHash:    docHash,
		Title:      title,
		StartIndex: startIndex,
		Total:      total,
		Rate:       settings.Rate,
		StartedAt:  time.Now(),
	}
	if err := st.StartSession(ctx, session); err != nil {
		return WrapExitError(ExitCommandError, "failed to start session", err)
	}

	renderer := display.Renderer{
		Width:          opts.Width,
		Color:          settings.Highlight && !opts.NoColor,
		FixationMarker: settings.FixationMarker,
	}

	loop := engine.NewLoop()
	r := newReader(loop, st, settings, renderer, cmd.OutOrStdout(), opts.Format == "json")

	g, gctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return loop.Run(gctx)
	})

	if err := loop.Call(gctx, func() { r.start(raw, startIndex, opts.Paused) }); err != nil {
		loop.Close()
		_ = g.Wait()
		return WrapExitError(ExitFailure, "failed to start playback", err)
	}

	var lines chan string
	if path != "-" {
		lines = make(chan string)
		go scanLines(cmd.InOrStdin(), lines, r.done)
	}
	g.Go(func() error {
		return r.dispatch(gctx, lines)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "playback failed", err)
	}

	// The loop has stopped; the engine is no longer shared.
	summary := ReadSummary{
		SessionID:  session.ID,
		Title:      title,
		StartIndex: startIndex,
		EndIndex:   r.eng.Index(),
		Total:      total,
		Rate:       r.settings.Rate,
	}

	now := time.Now()
	if err := st.SavePosition(ctx, store.Position{
		DocHash:   docHash,
		Index:     summary.EndIndex,
		Total:     total,
		UpdatedAt: now,
	}); err != nil {
		return WrapExitError(ExitCommandError, "failed to save position", err)
	}
	if err := st.FinishSession(ctx, session.ID, summary.EndIndex, summary.Rate, now); err != nil {
		return WrapExitError(ExitCommandError, "failed to finish session", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if !f.IsJSON() {
		// End the word line.
		fmt.Fprintln(f.Writer)
	}
	return f.Success(summary)
}

// effectiveSettings layers saved settings and the --rate flag over the
// config file.
func effectiveSettings(ctx context.Context, cmd *cobra.Command, st *store.Store, cfg config.Config, rate float64) (config.Settings, error) {
	settings := cfg.Settings

	saved, ok, err := st.LoadSettings(ctx)
	if err != nil {
		return config.Settings{}, WrapExitError(ExitCommandError, "failed to load settings", err)
	}
	if ok {
		settings = saved
	}

	if cmd.Flags().Changed("rate") {
		settings.Rate = rate
	}
	settings.Rate = config.ClampRate(settings.Rate)
	return settings, nil
}
