package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/rsvp/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Limit int
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recent reading sessions",
		Long: `List reading sessions, newest first.

Examples:
  rsvp sessions
  rsvp sessions --limit 50 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum number of sessions")

	return cmd
}

func runSessions(cmd *cobra.Command, opts *SessionsOptions) error {
	if opts.Limit < 1 {
		return NewExitError(ExitCommandError, "--limit must be at least 1")
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ListSessions(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		if sessions == nil {
			sessions = []store.Session{}
		}
		return f.Success(sessions)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(f.Writer, "No sessions yet.")
		return nil
	}

	var b strings.Builder
	for _, s := range sessions {
		ended := "open"
		if s.Finished() {
			ended = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(&b, "%s  %-20s  %d-%d/%d  %.0f wpm  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Title, s.StartIndex, s.EndIndex, s.Total, s.Rate, ended)
	}
	fmt.Fprint(f.Writer, b.String())
	return nil
}
