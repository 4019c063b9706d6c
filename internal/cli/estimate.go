package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rsvp/internal/progress"
	"github.com/roach88/rsvp/internal/text"
)

// EstimateOptions holds flags for the estimate command.
type EstimateOptions struct {
	*RootOptions
	Rate float64
}

// Estimate is the reading-time estimate for a document.
type Estimate struct {
	Words     int     `json:"words"`
	Rate      float64 `json:"rate"`
	Seconds   float64 `json:"seconds"`
	Formatted string  `json:"formatted"`
}

func (e Estimate) String() string {
	return fmt.Sprintf("%d words, %s at %.0f wpm", e.Words, e.Formatted, e.Rate)
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EstimateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "estimate <file>",
		Short: "Estimate the reading time of a document",
		Long: `Sum the display duration of every token, including punctuation pauses,
and print the total as m:ss.

Examples:
  rsvp estimate article.txt
  rsvp estimate article.txt --rate 500`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, opts, args[0])
		},
	}

	cmd.Flags().Float64VarP(&opts.Rate, "rate", "r", 0, "reading rate in words per minute (default: saved rate)")

	return cmd
}

func runEstimate(cmd *cobra.Command, opts *EstimateOptions, path string) error {
	rate, err := opts.rate(cmd, opts.Rate)
	if err != nil {
		return err
	}

	raw, _, err := readText(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	est := estimate(text.Tokenize(raw), rate)
	return newFormatter(opts.RootOptions, cmd).Success(est)
}

func estimate(tokens []string, wpm float64) Estimate {
	var ms float64
	for _, tok := range tokens {
		ms += text.Duration(tok, wpm)
	}
	seconds := ms / 1000
	return Estimate{
		Words:     len(tokens),
		Rate:      wpm,
		Seconds:   seconds,
		Formatted: progress.FormatRemaining(seconds),
	}
}
