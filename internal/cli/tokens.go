package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rsvp/internal/text"
)

// TokensOptions holds flags for the tokens command.
type TokensOptions struct {
	*RootOptions
	Rate float64
}

// TokenInfo describes one token as the reader would show it.
type TokenInfo struct {
	Index      int            `json:"index"`
	Token      string         `json:"token"`
	Split      text.WordSplit `json:"split"`
	DurationMs float64        `json:"duration_ms"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokensOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "List the tokens of a document",
		Long: `Tokenize a document the way the reader does and print every token with
its highlight split and display duration.

Examples:
  rsvp tokens article.txt
  rsvp tokens article.txt --rate 600 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, opts, args[0])
		},
	}

	cmd.Flags().Float64VarP(&opts.Rate, "rate", "r", 0, "reading rate in words per minute (default: saved rate)")

	return cmd
}

func runTokens(cmd *cobra.Command, opts *TokensOptions, path string) error {
	rate, err := opts.rate(cmd, opts.Rate)
	if err != nil {
		return err
	}

	raw, _, err := readText(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	tokens := text.Tokenize(raw)
	infos := make([]TokenInfo, len(tokens))
	for i, tok := range tokens {
		infos[i] = TokenInfo{
			Index:      i,
			Token:      tok,
			Split:      text.Split(tok),
			DurationMs: text.Duration(tok, rate),
		}
	}

	f := newFormatter(opts.RootOptions, cmd)
	if f.IsJSON() {
		return f.Success(infos)
	}

	var b strings.Builder
	for _, info := range infos {
		s := info.Split
		fmt.Fprintf(&b, "%d\t%s\t%s[%s]%s\t%.0fms\n", info.Index, info.Token, s.Before, s.Highlight, s.After, info.DurationMs)
	}
	fmt.Fprint(f.Writer, b.String())
	return nil
}
