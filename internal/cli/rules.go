package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/nathfavour/blubot/pkg/config"
	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/rulebook"
	"github.com/nathfavour/blubot/pkg/watcher"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errShadowed = errors.New("rule book has shadowed triggers")

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the rule book",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the rules in match priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rulebook.Open(config.Load(viper.GetViper()).RulesFile)
		if err != nil {
			return err
		}
		printRules(cmd.OutOrStdout(), r)
		return nil
	},
}

func printRules(w io.Writer, r *responder.Responder) {
	rules := r.Table().Rules()
	nameWidth := len("RULE")
	for _, rule := range rules {
		nameWidth = max(nameWidth, runewidth.StringWidth(rule.Name))
	}

	fmt.Fprintf(w, "%-3s %s %-9s %s\n", "#", runewidth.FillRight("RULE", nameWidth), "REPLIES", "TRIGGERS")
	for i, rule := range rules {
		triggers := runewidth.Truncate(strings.Join(quoteAll(rule.Triggers), ", "), 60, "…")
		fmt.Fprintf(w, "%-3d %s %-9d %s\n", i+1, runewidth.FillRight(rule.Name, nameWidth), len(rule.Responses), triggers)
	}
	fmt.Fprintf(w, "fallback: %s\n", r.Fallback())
}

func quoteAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}

// lintRules prints shadow findings for the rule book at path and returns
// errShadowed when there are any.
func lintRules(w io.Writer, path string) error {
	r, err := rulebook.Open(path)
	if err != nil {
		return err
	}
	shadows := responder.Shadows(r.Table())
	if len(shadows) == 0 {
		fmt.Fprintf(w, "ok: %d rules, no shadowed triggers\n", r.Table().Len())
		return nil
	}
	for _, s := range shadows {
		line := s.String()
		if s.FullyShadowed {
			line += " (rule can never match)"
		}
		fmt.Fprintln(w, line)
	}
	return fmt.Errorf("%w: %d found", errShadowed, len(shadows))
}

var rulesLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report triggers hidden behind earlier rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Load(viper.GetViper()).RulesFile
		out := cmd.OutOrStdout()

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			return lintRules(out, path)
		}
		if path == "" {
			return errors.New("--watch needs a rule book file (--rules)")
		}

		report := func(string) {
			if err := lintRules(out, path); err != nil && !errors.Is(err, errShadowed) {
				fmt.Fprintln(out, "error:", err)
			}
		}
		report(path)

		w, err := watcher.New(path, watcher.DefaultDebounce, report)
		if err != nil {
			return err
		}
		defer w.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return w.Run(ctx)
	},
}

var rulesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active rule book as HJSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := rulebook.Open(config.Load(viper.GetViper()).RulesFile)
		if err != nil {
			return err
		}
		data, err := rulebook.Encode(rulebook.Book{Fallback: r.Fallback(), Rules: r.Table().Rules()})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rulesLintCmd.Flags().Bool("watch", false, "Re-run whenever the rule book changes")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesLintCmd)
	rulesCmd.AddCommand(rulesExportCmd)
	rootCmd.AddCommand(rulesCmd)
}
