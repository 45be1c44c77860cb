package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nathfavour/blubot/pkg/responder"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/spf13/cobra"
)

func init() {
	askCmd.Flags().Bool("explain", false, "Also print which rule answered")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Print a single reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		explain, _ := cmd.Flags().GetBool("explain")
		answer(cmd.OutOrStdout(), a.responder, a.recorder(), strings.Join(args, " "), explain)
		return nil
	},
}

// answer prints the reply to text. A failed stats write does not stop
// the reply.
func answer(w io.Writer, r *responder.Responder, rec stats.Recorder, text string, explain bool) {
	match := r.Match(text)
	if err := rec.Record("cli", match); err != nil {
		slog.Debug("failed to record match", "error", err)
	}

	if explain {
		if match.Fallback {
			fmt.Fprintln(w, "# fallback")
		} else {
			fmt.Fprintf(w, "# rule %q (#%d) via %q\n", match.Rule, match.Index+1, match.Trigger)
		}
	}
	fmt.Fprintln(w, match.Reply)
}
