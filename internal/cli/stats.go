package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/nathfavour/blubot/pkg/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how often each rule answered",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()
		if a.store == nil {
			return fmt.Errorf("statistics are disabled")
		}

		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			if err := a.store.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Statistics cleared.")
			return nil
		}

		hits, err := a.store.List()
		if err != nil {
			return err
		}
		printHits(cmd.OutOrStdout(), hits)
		return nil
	},
}

func printHits(w io.Writer, hits []stats.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No matches recorded yet.")
		return
	}
	ruleWidth := len("RULE")
	for _, h := range hits {
		ruleWidth = max(ruleWidth, runewidth.StringWidth(h.Rule))
	}
	fmt.Fprintf(w, "%s %-9s %8s  %s\n", runewidth.FillRight("RULE", ruleWidth), "SURFACE", "COUNT", "LAST SEEN")
	for _, h := range hits {
		fmt.Fprintf(w, "%s %-9s %8d  %s\n",
			runewidth.FillRight(h.Rule, ruleWidth), h.Surface, h.Count, h.LastSeen.Local().Format("2006-01-02 15:04"))
	}
}

func init() {
	statsCmd.Flags().Bool("reset", false, "Clear all counters")
	rootCmd.AddCommand(statsCmd)
}
