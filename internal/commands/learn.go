package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/parser"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Record and review learning time",
}

var learnAddCmd = &cobra.Command{
	Use:   "add <domain> <duration>",
	Short: "Log learning time for a domain",
	Long: `Log learning time for a domain.

Durations: 45, 45m, 2h, 1h30m

Example:
  stickies learn add golang 1h30m`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		domain := strings.TrimSpace(args[0])
		minutes, err := parser.ParseMinutes(args[1])
		if err != nil {
			return err
		}

		if err := a.store.AddLearningTime(ctx, domain, minutes); err != nil {
			return err
		}
		fmt.Printf("📚 Logged %s of %s\n", parser.FormatMinutes(minutes), domain)
		return nil
	}),
}

var learnListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show total learning time per domain",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		totals, err := a.store.GetLearningLogs(ctx)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(os.Stdout, totals)
		}
		if len(totals) == 0 {
			fmt.Println("No learning time logged yet. Use 'stickies learn add <domain> <duration>'.")
			return nil
		}

		fmt.Printf("%-24s %s\n", "DOMAIN", "TOTAL")
		fmt.Println(strings.Repeat("-", 36))
		for _, t := range totals {
			fmt.Printf("%-24s %s (%d min)\n", t.Domain, parser.FormatMinutes(t.TotalMinutes), t.TotalMinutes)
		}
		return nil
	}),
}

func init() {
	learnListCmd.Flags().Bool("json", false, "Output as JSON")
	learnCmd.AddCommand(learnAddCmd)
	learnCmd.AddCommand(learnListCmd)
}
