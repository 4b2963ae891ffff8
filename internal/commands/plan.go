package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/planner"
	"github.com/balkashynov/stickies/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Ask the AI model for a plan covering open tasks",
	Long: `Send every open task to the configured DeepSeek model and show the plan
it suggests. Needs planner.api_key in the config or DEEPSEEK_API_KEY.`,
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		pc := a.cfg.Planner
		p, err := planner.NewDeepseek(pc.APIKey, pc.BaseURL, pc.Model,
			planner.WithTimeout(pc.Timeout),
			planner.WithLogger(a.log.Named("planner")),
		)
		if errors.Is(err, planner.ErrMissingAPIKey) {
			return fmt.Errorf("%w: set planner.api_key or DEEPSEEK_API_KEY", err)
		}
		if err != nil {
			return err
		}

		tasks, err := a.store.GetTasks(ctx, false)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(ctx)
		defer p.Wait()
		defer cancel()

		results := p.Request(ctx, tasks)

		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			fmt.Printf("🤖 Planning %d open task(s)...\n", len(tasks))
			res := <-results
			if res.Err != nil {
				return res.Err
			}
			fmt.Println(res.Text)
			return nil
		}

		// The plan screen stays on the terminal after exit
		res, err := tui.RunPlan(results, len(tasks))
		if errors.Is(err, context.Canceled) {
			fmt.Println("Plan request abandoned.")
			return nil
		}
		if err != nil {
			return err
		}
		return res.Err
	}),
}

func init() {
	planCmd.Flags().Bool("no-ui", false, "Print the plan without the interactive screen")
}
