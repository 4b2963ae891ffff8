package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/parser"
	"github.com/balkashynov/stickies/internal/timer"
	"github.com/balkashynov/stickies/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:   "timer [target]",
	Short: "Run a pomodoro timer",
	Long: `Run a pomodoro countdown. The target defaults to timer.default_minutes.

With --domain, every completed target is added to the learning log.

Examples:
  stickies timer                 # default target
  stickies timer 50m --domain golang
  stickies timer 25 --task 3     # show task #3 on the timer
  stickies timer --no-ui         # plain countdown in the terminal`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		target := time.Duration(a.cfg.Timer.DefaultMinutes) * time.Minute
		if len(args) == 1 {
			t, err := parser.ParseTarget(args[0])
			if err != nil {
				return err
			}
			target = t
		}

		domain, _ := cmd.Flags().GetString("domain")
		label, _ := cmd.Flags().GetString("label")
		if taskArg, _ := cmd.Flags().GetString("task"); taskArg != "" {
			id, err := parseID(taskArg)
			if err != nil {
				return err
			}
			task, err := a.store.GetTask(ctx, id)
			if err != nil {
				return err
			}
			label = fmt.Sprintf("#%d %s", task.ID, task.Title)
		}

		a.log.Infow("pomodoro started", "target", target.String(), "domain", domain)

		if noUI, _ := cmd.Flags().GetBool("no-ui"); noUI {
			return runPlainTimer(ctx, a, target, domain)
		}
		return tui.RunPomodoro(ctx, target, label, domain, a.store)
	}),
}

// runPlainTimer counts one target down on stdout until reached or interrupted
func runPlainTimer(ctx context.Context, a *app, target time.Duration, domain string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	targetSeconds := int(target / time.Second)
	reached := make(chan int, 1)

	t := timer.New(timer.TickerScheduler{}, timer.Funcs{
		OnElapsed: func(seconds int) {
			if seconds%60 == 0 {
				fmt.Printf("⏱️  %s remaining\n", parser.FormatSeconds(targetSeconds-seconds))
			}
		},
		OnReached: func(seconds int) {
			reached <- seconds
		},
	})
	defer t.Stop()

	fmt.Printf("🍅 Pomodoro started: %s (ctrl+c to stop)\n", parser.FormatSeconds(targetSeconds))
	t.Start(targetSeconds, 0)

	select {
	case <-reached:
		fmt.Println("🔔 Time's up!")
	case <-ctx.Done():
		fmt.Printf("\n⏹️  Stopped at %s\n", parser.FormatSeconds(t.State().Accumulated))
		return nil
	}

	if domain == "" {
		return nil
	}
	minutes := targetSeconds / 60
	if minutes < 1 {
		minutes = 1
	}
	if err := a.store.AddLearningTime(context.WithoutCancel(ctx), domain, minutes); err != nil {
		return err
	}
	fmt.Printf("📚 Logged %s to %q\n", parser.FormatMinutes(minutes), domain)
	return nil
}

func init() {
	timerCmd.Flags().String("domain", "", "Log each completed target to this learning domain")
	timerCmd.Flags().String("label", "", "Text shown above the clock")
	timerCmd.Flags().String("task", "", "Show this task's title above the clock")
	timerCmd.Flags().Bool("no-ui", false, "Plain countdown without the interactive timer")
}
