package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for stickies",
	Long:  `Display detailed help for all stickies commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				_ = target.Help()
				return
			}
		}
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
 ___ _   _    _   _
/ __| |_(_)__| |_(_)___ ___
\__ \  _| / _| / / / -_|_-<
|___/\__|_\__|_\_\_\___/__/

stickies - terminal sticky notes, goals and pomodoros

COMMANDS:

  add <title>             Create a task with smart parsing
    -d, --desc            Description
    -t, --type            Task type: daily|monthly
    -g, --goal            Goal type: short|long
    -p, --parent          Parent long-term goal id
    -i, --interactive     Open the interactive form
    --no-ui               Never open the form

    Smart syntax:
      +daily +monthly     Task type
      !short !long        Goal type
      ^<id>               Parent goal

    Example:
      stickies add "Read the tour +monthly ^4"

  sub <goal-id> [title]   Generate a short-term task from a long-term goal

  ls                      Sticky-note board
    -a, --all             Include completed tasks
    --no-ui               Simple text output
    --json                JSON output

    Board keys:
      ↑/↓           Navigate
      c             Complete
      d             Delete
      g             Generate sub-task from a goal
      v             Completed sub-tasks of a goal
      r             Reload
      q             Quit

  done <id>...            Mark tasks completed
  rm <id>...              Delete tasks (sub-tasks are kept)
  purge [--yes]           Delete every completed task
  completed               List completed tasks
  children <goal-id>      Completed sub-tasks of a goal (--all for every one)
  search <query>          Search titles and descriptions

  learn add <domain> <d>  Log learning time (45, 45m, 2h, 1h30m)
  learn ls                Total learning time per domain

  timer [target]          Pomodoro timer (space start/pause, s stop, q quit)
    --domain              Log each completed target to this domain
    --task                Show a task on the timer
    --no-ui               Plain countdown

  plan                    AI plan for open tasks (needs DEEPSEEK_API_KEY)
    --no-ui               Print the plan only

  sync push               Upload a snapshot to sync.url
  sync pull [--apply]     Download the snapshot, optionally replacing local notes
  sync serve              Run a snapshot endpoint

  version                 Print version information
  help [command]          Show this help

Configuration lives in ~/.stickies/config.yaml; every key can be overridden
with STICKIES_<SECTION>_<KEY>, for example STICKIES_TIMER_DEFAULT_MINUTES=50.

`)
}
