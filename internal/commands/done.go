package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/db"
)

var doneCmd = &cobra.Command{
	Use:   "done <task-id>...",
	Short: "Mark tasks as completed",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			task, err := a.store.GetTask(ctx, id)
			if errors.Is(err, db.ErrNotFound) {
				fmt.Printf("⚠️  Task #%d not found, nothing to complete\n", id)
				continue
			}
			if err != nil {
				return err
			}
			if task.IsCompleted {
				fmt.Printf("Task #%d is already completed: %s\n", task.ID, task.Title)
				continue
			}

			if err := a.store.CompleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Printf("✅ Marked task #%d as done: %s\n", task.ID, task.Title)
		}
		return nil
	}),
}

var removeCmd = &cobra.Command{
	Use:     "rm <task-id>...",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Long:    "Delete tasks permanently. Sub-tasks of a deleted goal are kept.",
	Args:    cobra.MinimumNArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			task, err := a.store.GetTask(ctx, id)
			if errors.Is(err, db.ErrNotFound) {
				fmt.Printf("⚠️  Task #%d not found, nothing to delete\n", id)
				continue
			}
			if err != nil {
				return err
			}

			if err := a.store.DeleteTask(ctx, id); err != nil {
				return err
			}
			fmt.Printf("🗑️  Deleted task #%d: %s\n", task.ID, task.Title)
		}
		return nil
	}),
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every completed task",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm("Delete all completed tasks?") {
			fmt.Println("Cancelled.")
			return nil
		}

		removed, err := a.store.DeleteCompletedTasks(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("🗑️  Deleted %d completed task(s)\n", removed)
		return nil
	}),
}

// confirm asks a yes/no question on stdin
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	purgeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
