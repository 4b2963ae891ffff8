package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/models"
	"github.com/balkashynov/stickies/internal/tui"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "Show the sticky-note board",
	Long:    "Show short-term and long-term tasks. Opens the interactive board unless --no-ui or --json is set.",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		noUI, _ := cmd.Flags().GetBool("no-ui")
		asJSON, _ := cmd.Flags().GetBool("json")

		if !noUI && !asJSON {
			return tui.RunBoard(ctx, a.store, all)
		}

		tasks, err := a.store.GetTasks(ctx, all)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(os.Stdout, tasks)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'stickies add \"task title\"' to create your first task.")
			return nil
		}
		printBoard(os.Stdout, tasks)
		return nil
	}),
}

var completedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed tasks",
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		tasks, err := a.store.GetCompletedTasks(ctx)
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(os.Stdout, tasks)
		}
		if len(tasks) == 0 {
			fmt.Println("No completed tasks yet.")
			return nil
		}
		printTable(os.Stdout, tasks)
		return nil
	}),
}

var childrenCmd = &cobra.Command{
	Use:   "children <goal-id>",
	Short: "List the short-term tasks generated from a goal",
	Long:  "List the completed short-term tasks of a long-term goal, or all of them with --all.",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		parentID, err := parseID(args[0])
		if err != nil {
			return err
		}
		all, _ := cmd.Flags().GetBool("all")

		tasks, err := a.store.GetChildren(ctx, parentID, !all)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Printf("No matching sub-tasks for goal #%d\n", parentID)
			return nil
		}
		for _, t := range tasks {
			completed := "-"
			if t.CompletedAt != nil {
				completed = t.CompletedAt.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Printf("ID: %d | %s | completed: %s\n", t.ID, t.Title, completed)
		}
		return nil
	}),
}

// printBoard prints short-term then long-term tasks
func printBoard(w io.Writer, tasks []models.Task) {
	var short, long []models.Task
	for _, t := range tasks {
		if t.IsLongTerm() {
			long = append(long, t)
		} else {
			short = append(short, t)
		}
	}

	fmt.Fprintf(w, "SHORT-TERM (%d)\n", len(short))
	printTable(w, short)
	fmt.Fprintf(w, "\nLONG-TERM (%d)\n", len(long))
	printTable(w, long)
}

// printTable prints tasks in fixed columns for 80-character terminals
func printTable(w io.Writer, tasks []models.Task) {
	fmt.Fprintf(w, "%-4s %-6s %-40s %-8s %s\n", "ID", "STATUS", "TITLE", "TYPE", "PARENT")
	fmt.Fprintln(w, strings.Repeat("-", 72))

	for _, task := range tasks {
		status := "todo"
		if task.IsCompleted {
			status = "done"
		}

		title := task.Title
		if len([]rune(title)) > 38 {
			title = string([]rune(title)[:35]) + "..."
		}

		parent := "-"
		if task.HasParent() {
			parent = fmt.Sprintf("#%d", *task.ParentID)
		}

		fmt.Fprintf(w, "%-4d %-6s %-40s %-8s %s\n", task.ID, status, title, task.TaskType, parent)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func init() {
	listCmd.Flags().BoolP("all", "a", false, "Include completed tasks")
	listCmd.Flags().Bool("no-ui", false, "Plain text output")
	listCmd.Flags().Bool("json", false, "JSON output")
	completedCmd.Flags().Bool("json", false, "JSON output")
	childrenCmd.Flags().BoolP("all", "a", false, "Include sub-tasks that are not completed yet")
}
