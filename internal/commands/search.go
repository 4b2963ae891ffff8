package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title or description",
	Long:  "Case-insensitive search across task titles and descriptions. Completed tasks are skipped unless --all is set.",
	Args:  cobra.MinimumNArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		all, _ := cmd.Flags().GetBool("all")

		tasks, err := a.store.SearchTasks(ctx, query, all)
		if err != nil {
			return fmt.Errorf("searching tasks: %w", err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(os.Stdout, searchResult{Query: query, Count: len(tasks), Tasks: tasks})
		}

		fmt.Printf("Search results for '%s' (%d found):\n", query, len(tasks))
		if len(tasks) == 0 {
			fmt.Println("No tasks found matching your search.")
			return nil
		}
		fmt.Println()
		printTable(os.Stdout, tasks)
		return nil
	}),
}

type searchResult struct {
	Query string        `json:"query"`
	Count int           `json:"count"`
	Tasks []models.Task `json:"tasks"`
}

func init() {
	searchCmd.Flags().BoolP("all", "a", false, "Include completed tasks")
	searchCmd.Flags().Bool("json", false, "Output as JSON")
}
