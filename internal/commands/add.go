package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/stickies/internal/db"
	"github.com/balkashynov/stickies/internal/models"
	"github.com/balkashynov/stickies/internal/parser"
	"github.com/balkashynov/stickies/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [task title]",
	Short: "Add a new sticky note",
	Long: `Add a new task.

Modes:
  Interactive: stickies add -i (or just 'stickies add' with no arguments)
  Quick: stickies add "Task title" (with optional flags)
  Smart parsing: stickies add "Read chapter 3 +monthly !short ^4"

Smart parsing syntax:
  +daily, +monthly   - Task type (default daily)
  !short, !long      - Goal type (default short-term)
  ^<id>              - Parent long-term goal of a short-term task`,
	Args: cobra.ArbitraryArgs,
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		interactive, _ := cmd.Flags().GetBool("interactive")
		noUI, _ := cmd.Flags().GetBool("no-ui")

		if len(args) == 0 && !noUI {
			interactive = true
		}

		parsed := parser.ParseTitle(strings.Join(args, " "))
		req, err := buildCreateRequest(cmd, parsed)
		if err != nil {
			return err
		}

		if parsed.HasErrors() {
			if noUI {
				return fmt.Errorf("could not parse title: %s", strings.Join(parsed.Errors, ", "))
			}
			// Parsing problems go to the form for correction
			fmt.Printf("⚠️  Found issues with parsing: %s\n", strings.Join(parsed.Errors, ", "))
			fmt.Println("Opening interactive mode for confirmation...")
			interactive = true
		}

		if interactive && !noUI {
			return tui.RunAddTask(ctx, a.store, req)
		}

		id, err := a.store.AddTask(ctx, req)
		if err != nil {
			return err
		}
		task, err := a.store.GetTask(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("✅ New task \"%s\" added - ID: %d (%s, %s)\n", task.Title, task.ID, task.GoalType, task.TaskType)
		return nil
	}),
}

// buildCreateRequest merges smart-syntax results with explicit flags;
// flags win when both are given
func buildCreateRequest(cmd *cobra.Command, parsed parser.ParsedTask) (db.CreateTaskRequest, error) {
	req := db.CreateTaskRequest{
		Title:    parsed.Title,
		TaskType: parsed.TaskType,
		GoalType: parsed.GoalType,
		ParentID: parsed.ParentID,
	}

	if desc, _ := cmd.Flags().GetString("desc"); desc != "" {
		req.Description = desc
	}
	if v, _ := cmd.Flags().GetString("type"); v != "" {
		t, err := models.ParseTaskType(v)
		if err != nil {
			return req, err
		}
		req.TaskType = t
	}
	if v, _ := cmd.Flags().GetString("goal"); v != "" {
		g, err := models.ParseGoalType(v)
		if err != nil {
			return req, err
		}
		req.GoalType = g
	}
	if v, _ := cmd.Flags().GetString("parent"); v != "" {
		id, err := parseID(v)
		if err != nil {
			return req, err
		}
		req.ParentID = &id
	}
	return req, nil
}

var subCmd = &cobra.Command{
	Use:   "sub <goal-id> [title]",
	Short: "Generate a short-term task from a long-term goal",
	Long: `Generate a short-term task under a long-term goal. It inherits the goal's
description and task type; without a title it is named "<goal> - short-term".`,
	Args: cobra.MinimumNArgs(1),
	Run: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		parentID, err := parseID(args[0])
		if err != nil {
			return err
		}

		id, err := a.store.AddSubTask(ctx, parentID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		task, err := a.store.GetTask(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Generated short-term task #%d \"%s\" from goal #%d\n", task.ID, task.Title, parentID)
		return nil
	}),
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Open the interactive form")
	addCmd.Flags().Bool("no-ui", false, "Never open the interactive form")
	addCmd.Flags().StringP("desc", "d", "", "Description")
	addCmd.Flags().StringP("type", "t", "", "Task type: daily|monthly")
	addCmd.Flags().StringP("goal", "g", "", "Goal type: short|long")
	addCmd.Flags().StringP("parent", "p", "", "Parent long-term goal id")
}
