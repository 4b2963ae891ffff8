package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/stickies/internal/db"
	"github.com/balkashynov/stickies/internal/parser"
	"github.com/balkashynov/stickies/internal/planner"
	"github.com/balkashynov/stickies/internal/timer"
)

// RunBoard starts the interactive board
func RunBoard(ctx context.Context, store BoardStore, showAll bool) error {
	model, err := NewBoardModel(ctx, store, showAll)
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// RunAddTask starts the interactive add form
func RunAddTask(ctx context.Context, store TaskCreator, prefill db.CreateTaskRequest) error {
	model := NewAddTaskModel(ctx, store, prefill)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(AddTaskModel); ok {
		if m.cancelled {
			fmt.Println("❌ Task creation cancelled.")
		} else if m.completed {
			fmt.Printf("✅ New task \"%s\" added - ID: %d\n", m.createdTitle, m.createdID)
		}
	}
	return nil
}

// RunPomodoro runs a pomodoro for target. With a domain, each completed
// target is added to the learning log through recorder.
func RunPomodoro(ctx context.Context, target time.Duration, label, domain string, recorder LearningRecorder) error {
	sink := timer.NewChanSink(16)
	t := timer.New(timer.TickerScheduler{}, sink)
	defer t.Stop()

	model := NewPomodoroModel(ctx, t, sink, target, label, domain, recorder)
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(PomodoroModel); ok {
		state := m.State()
		fmt.Printf("⏹️  Pomodoro ended at %s of %s\n", parser.FormatSeconds(state.Accumulated), parser.FormatSeconds(int(target/time.Second)))
		if m.Logged() > 0 {
			fmt.Printf("📚 Logged %s to %q\n", parser.FormatMinutes(m.Logged()), domain)
		}
	}
	return nil
}

// RunPlan shows a spinner while the plan is generated, then the reply
func RunPlan(results <-chan planner.Result, taskCount int) (planner.Result, error) {
	finalModel, err := tea.NewProgram(NewPlanModel(results, taskCount)).Run()
	if err != nil {
		return planner.Result{}, err
	}

	m, ok := finalModel.(PlanModel)
	if !ok {
		return planner.Result{}, fmt.Errorf("unexpected model %T", finalModel)
	}
	res, done := m.Result()
	if !done {
		return planner.Result{}, context.Canceled
	}
	return res, nil
}
