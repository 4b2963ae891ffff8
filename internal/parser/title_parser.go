package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/balkashynov/stickies/internal/models"
)

// ParsedTask represents a task parsed from natural language
type ParsedTask struct {
	Title    string
	TaskType models.TaskType
	GoalType models.GoalType
	ParentID *uint
	Errors   []string
}

var (
	taskTypeRegex = regexp.MustCompile(`(?:^|\s)\+([A-Za-z]+)\b`)
	goalTypeRegex = regexp.MustCompile(`(?:^|\s)!([A-Za-z_-]+)`)
	parentRegex   = regexp.MustCompile(`(?:^|\s)\^(\S+)`)
)

// ParseTitle extracts task metadata from a title using smart syntax
// Syntax: "Task title +daily|+monthly !short|!long ^<parent id>"
// Unset fields are left empty so the store applies its defaults.
func ParseTitle(input string) ParsedTask {
	result := ParsedTask{
		Errors: []string{},
	}

	// Extract task type (+daily, +monthly, +d, +m)
	if m := taskTypeRegex.FindStringSubmatch(input); len(m) > 1 {
		taskType, err := models.ParseTaskType(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid task type '"+m[1]+"'. Use: +daily or +monthly")
		} else {
			result.TaskType = taskType
		}
		input = taskTypeRegex.ReplaceAllString(input, " ")
	}

	// Extract goal type (!short, !long)
	if m := goalTypeRegex.FindStringSubmatch(input); len(m) > 1 {
		goalType, err := models.ParseGoalType(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "Invalid goal type '"+m[1]+"'. Use: !short or !long")
		} else {
			result.GoalType = goalType
		}
		input = goalTypeRegex.ReplaceAllString(input, " ")
	}

	// Extract parent goal (^12)
	if m := parentRegex.FindStringSubmatch(input); len(m) > 1 {
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil || id == 0 {
			result.Errors = append(result.Errors, "Invalid parent '"+m[1]+"'. Use: ^<task id>")
		} else {
			parentID := uint(id)
			result.ParentID = &parentID
		}
		input = parentRegex.ReplaceAllString(input, " ")
	}

	// Clean up the title (remove extra spaces)
	result.Title = strings.Join(strings.Fields(input), " ")

	return result
}

// HasErrors reports whether any token failed to parse
func (p ParsedTask) HasErrors() bool {
	return len(p.Errors) > 0
}
