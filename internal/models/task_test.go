package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskType(t *testing.T) {
	cases := map[string]TaskType{
		"daily":   TaskTypeDaily,
		" Daily ": TaskTypeDaily,
		"d":       TaskTypeDaily,
		"monthly": TaskTypeMonthly,
		"M":       TaskTypeMonthly,
	}
	for in, want := range cases {
		got, err := ParseTaskType(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTaskType("weekly")
	assert.Error(t, err)
}

func TestParseGoalType(t *testing.T) {
	got, err := ParseGoalType("long")
	require.NoError(t, err)
	assert.Equal(t, GoalTypeLongTerm, got)

	got, err = ParseGoalType("SHORT-TERM")
	require.NoError(t, err)
	assert.Equal(t, GoalTypeShortTerm, got)

	_, err = ParseGoalType("")
	assert.Error(t, err)
}

func TestTaskHelpers(t *testing.T) {
	parent := uint(3)
	task := Task{GoalType: GoalTypeShortTerm, ParentID: &parent}
	assert.True(t, task.HasParent())
	assert.False(t, task.IsLongTerm())

	goal := Task{GoalType: GoalTypeLongTerm}
	assert.True(t, goal.IsLongTerm())
	assert.False(t, goal.HasParent())
}
