package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"45", 45},
		{"45m", 45},
		{"2h", 120},
		{"1h30m", 90},
		{"1h30", 90},
		{" 1H 5M ", 65},
		{"1440", 1440},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinutesRejects(t *testing.T) {
	for _, input := range []string{"", "0", "0m", "m", "abc", "-5", "1.5h", "25h"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMinutes(input)
			assert.Error(t, err)
		})
	}
}

func TestParseTarget(t *testing.T) {
	d, err := ParseTarget("25")
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, d)

	_, err = ParseTarget("soon")
	assert.Error(t, err)
}

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00", FormatSeconds(0))
	assert.Equal(t, "00:00", FormatSeconds(-4))
	assert.Equal(t, "01:05", FormatSeconds(65))
	assert.Equal(t, "25:00", FormatSeconds(1500))
	assert.Equal(t, "01:00:01", FormatSeconds(3601))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestParseMinutesHugeValues(t *testing.T) {
	for _, input := range []string{
		"153722867280912932h",
		"307445734561825861h",
		"1h9223372036854775807m",
		"9223372036854775807",
		"25h",
	} {
		_, err := ParseMinutes(input)
		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "at most", input)
	}
}
