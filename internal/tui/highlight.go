package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HighlightInterval is the frame rate of the sweeping highlight
const HighlightInterval = 100 * time.Millisecond

// highlightTickMsg advances the highlight by one frame
type highlightTickMsg struct{}

func highlightTick() tea.Cmd {
	return tea.Tick(HighlightInterval, func(time.Time) tea.Msg {
		return highlightTickMsg{}
	})
}

// rgb is one colour stop of the sweep
type rgb struct{ r, g, b float64 }

var (
	highlightBase = rgb{245, 241, 230} // ColorPrimaryText
	highlightPeak = rgb{250, 204, 21}  // ColorShortTerm
)

// Highlighter sweeps a soft band of colour across the selected title.
// Frames are advanced explicitly so rendering stays deterministic.
type Highlighter struct {
	enabled bool
	frame   int
	band    float64 // band width as a share of the text length
	pause   int     // idle frames between sweeps
}

// NewHighlighter creates a highlighter; a disabled one renders a static accent
func NewHighlighter(enabled bool) *Highlighter {
	return &Highlighter{
		enabled: enabled,
		band:    0.25,
		pause:   5,
	}
}

// Enabled reports whether the highlight animates
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// Advance moves the band one frame forward
func (h *Highlighter) Advance() {
	if h.enabled {
		h.frame++
	}
}

// Reset restarts the sweep, used when the selection changes
func (h *Highlighter) Reset() {
	h.frame = 0
}

// center returns the band position for a text of n runes, or false while
// the sweep is pausing between passes
func (h *Highlighter) center(n int) (float64, bool) {
	lead := int(math.Ceil(float64(n) * h.band))
	span := n + 2*lead
	pos := h.frame % (span + h.pause)
	if pos >= span {
		return 0, false
	}
	return float64(pos - lead), true
}

// Render colours text with the band at its current position
func (h *Highlighter) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	static := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent)).Bold(true)
	if !h.enabled {
		return static.Render(text)
	}

	center, active := h.center(len(runes))
	sigma := math.Max(1, h.band*float64(len(runes))/2)

	out := ""
	for i, r := range runes {
		w := 0.0
		if active {
			dx := float64(i) - center
			w = math.Exp(-(dx * dx) / (2 * sigma * sigma))
		}
		c := blend(highlightBase, highlightPeak, w)
		out += lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(string(r))
	}
	return out
}

// blend mixes two colours, w in [0,1]
func blend(a, b rgb, w float64) string {
	w = math.Min(1, math.Max(0, w))
	mix := func(x, y float64) int { return int(math.Round(x*(1-w) + y*w)) }
	return fmt.Sprintf("#%02X%02X%02X", mix(a.r, b.r), mix(a.g, b.g), mix(a.b, b.b))
}
