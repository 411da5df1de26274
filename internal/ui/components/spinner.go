// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/concierge-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator is the animated "Concierge is typing" line shown while
// a send is in flight.
type TypingIndicator struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	showTimer bool
}

// NewTypingIndicator creates the indicator with an ASCII-safe spinner.
func NewTypingIndicator() TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}

	return TypingIndicator{
		spinner:   s,
		message:   "Concierge is typing",
		showTimer: true,
	}
}

// SetMessage sets the text displayed next to the spinner.
func (t *TypingIndicator) SetMessage(msg string) {
	t.message = msg
}

// SetShowTimer enables or disables the elapsed time display.
func (t *TypingIndicator) SetShowTimer(show bool) {
	t.showTimer = show
}

// Start activates the indicator and records the start time.
func (t *TypingIndicator) Start() tea.Cmd {
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// IsActive reports whether the indicator is running.
func (t *TypingIndicator) IsActive() bool {
	return t.active
}

// Elapsed returns the duration since the indicator started.
func (t *TypingIndicator) Elapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update handles spinner tick messages.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}

	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or nothing when inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}

	spinnerView := lipgloss.NewStyle().
		Foreground(styles.Indigo).
		Render(t.spinner.View())

	messageView := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Render(t.message + "...")

	result := spinnerView + " " + messageView

	if t.showTimer && !t.startTime.IsZero() {
		timerView := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(" (" + formatElapsed(time.Since(t.startTime)) + ")")
		result += timerView
	}

	return result
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
