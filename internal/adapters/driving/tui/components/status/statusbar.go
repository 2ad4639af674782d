// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/styles"
)

// State represents what the application is doing.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateRunning State = "running"
	StateError   State = "error"
)

// Bar displays sync state and keybinding hints on one line.
type Bar struct {
	styles   *styles.Styles
	bindings []key.Binding
	state    State
	message  string
	records  int
	cursor   int64
	open     int
	width    int
}

// NewBar creates a status bar showing the given bindings.
func NewBar(s *styles.Styles, bindings []key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles:   s,
		bindings: bindings,
		state:    StateReady,
		width:    80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Width includes the style's padding, so the content gets less.
	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateLoading:
		return s.styles.Muted.Render("Loading...")
	case StateRunning:
		return s.styles.Muted.Render("Syncing...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateReady:
	}

	summary := fmt.Sprintf("%d records | cursor %s | %d open", s.records, s.cursorText(), s.open)
	if s.message != "" {
		return s.styles.Success.Render(s.message) + s.styles.Muted.Render("  "+summary)
	}
	return s.styles.Normal.Render(summary)
}

func (s *Bar) cursorText() string {
	if s.cursor == 0 {
		return "none"
	}
	return fmt.Sprintf("%d", s.cursor)
}

func (s *Bar) renderRight() string {
	hints := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a message shown next to the summary, or the error text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetSummary updates the record count, cursor and open-set size.
func (s *Bar) SetSummary(records int, cursor int64, open int) {
	s.records = records
	s.cursor = cursor
	s.open = open
}

// SetBindings replaces the keybinding hints.
func (s *Bar) SetBindings(bindings []key.Binding) {
	s.bindings = bindings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}
