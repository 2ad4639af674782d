package status

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/keymap"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}

func TestBar_View(t *testing.T) {
	km := keymap.DefaultKeyMap()

	tests := []struct {
		name    string
		setup   func(*Bar)
		want    []string
		notWant []string
	}{
		{
			name:  "ready without cursor",
			setup: func(*Bar) {},
			want:  []string{"0 records | cursor none | 0 open", "enter: details", "q: quit"},
		},
		{
			name:  "ready with summary and message",
			setup: func(b *Bar) { b.SetSummary(4, 150, 2); b.SetMessage("Synced: 1 new records") },
			want:  []string{"Synced: 1 new records", "4 records | cursor 150 | 2 open"},
		},
		{
			name:    "running",
			setup:   func(b *Bar) { b.SetState(StateRunning) },
			want:    []string{"Syncing..."},
			notWant: []string{"records |"},
		},
		{
			name:  "loading",
			setup: func(b *Bar) { b.SetState(StateLoading) },
			want:  []string{"Loading..."},
		},
		{
			name:  "error",
			setup: func(b *Bar) { b.SetState(StateError); b.SetMessage("boom") },
			want:  []string{"Error: boom"},
		},
		{
			name:  "detail bindings",
			setup: func(b *Bar) { b.SetBindings(km.DetailHelp()) },
			want:  []string{"esc: back"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, km.ListHelp())
			bar.SetWidth(140)
			tt.setup(bar)

			out := bar.View()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestBar_ViewFitsOneLine(t *testing.T) {
	km := keymap.DefaultKeyMap()

	tests := []struct {
		bindings []key.Binding
		lastHint string
	}{
		{km.ListHelp(), "q: quit"},
		{km.DetailHelp(), "esc: back"},
	}

	for _, tt := range tests {
		bar := NewBar(nil, tt.bindings)
		bar.SetWidth(140)
		bar.SetSummary(12, 987654, 3)

		out := bar.View()

		assert.Equal(t, 1, strings.Count(out, "\n")+1, "rendered on one line")
		assert.Equal(t, 140, lipgloss.Width(out))
		assert.Contains(t, out, tt.lastHint)
	}
}
