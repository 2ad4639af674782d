package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sectrack/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// MockRunner implements driving.SyncRunner for testing.
type MockRunner struct {
	Report *driving.RunReport
	State  *domain.SyncState
	Err    error
}

func (m *MockRunner) Run(_ context.Context) (*driving.RunReport, error) {
	return m.Report, m.Err
}

func (m *MockRunner) Status(_ context.Context) (*domain.SyncState, error) {
	if m.State == nil {
		return &domain.SyncState{Open: domain.NewOpenSet()}, nil
	}
	return m.State, nil
}

func newTestApp(t *testing.T, runner *MockRunner, records ...domain.Record) *App {
	t.Helper()
	store := memory.NewRecordSink()
	for _, r := range records {
		require.NoError(t, store.Emit(context.Background(), r))
	}
	app, err := NewApp(context.Background(), &Ports{Runner: runner, Records: store})
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func record(id int64, title string, cves ...string) domain.Record {
	return domain.Record{
		PullRequest: domain.PullRequestRef{ID: id, Number: int(id) + 1000, Title: title},
		CVEs:        cves,
	}
}

// drain runs cmd and feeds every resulting message back into the app.
func drain(app *App, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drain(app, c)
		}
		return
	}
	if msg == nil {
		return
	}
	_, next := app.Update(msg)
	drain(app, next)
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"missing runner", &Ports{Records: memory.NewRecordSink()}, ErrMissingRunner},
		{"missing records", &Ports{Runner: &MockRunner{}}, ErrMissingRecords},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(context.Background(), tt.ports)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, app)
		})
	}
}

func TestApp_View_BeforeReady(t *testing.T) {
	app, err := NewApp(context.Background(), &Ports{Runner: &MockRunner{}, Records: memory.NewRecordSink()})
	require.NoError(t, err)

	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_InitLoadsRecordsAndState(t *testing.T) {
	runner := &MockRunner{State: &domain.SyncState{
		Cursor: 150,
		Open:   domain.NewOpenSet(domain.OpenItem{ID: 120, Number: 1120}),
	}}
	app := newTestApp(t, runner,
		record(1, "openssl: 3.0.1 -> 3.0.2", "CVE-2024-0001"),
		record(2, "libwebp: 1.3.1 -> 1.3.2", "CVE-2023-4863"))

	drain(app, app.Init())

	assert.Equal(t, messages.ViewRecords, app.CurrentView())
	assert.Equal(t, status.StateReady, app.statusBar.State())
	view := app.View()
	assert.Contains(t, view, "Security records (2)")
	assert.Contains(t, view, "CVE-2023-4863")
	assert.Contains(t, view, "2 records | cursor 150 | 1 open")
}

func TestApp_SelectAndBack(t *testing.T) {
	app := newTestApp(t, &MockRunner{},
		record(1, "openssl: 3.0.1 -> 3.0.2", "CVE-2024-0001"),
		record(2, "libwebp: 1.3.1 -> 1.3.2", "CVE-2023-4863"))
	drain(app, app.Init())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	drain(app, cmd)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(app, cmd)

	require.Equal(t, messages.ViewRecordDetail, app.CurrentView())
	assert.Equal(t, int64(1), app.detailView.Record().PullRequest.ID)
	assert.Contains(t, app.View(), "CVE-2024-0001")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	drain(app, cmd)

	assert.Equal(t, messages.ViewRecords, app.CurrentView())
}

func TestApp_SyncReloads(t *testing.T) {
	runner := &MockRunner{Report: &driving.RunReport{RunID: "run-1", Emitted: 3}}
	app := newTestApp(t, runner)
	drain(app, app.Init())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	drain(app, cmd)

	assert.NoError(t, app.Err())
	assert.Equal(t, status.StateReady, app.statusBar.State())
	assert.Equal(t, "Synced: 3 new records", app.statusBar.Message())
	assert.False(t, app.recordsView.Running())
}

func TestApp_SyncErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"in progress", fmt.Errorf("lock: %w", domain.ErrSyncInProgress), "another run is in progress"},
		{"fetch failure", errors.New("fetch page 1: boom"), "fetch page 1: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &MockRunner{Err: tt.err})
			drain(app, app.Init())

			_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
			drain(app, cmd)

			assert.Equal(t, status.StateError, app.statusBar.State())
			assert.Equal(t, tt.wantMsg, app.statusBar.Message())
			assert.Error(t, app.Err())
		})
	}
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t, &MockRunner{})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_WindowSize(t *testing.T) {
	app := newTestApp(t, &MockRunner{})

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}
