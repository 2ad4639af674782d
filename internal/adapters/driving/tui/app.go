package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/views/recorddetail"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/views/records"
	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// App is the record browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	recordsView *records.View
	detailView  *recorddetail.View
	statusBar   *status.Bar

	currentView messages.ViewType
	err         error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the browser. ctx bounds every service call.
func NewApp(ctx context.Context, ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         ctx,
		styles:      s,
		keymap:      km,
		recordsView: records.NewView(ctx, s, ports.Runner, ports.Records),
		detailView:  recorddetail.NewView(s),
		statusBar:   status.NewBar(s, km.ListHelp()),
		currentView: messages.ViewRecords,
	}, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("sectrack"),
		a.recordsView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.currentView {
		case messages.ViewRecords:
			if keymap.Matches(msg.String(), a.keymap.Quit) {
				return a, tea.Quit
			}
			a.recordsView, cmd = a.recordsView.Update(msg)
		case messages.ViewRecordDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		}
		return a, cmd

	case messages.RecordSelected:
		a.detailView.SetRecord(msg.Record)
		a.showView(messages.ViewRecordDetail)
		return a, nil

	case messages.ViewChanged:
		a.showView(msg.View)
		return a, nil

	case messages.RecordsLoaded:
		a.recordsView, cmd = a.recordsView.Update(msg)
		a.err = msg.Err
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, cmd
		}
		a.statusBar.SetState(status.StateReady)
		a.updateSummary()
		return a, cmd

	case messages.RunStarted:
		a.statusBar.SetState(status.StateRunning)
		a.statusBar.SetMessage("")
		return a, nil

	case messages.RunCompleted:
		a.recordsView, cmd = a.recordsView.Update(msg)
		if msg.Err != nil {
			if errors.Is(msg.Err, domain.ErrSyncInProgress) {
				a.setError(errors.New("another run is in progress"))
			} else {
				a.setError(msg.Err)
			}
			return a, cmd
		}
		a.statusBar.SetState(status.StateLoading)
		a.statusBar.SetMessage(fmt.Sprintf("Synced: %d new records", msg.Report.Emitted))
		return a, cmd

	case messages.ErrorOccurred:
		a.recordsView, cmd = a.recordsView.Update(msg)
		a.setError(msg.Err)
		return a, cmd
	}

	return a, nil
}

func (a *App) showView(view messages.ViewType) {
	a.currentView = view
	if view == messages.ViewRecordDetail {
		a.statusBar.SetBindings(a.keymap.DetailHelp())
	} else {
		a.statusBar.SetBindings(a.keymap.ListHelp())
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

func (a *App) updateSummary() {
	var (
		cursor int64
		open   int
	)
	if state := a.recordsView.State(); state != nil {
		cursor = state.Cursor
		open = state.Open.Len()
	}
	a.statusBar.SetSummary(len(a.recordsView.Records()), cursor, open)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewRecordDetail:
		body = a.detailView.View()
	default:
		body = a.recordsView.View()
	}
	return body + "\n" + a.statusBar.View()
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	// One line is kept for the status bar.
	a.recordsView.SetDimensions(width, height-1)
	a.detailView.SetDimensions(width, height-1)
	a.statusBar.SetWidth(width)
}
