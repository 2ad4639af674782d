// Package records provides the record list view for the TUI.
package records

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// View lists stored records, newest first.
type View struct {
	styles  *styles.Styles
	runner  driving.SyncRunner
	records driven.RecordReader
	ctx     context.Context

	items        []domain.Record
	state        *domain.SyncState
	selected     int
	scrollOffset int
	width        int
	height       int
	loading      bool
	running      bool
	err          error
}

// NewView creates a record list view.
func NewView(ctx context.Context, s *styles.Styles, runner driving.SyncRunner, records driven.RecordReader) *View {
	return &View{
		styles:  s,
		runner:  runner,
		records: records,
		ctx:     ctx,
		items:   []domain.Record{},
		width:   80,
		height:  24,
	}
}

// Init loads records and state.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		records, err := v.records.ListRecords(v.ctx, 0)
		if err != nil {
			return messages.RecordsLoaded{Err: fmt.Errorf("listing records: %w", err)}
		}
		state, err := v.runner.Status(v.ctx)
		if err != nil {
			return messages.RecordsLoaded{Err: fmt.Errorf("reading state: %w", err)}
		}
		return messages.RecordsLoaded{Records: records, State: state}
	}
}

func (v *View) run() tea.Cmd {
	return func() tea.Msg {
		report, err := v.runner.Run(v.ctx)
		return messages.RunCompleted{Report: report, Err: err}
	}
}

// Update handles messages for the record list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecordsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.items = msg.Records
		v.state = msg.State
		if v.selected >= len(v.items) {
			v.selected = max(len(v.items)-1, 0)
		}
		v.adjustScroll()
		return v, nil

	case messages.RunCompleted:
		v.running = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.loading = true
		return v, v.load()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
			v.adjustScroll()
		}
	case "down", "j":
		if v.selected < len(v.items)-1 {
			v.selected++
			v.adjustScroll()
		}
	case "enter":
		if v.selected < len(v.items) {
			record := v.items[v.selected]
			return v, func() tea.Msg {
				return messages.RecordSelected{Record: record}
			}
		}
	case "r":
		if !v.loading && !v.running {
			v.loading = true
			return v, v.load()
		}
	case "s":
		if !v.running {
			v.running = true
			v.err = nil
			return v, tea.Batch(
				func() tea.Msg { return messages.RunStarted{} },
				v.run(),
			)
		}
	}

	return v, nil
}

func (v *View) adjustScroll() {
	visible := v.visibleItemCount()
	if v.selected < v.scrollOffset {
		v.scrollOffset = v.selected
	} else if v.selected >= v.scrollOffset+visible {
		v.scrollOffset = v.selected - visible + 1
	}
}

// visibleItemCount reserves lines for the title, help and status bar.
func (v *View) visibleItemCount() int {
	return max(v.height-6, 1)
}

// View renders the record list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Security records (%d)", len(v.items))))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
		return b.String()
	case v.loading && len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("Loading records..."))
		b.WriteString("\n")
		return b.String()
	case len(v.items) == 0:
		b.WriteString(v.styles.Muted.Render("No records stored yet. Press s to sync."))
		b.WriteString("\n")
		return b.String()
	}

	visible := v.visibleItemCount()
	for i := v.scrollOffset; i < len(v.items) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderRecord(i, &v.items[i]))
		b.WriteString("\n")
	}

	if len(v.items) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(v.items)),
			len(v.items))))
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRecord(index int, r *domain.Record) string {
	number := fmt.Sprintf("#%-7d", r.PullRequest.Number)

	cves := strings.Join(r.CVEs, " ")
	if cves == "" {
		cves = "-"
	}

	maxTitle := max(v.width-len(number)-len(cves)-8, 10)
	title := r.PullRequest.Title
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("> %s %-*s  %s", number, maxTitle, title, cves))
	}
	return v.styles.Muted.Render("  "+number+" ") +
		v.styles.Normal.Render(fmt.Sprintf("%-*s  ", maxTitle, title)) +
		v.styles.CVE.Render(cves)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.adjustScroll()
}

// Records returns the loaded records.
func (v *View) Records() []domain.Record {
	return v.items
}

// State returns the loaded sync state. Nil before the first load.
func (v *View) State() *domain.SyncState {
	return v.state
}

// SelectedIndex returns the index of the highlighted record.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Running reports whether a sync is in flight.
func (v *View) Running() bool {
	return v.running
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
