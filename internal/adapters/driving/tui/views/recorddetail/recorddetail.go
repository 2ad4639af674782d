// Package recorddetail provides the single record view for the TUI.
package recorddetail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sectrack/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// View shows every field of one record.
type View struct {
	styles *styles.Styles

	record       *domain.Record
	scrollOffset int
	width        int
	height       int
}

// NewView creates a record detail view.
func NewView(s *styles.Styles) *View {
	return &View{styles: s, width: 80, height: 24}
}

// SetRecord sets the record to display.
func (v *View) SetRecord(record domain.Record) {
	v.record = &record
	v.scrollOffset = 0
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewRecords}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.buildContent())-v.visibleLines(), 0)
}

// line is one label/value row. An empty label marks a continuation.
type line struct {
	label string
	value string
	style func(...string) string
}

func (v *View) buildContent() []line {
	if v.record == nil {
		return nil
	}
	r := v.record
	normal := v.styles.Normal.Render

	lines := []line{
		{"Pull request", fmt.Sprintf("#%d (id %d)", r.PullRequest.Number, r.PullRequest.ID), normal},
		{"Title", r.PullRequest.Title, normal},
		{"URL", r.PullRequest.URL, v.styles.Muted.Render},
	}

	if len(r.CVEs) == 0 {
		lines = append(lines, line{"CVEs", "-", v.styles.Muted.Render})
	}
	for i, cve := range r.CVEs {
		label := ""
		if i == 0 {
			label = "CVEs"
		}
		lines = append(lines, line{label, cve, v.styles.CVE.Render})
	}

	if r.HasVersions() {
		lines = append(lines,
			line{"Package", r.Package, normal},
			line{"Affected", strings.Join(r.AffectedVersions, ", "), normal},
			line{"Fixed", r.FixedVersion, v.styles.Fixed.Render},
		)
	}

	if r.RunID != "" {
		lines = append(lines, line{"Run", r.RunID, v.styles.Muted.Render})
	}
	if !r.ExtractedAt.IsZero() {
		lines = append(lines, line{"Extracted", r.ExtractedAt.Local().Format("2006-01-02 15:04:05"), v.styles.Muted.Render})
	}
	return lines
}

// View renders the record.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Record"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", max(min(v.width-4, 60), 1)))
	b.WriteString("\n\n")

	lines := v.buildContent()
	if len(lines) == 0 {
		b.WriteString(v.styles.Muted.Render("No record selected"))
		b.WriteString("\n")
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		l := lines[i]
		label := ""
		if l.label != "" {
			label = l.label + ":"
		}
		b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("%-14s", label)))
		b.WriteString(l.style(l.value))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1,
			min(v.scrollOffset+visible, len(lines)),
			len(lines))))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Record returns the displayed record.
func (v *View) Record() *domain.Record {
	return v.record
}
