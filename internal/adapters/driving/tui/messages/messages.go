// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/sectrack/internal/core/domain"
	"github.com/custodia-labs/sectrack/internal/core/ports/driving"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewRecords lists stored records.
	ViewRecords ViewType = iota
	// ViewRecordDetail shows one record.
	ViewRecordDetail
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewRecords:
		return "records"
	case ViewRecordDetail:
		return "record_detail"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RecordsLoaded carries stored records and the saved sync state.
type RecordsLoaded struct {
	Records []domain.Record
	State   *domain.SyncState
	Err     error
}

// RecordSelected signals a record was chosen for the detail view.
type RecordSelected struct {
	Record domain.Record
}

// RunStarted signals an ingestion pass began.
type RunStarted struct{}

// RunCompleted carries the result of an ingestion pass.
type RunCompleted struct {
	Report *driving.RunReport
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
