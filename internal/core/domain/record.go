package domain

import "time"

// PullRequestRef identifies the pull request a record was extracted from.
type PullRequestRef struct {
	ID     int64  `json:"id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

// Record holds vulnerability metadata extracted from a relevant pull request.
// Records have no identity beyond their source pull request.
type Record struct {
	// PullRequest references the source item.
	PullRequest PullRequestRef `json:"pr"`

	// CVEs are unique uppercase identifiers in first-seen order.
	CVEs []string `json:"cves"`

	// Package is the package name parsed from the title. Empty when absent.
	Package string `json:"package,omitempty"`

	// AffectedVersions are the versions the title says are being replaced.
	AffectedVersions []string `json:"affected_versions"`

	// FixedVersion is the version the title upgrades to. Empty when absent.
	FixedVersion string `json:"fixed_version,omitempty"`

	// RunID identifies the run that produced the record.
	RunID string `json:"run_id,omitempty"`

	// ExtractedAt is when the record was produced.
	ExtractedAt time.Time `json:"extracted_at"`
}

// HasVersions reports whether version data was parsed from the title.
func (r *Record) HasVersions() bool {
	return r.Package != ""
}
