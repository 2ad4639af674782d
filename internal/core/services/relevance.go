package services

import "github.com/custodia-labs/sectrack/internal/core/domain"

// DefaultSecurityLabel is the nixpkgs label marking security fixes.
const DefaultSecurityLabel = "1.severity: security"

// RelevanceFilter selects pull requests carrying the security label.
type RelevanceFilter struct {
	label string
}

// NewRelevanceFilter creates a filter for label.
// An empty label selects DefaultSecurityLabel.
func NewRelevanceFilter(label string) *RelevanceFilter {
	if label == "" {
		label = DefaultSecurityLabel
	}
	return &RelevanceFilter{label: label}
}

// IsRelevant reports whether a label exactly equals the security label.
// No case folding or trimming is applied.
func (f *RelevanceFilter) IsRelevant(pr *domain.PullRequest) bool {
	return pr.HasLabel(f.label)
}

// Label returns the label being matched.
func (f *RelevanceFilter) Label() string {
	return f.label
}
