package services

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

var (
	// cvePattern matches CVE identifiers anywhere in free text.
	cvePattern = regexp.MustCompile(`(?i)CVE-[0-9]{4}-[0-9]+`)

	// versionPattern matches upgrade titles such as "openssl: 3.0.1 -> 3.0.2".
	// Groups: package, affected version, fixed version.
	versionPattern = regexp.MustCompile(`(?i)^(.+): ?([0-9][0-9.a-z-]+) ?-?>? ?([0-9][0-9.a-z-]+).*$`)
)

// Extractor derives vulnerability metadata from pull request text.
// It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds a record from the pull request title and body.
// It never fails; fields it cannot find are left empty.
func (e *Extractor) Extract(pr *domain.PullRequest) domain.Record {
	record := domain.Record{
		PullRequest: domain.PullRequestRef{
			ID:     pr.ID,
			Number: pr.Number,
			URL:    pr.URL,
			Title:  pr.Title,
		},
		CVEs:             ExtractCVEs(pr.Title + "\n" + pr.Body),
		AffectedVersions: []string{},
	}

	if m := versionPattern.FindStringSubmatch(pr.Title); m != nil {
		record.Package = strings.TrimSpace(m[1])
		record.AffectedVersions = []string{m[2]}
		record.FixedVersion = m[3]
	}

	return record
}

// ExtractCVEs returns the CVE identifiers in text, uppercased and
// deduplicated in first-seen order. Never nil.
func ExtractCVEs(text string) []string {
	var ids orderedSet
	for _, m := range cvePattern.FindAllString(text, -1) {
		ids.add(strings.ToUpper(strings.TrimSpace(m)))
	}
	return ids.values()
}

// orderedSet keeps the first occurrence of each string.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func (s *orderedSet) add(v string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) values() []string {
	if s.items == nil {
		return []string{}
	}
	return s.items
}
