package domain

// Lifecycle states reported by the upstream API.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// PullRequest is one upstream pull request.
type PullRequest struct {
	// ID is the upstream-assigned identifier. It increases monotonically
	// and anchors the sync cursor.
	ID int64

	// Number is the per-repository display number. Single pull requests
	// are addressed upstream by number, not by ID.
	Number int

	// Title is the pull request title.
	Title string

	// Body is the description. Empty when the author left none.
	Body string

	// State is the lifecycle state (open or closed).
	State string

	// Labels holds the label names attached to the pull request.
	Labels []string

	// URL is the canonical web URL.
	URL string
}

// IsClosed reports whether the pull request has been observed closed.
func (p *PullRequest) IsClosed() bool {
	return p.State == StateClosed
}

// HasLabel reports whether a label with exactly this name is attached.
func (p *PullRequest) HasLabel(name string) bool {
	for _, l := range p.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Page is one page of the upstream pull request listing.
type Page struct {
	// PullRequests in the order returned upstream (newest first).
	PullRequests []PullRequest

	// HasNext is true when the upstream advertised a next page.
	HasNext bool
}
