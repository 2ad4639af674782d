package github

import (
	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/sectrack/internal/core/domain"
)

// toDomainPullRequests converts a listing page, preserving upstream order.
func toDomainPullRequests(prs []*gh.PullRequest) []domain.PullRequest {
	out := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if pr == nil {
			continue
		}
		out = append(out, toDomainPullRequest(pr))
	}
	return out
}

// toDomainPullRequest converts a go-github pull request.
// A nil body becomes the empty string.
func toDomainPullRequest(pr *gh.PullRequest) domain.PullRequest {
	labels := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		labels = append(labels, l.GetName())
	}

	return domain.PullRequest{
		ID:     pr.GetID(),
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		State:  pr.GetState(),
		Labels: labels,
		URL:    pr.GetHTMLURL(),
	}
}
