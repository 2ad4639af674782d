// Package github implements the upstream pull request fetcher for sectrack.
//
// The fetcher reads a single configured repository (default NixOS/nixpkgs)
// through the GitHub REST API and implements [driven.PullRequestFetcher].
//
// # Architecture
//
//   - Client: wraps go-github with throttling and rate-limit retry
//   - RateLimiter: proactive token bucket plus the fixed rate-limit cooldown
//   - Config: parses and validates the github.* and sync.* settings
//
// # Requests
//
// Two requests are issued, always sequentially:
//
//   - GET {base}/repos/{owner}/{repo}/pulls?state=all[&page=N]
//   - GET {base}/repos/{owner}/{repo}/pulls/{number}
//
// Whether another listing page exists is read from the Link response header:
// only an entry with rel="next" counts.
//
// # Rate Limiting
//
// A 403 or 429 response is treated as "out of requests". The client logs it,
// blocks for the configured cooldown (5 minutes by default) and re-issues the
// same request. There is no retry limit; the call returns only when the
// request succeeds, fails with another status, or the context is cancelled.
//
// Before every attempt a token bucket throttles requests to a configurable
// rate so that long syncs spend their quota evenly.
//
// # Authentication
//
// A Personal Access Token is optional. Without one requests are anonymous and
// limited to 60 per hour, which makes cooldowns frequent on a large backlog.
//
// # Example Usage
//
//	cfg, _ := github.ParseConfig(configStore)
//	client := github.NewClient(cfg, auth.NewTokenProvider(cfg.Token))
//
//	page, err := client.FetchPage(ctx, 1)
//	if err != nil {
//	    return err
//	}
//	for _, pr := range page.PullRequests {
//	    // Process pull request
//	}
package github
