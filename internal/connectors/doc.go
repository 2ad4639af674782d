// Package connectors holds clients for upstream pull request sources.
// Each connector implements the driven.PullRequestFetcher port for one
// source type. GitHub is the only one.
package connectors
