// Package cli implements the sectrack command line interface with cobra.
//
// Commands reach the core through a Factory installed by main, so each
// command can be exercised in tests against in-memory adapters.
package cli
