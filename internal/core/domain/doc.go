// Package domain defines the core business entities for sectrack.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PullRequest: An upstream pull request as seen by the pipeline
//   - Record: Vulnerability metadata extracted from a relevant pull request
//   - SyncState: The durable cursor and open-item set
//   - OpenSet: Insertion-ordered set of pull requests still awaiting closure
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
