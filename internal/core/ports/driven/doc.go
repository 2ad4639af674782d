// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PullRequestFetcher: Reads pull requests from the upstream API
//   - StateStore: Durable key-value store for the cursor and open-item set
//   - RecordSink: Receives every extracted record
//   - RecordReader: Lists records persisted by a sink
//   - ConfigStore: Application configuration
//   - TokenProvider: Optional GitHub token
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
