// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion pipeline is built from small components:
//
//   - Extractor: CVE and version metadata from pull request text
//   - RelevanceFilter: security label matching
//   - PageSync: newest-first walk of the listing down to the cursor
//   - Reconciler: re-checks tracked open pull requests
//   - Orchestrator: runs the above and persists state atomically
//   - Scheduler: repeats runs at a fixed interval
package services
