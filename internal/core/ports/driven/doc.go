// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - GitHubAPI: Tree, contents, commit, user listing and code search calls
//   - SpreadsheetSink: Input columns and result rows (Google Sheets)
//   - IndexSink: Idempotency lookups and document ingestion
//   - ResultStore: The end-of-run results artifact
//
// In dry-run mode the sinks are served by in-memory adapters.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
