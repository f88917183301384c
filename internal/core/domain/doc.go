// Package domain defines the core business entities for reposcout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepositoryRef: An owner/name pair identifying a scan target
//   - KeywordResult: Matches of one keyword across a repository
//   - CommitInfo: Latest-commit provenance of a repository
//   - OutputRecord: The unit written to the spreadsheet and the index
//   - Config: The immutable run configuration
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
