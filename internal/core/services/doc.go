// Package services implements the driving port interfaces.
//
// The pipeline classifies each input URL, scans repositories through the
// GitHubAPI port, resolves commit provenance, builds output records and
// hands them to the synchroniser, which writes the spreadsheet and the
// search index. Everything runs on one goroutine; the only waits are the
// rate limiters inside the connectors.
package services
