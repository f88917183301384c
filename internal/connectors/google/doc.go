// Package google provides the Google Sheets adapter used as the tabular
// input source and output sink.
//
// This package contains:
//   - A service factory that authenticates with a service-account file
//   - [SheetStore], which reads header-keyed columns and writes rows and cells
//   - Error handling for common Google API errors (401, 403, 404, 429)
//   - Separate read and write quota buckets, paused by Retry-After on 429
//
// # Usage
//
//	svc, err := google.NewSheetsService(ctx, "service-account.json")
//	store := google.NewSheetStore(svc, spreadsheetID)
//	cols, err := store.ReadColumns(ctx, "Submissions", "A1:Z")
//
// Writes use the RAW value input option and the ROWS major dimension, with
// A1 ranges of the form 'Sheet'!C5:E5.
package google
