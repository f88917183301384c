package driven

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// SpreadsheetSink reads input columns from and writes result rows to a spreadsheet.
// Rows are 1-based, columns are A1 letters.
type SpreadsheetSink interface {
	// ReadColumns reads rng of sheet and maps each header of the first row
	// to the values below it.
	ReadColumns(ctx context.Context, sheet, rng string) (domain.Columns, error)

	// WriteRow overwrites len(values) cells of row starting at startColumn.
	WriteRow(ctx context.Context, sheet, startColumn string, row int, values []string) error

	// WriteCell overwrites a single cell.
	WriteCell(ctx context.Context, sheet, column string, row int, value string) error
}
