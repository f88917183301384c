package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure SheetStore implements the interface.
var _ driven.SpreadsheetSink = (*SheetStore)(nil)

const (
	valueInputRaw  = "RAW"
	majorDimension = "ROWS"
)

// SheetStore reads and writes one spreadsheet through the Sheets API.
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	rateLimiter   *RateLimiter
}

// NewSheetStore creates a store for spreadsheetID using the default
// Sheets quota.
func NewSheetStore(svc *sheets.Service, spreadsheetID string) *SheetStore {
	return NewSheetStoreWithLimiter(svc, spreadsheetID, NewRateLimiter(DefaultQuota()))
}

// NewSheetStoreWithLimiter creates a store with a custom rate limiter.
func NewSheetStoreWithLimiter(svc *sheets.Service, spreadsheetID string, limiter *RateLimiter) *SheetStore {
	return &SheetStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		rateLimiter:   limiter,
	}
}

// ReadColumns reads rng of sheet. The first row holds the headers; each
// header maps to the values of the rows below it, padded with empty strings
// where a row is shorter than the header row.
func (s *SheetStore) ReadColumns(ctx context.Context, sheet, rng string) (domain.Columns, error) {
	if err := s.rateLimiter.Wait(ctx, QuotaRead); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, A1Range(sheet, rng)).Context(ctx).Do()
	if err != nil {
		return nil, s.wrap(err, "read columns")
	}

	columns := domain.Columns{}
	if len(resp.Values) == 0 {
		return columns, nil
	}

	headers := resp.Values[0]
	for _, row := range resp.Values[1:] {
		for i, h := range headers {
			header := cellString(h)
			value := ""
			if i < len(row) {
				value = cellString(row[i])
			}
			columns[header] = append(columns[header], value)
		}
	}
	return columns, nil
}

// WriteRow overwrites len(values) cells of row starting at startColumn.
func (s *SheetStore) WriteRow(ctx context.Context, sheet, startColumn string, row int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	start, err := ColumnNumber(startColumn)
	if err != nil {
		return domain.NewOpError("write row", domain.KindInvalidInput, err)
	}
	end := ColumnLetter(start + len(values) - 1)
	rng := fmt.Sprintf("%s%d:%s%d", strings.ToUpper(startColumn), row, end, row)
	return s.update(ctx, A1Range(sheet, rng), values, "write row")
}

// WriteCell overwrites a single cell.
func (s *SheetStore) WriteCell(ctx context.Context, sheet, column string, row int, value string) error {
	if _, err := ColumnNumber(column); err != nil {
		return domain.NewOpError("write cell", domain.KindInvalidInput, err)
	}
	rng := fmt.Sprintf("%s%d", strings.ToUpper(column), row)
	return s.update(ctx, A1Range(sheet, rng), []string{value}, "write cell")
}

func (s *SheetStore) update(ctx context.Context, rng string, values []string, op string) error {
	if err := s.rateLimiter.Wait(ctx, QuotaWrite); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	body := &sheets.ValueRange{
		Range:          rng,
		MajorDimension: majorDimension,
		Values:         [][]interface{}{cells},
	}

	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, body).
		ValueInputOption(valueInputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return s.wrap(err, op)
	}
	return nil
}

func (s *SheetStore) wrap(err error, op string) error {
	if IsRateLimited(err) {
		s.rateLimiter.Pause(retryAfter(err))
	}
	return WrapError(err, op)
}

// A1Range qualifies rng with a quoted sheet name.
func A1Range(sheet, rng string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheet, "'", "''"), rng)
}

// ColumnNumber converts a column letter to its 1-based number (A=1, AA=27).
func ColumnNumber(letter string) (int, error) {
	if letter == "" {
		return 0, fmt.Errorf("empty column letter")
	}
	n := 0
	for _, c := range strings.ToUpper(letter) {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column letter %q", letter)
		}
		n = n*26 + int(c-'A'+1)
	}
	return n, nil
}

// ColumnLetter converts a 1-based column number to its letter.
func ColumnLetter(n int) string {
	var b []byte
	for n > 0 {
		rem := (n - 1) % 26
		b = append([]byte{byte('A' + rem)}, b...)
		n = (n - 1) / 26
	}
	return string(b)
}

func cellString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
