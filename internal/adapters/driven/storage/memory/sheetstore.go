package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure SheetStore implements the interface.
var _ driven.SpreadsheetSink = (*SheetStore)(nil)

// CellWrite is one recorded write.
type CellWrite struct {
	Sheet  string
	Column string
	Row    int
	Values []string
}

// SheetStore is an in-memory implementation of driven.SpreadsheetSink.
// Reads are served from a source store when one is set, otherwise from
// seeded columns; writes are recorded and never forwarded.
type SheetStore struct {
	mu      sync.RWMutex
	source  driven.SpreadsheetSink
	columns map[string]domain.Columns
	writes  []CellWrite
}

// NewSheetStore creates an in-memory sheet store. source may be nil.
func NewSheetStore(source driven.SpreadsheetSink) *SheetStore {
	return &SheetStore{
		source:  source,
		columns: make(map[string]domain.Columns),
	}
}

// Seed sets the columns returned by ReadColumns for sheet.
func (s *SheetStore) Seed(sheet string, columns domain.Columns) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columns[sheet] = columns
}

// ReadColumns returns the columns of sheet. The range is only honoured by
// the source store.
func (s *SheetStore) ReadColumns(ctx context.Context, sheet, rng string) (domain.Columns, error) {
	if s.source != nil {
		return s.source.ReadColumns(ctx, sheet, rng)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	cols, ok := s.columns[sheet]
	if !ok {
		return nil, domain.NewOpError("read columns", domain.KindNotFound,
			fmt.Errorf("%w: sheet %q", domain.ErrNotFound, sheet))
	}
	out := make(domain.Columns, len(cols))
	for k, v := range cols {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

// WriteRow records a row write.
func (s *SheetStore) WriteRow(_ context.Context, sheet, startColumn string, row int, values []string) error {
	s.record(CellWrite{Sheet: sheet, Column: startColumn, Row: row, Values: append([]string(nil), values...)})
	return nil
}

// WriteCell records a single cell write.
func (s *SheetStore) WriteCell(_ context.Context, sheet, column string, row int, value string) error {
	s.record(CellWrite{Sheet: sheet, Column: column, Row: row, Values: []string{value}})
	return nil
}

func (s *SheetStore) record(w CellWrite) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, w)
}

// Writes returns every recorded write in order.
func (s *SheetStore) Writes() []CellWrite {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]CellWrite(nil), s.writes...)
}
