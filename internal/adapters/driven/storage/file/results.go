package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/reposcout/internal/core/domain"
	"github.com/custodia-labs/reposcout/internal/core/ports/driven"
)

// Ensure ResultStore implements the interface.
var _ driven.ResultStore = (*ResultStore)(nil)

// ResultStore writes the run's records as a pretty-printed JSON array.
type ResultStore struct {
	path string
}

// NewResultStore creates a store writing to path.
func NewResultStore(path string) *ResultStore {
	return &ResultStore{path: path}
}

// Path returns the results file path.
func (s *ResultStore) Path() string {
	return s.path
}

// SaveAll replaces the results file with records. A nil slice is written
// as an empty array.
func (s *ResultStore) SaveAll(_ context.Context, records []domain.OutputRecord) error {
	if records == nil {
		records = []domain.OutputRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
