package driven

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// ResultStore persists every record produced in a run, once, at the end.
type ResultStore interface {
	SaveAll(ctx context.Context, records []domain.OutputRecord) error
}
