package driven

import (
	"context"

	"github.com/custodia-labs/reposcout/internal/core/domain"
)

// IndexSink is the search index receiving output records.
type IndexSink interface {
	// DocumentExists reports whether a document with id is already indexed.
	DocumentExists(ctx context.Context, index, id string) (bool, error)

	// Ingest posts the record as a JSON document and returns a status summary.
	Ingest(ctx context.Context, record *domain.OutputRecord) (string, error)
}
