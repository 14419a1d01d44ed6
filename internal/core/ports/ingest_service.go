package ports

import (
	"context"

	"github.com/datawolt/datawolt/internal/core/domain"
)

// IngestResult describes a committed ingestion run.
type IngestResult struct {
	UserID     string
	OrderCount int
	ItemCount  int
	Pages      int
	// Partial is set when a page failed and the committed snapshot is truncated.
	Partial *domain.PartialIngestionError
}

// IngestService fetches, normalizes and stores a user's order history.
type IngestService interface {
	Ingest(ctx context.Context, token string) (*IngestResult, error)
}
