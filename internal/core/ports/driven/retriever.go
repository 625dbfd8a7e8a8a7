package driven

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// Retriever queries the managed search backend.
// It returns a generated summary of the top results plus one citation per result.
type Retriever interface {
	// Retrieve runs a single search for query.
	// Errors are returned as-is; callers decide how to degrade.
	Retrieve(ctx context.Context, query string) (domain.RetrievalResult, error)
}
