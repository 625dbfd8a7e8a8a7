package services

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// GuidanceQuery is the fixed retrieval query for every audit run.
const GuidanceQuery = "Comprehensive guidance on the TNFD framework recommended disclosures"

// GuidanceRetriever fetches reference guidance from the search backend.
type GuidanceRetriever struct {
	retriever driven.Retriever
}

// NewGuidanceRetriever creates a retriever. A nil backend degrades every call.
func NewGuidanceRetriever(retriever driven.Retriever) *GuidanceRetriever {
	return &GuidanceRetriever{retriever: retriever}
}

// Retrieve runs query against the backend.
// On failure the result carries an error description as its context and no
// citations, and the error is returned alongside.
func (r *GuidanceRetriever) Retrieve(ctx context.Context, query string) (domain.RetrievalResult, error) {
	logger.Debug("Retrieving guidance: %q", query)

	if r.retriever == nil {
		return searchFailure(domain.ErrSearchUnavailable), domain.ErrSearchUnavailable
	}

	result, err := r.retriever.Retrieve(ctx, query)
	if err != nil {
		logger.Warn("Guidance retrieval failed: %v", err)
		return searchFailure(err), err
	}
	if result.Citations == nil {
		result.Citations = []domain.Citation{}
	}

	logger.Debug("Retrieved %d citations", len(result.Citations))
	return result, nil
}

func searchFailure(err error) domain.RetrievalResult {
	return domain.RetrievalResult{
		Context:   "An error occurred during search: " + err.Error(),
		Citations: []domain.Citation{},
	}
}
