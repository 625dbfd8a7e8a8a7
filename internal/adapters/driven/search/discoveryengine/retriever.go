// Package discoveryengine retrieves reference guidance from a Vertex AI Search
// (Discovery Engine) serving config.
package discoveryengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	de "google.golang.org/api/discoveryengine/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
	"github.com/custodia-labs/disclosure-auditor/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

	// pageSize and summaryResultCount are fixed by the guidance search contract.
	pageSize           = 5
	summaryResultCount = 3

	unknownTitle = "Unknown title"
	noSummary    = "No summary of the relevant information was generated."
)

// Config identifies the serving config and shapes each search request.
type Config struct {
	Settings  domain.RetrievalSettings
	RateLimit RateLimitConfig
}

// Retriever searches a Discovery Engine serving config.
type Retriever struct {
	service       *de.Service
	servingConfig string
	settings      domain.RetrievalSettings
	limiter       *rateLimiter
}

// New creates a retriever authenticated with the configured service account
// key, or application default credentials when none is set.
func New(ctx context.Context, cfg Config) (*Retriever, error) {
	ts, err := tokenSource(ctx, cfg.Settings.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return NewWithOptions(ctx, cfg, option.WithTokenSource(ts))
}

// NewWithOptions creates a retriever with explicit client options.
func NewWithOptions(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Retriever, error) {
	if !cfg.Settings.IsConfigured() {
		return nil, fmt.Errorf("%w: search engine is not configured", domain.ErrSearchUnavailable)
	}

	svc, err := de.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create discovery engine client: %w", err)
	}

	return &Retriever{
		service:       svc,
		servingConfig: cfg.Settings.ServingConfig(),
		settings:      cfg.Settings,
		limiter:       newRateLimiter(cfg.RateLimit),
	}, nil
}

func tokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		creds, err := google.FindDefaultCredentials(ctx, cloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("%w: find default credentials: %w", domain.ErrUnauthorized, err)
		}
		return creds.TokenSource, nil
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse credentials file: %w", domain.ErrUnauthorized, err)
	}
	return creds.TokenSource, nil
}

// Retrieve runs query and returns the generated summary with its citations.
func (r *Retriever) Retrieve(ctx context.Context, query string) (domain.RetrievalResult, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return domain.RetrievalResult{}, err
	}

	req := &de.GoogleCloudDiscoveryengineV1SearchRequest{
		Query:    query,
		PageSize: pageSize,
		ContentSearchSpec: &de.GoogleCloudDiscoveryengineV1SearchRequestContentSearchSpec{
			SummarySpec: &de.GoogleCloudDiscoveryengineV1SearchRequestContentSearchSpecSummarySpec{
				SummaryResultCount: summaryResultCount,
				IncludeCitations:   true,
			},
		},
	}
	if r.settings.ExtractiveAnswers {
		req.ContentSearchSpec.ExtractiveContentSpec = &de.GoogleCloudDiscoveryengineV1SearchRequestContentSearchSpecExtractiveContentSpec{
			MaxExtractiveAnswerCount: 1,
		}
	}

	logger.Debug("Searching %s", r.servingConfig)
	resp, err := r.service.Projects.Locations.Collections.Engines.ServingConfigs.
		Search(r.servingConfig, req).
		Context(ctx).
		Do()
	if err != nil {
		wrapped := wrapError(err)
		if errors.Is(wrapped, domain.ErrRateLimited) {
			r.limiter.RecordRateLimit(retryAfter(err))
		}
		return domain.RetrievalResult{}, wrapped
	}

	return toResult(resp), nil
}

// derivedData is the subset of derivedStructData used for citations.
type derivedData struct {
	Title             string `json:"title"`
	Link              string `json:"link"`
	ExtractiveAnswers []struct {
		PageNumber json.RawMessage `json:"pageNumber"`
	} `json:"extractive_answers"`
}

func toResult(resp *de.GoogleCloudDiscoveryengineV1SearchResponse) domain.RetrievalResult {
	result := domain.RetrievalResult{
		Context:   noSummary,
		Citations: []domain.Citation{},
	}
	if resp == nil {
		return result
	}
	if resp.Summary != nil && resp.Summary.SummaryText != "" {
		result.Context = resp.Summary.SummaryText
	}

	for _, res := range resp.Results {
		if res == nil || res.Document == nil {
			continue
		}
		result.Citations = append(result.Citations, toCitation(res.Document))
	}
	return result
}

func toCitation(doc *de.GoogleCloudDiscoveryengineV1Document) domain.Citation {
	var data derivedData
	if len(doc.DerivedStructData) > 0 {
		if err := json.Unmarshal(doc.DerivedStructData, &data); err != nil {
			logger.Debug("Ignoring malformed derivedStructData for %s: %v", doc.Name, err)
		}
	}

	c := domain.Citation{
		URI:        data.Link,
		Title:      data.Title,
		PageNumber: domain.UnknownPage,
	}
	if c.Title == "" {
		c.Title = unknownTitle
	}
	if c.URI == "" {
		c.URI = doc.Name
	}
	if len(data.ExtractiveAnswers) > 0 {
		if page := pageNumber(data.ExtractiveAnswers[0].PageNumber); page != "" {
			c.PageNumber = page
		}
	}
	return c
}

// pageNumber accepts the page as a JSON string or number.
func pageNumber(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
