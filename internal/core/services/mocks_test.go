package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

// mockLLM returns queued responses in order and records every prompt.
type mockLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	prompts   []string
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", errors.New("no response queued")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return m.err }
func (m *mockLLM) Close() error                 { return nil }

// mockRetriever returns a fixed result or error.
type mockRetriever struct {
	mu      sync.Mutex
	result  domain.RetrievalResult
	err     error
	queries []string
}

func (m *mockRetriever) Retrieve(_ context.Context, query string) (domain.RetrievalResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return domain.RetrievalResult{}, m.err
	}
	return m.result, nil
}

// mockRegistry extracts by exact extension match.
type mockRegistry struct {
	texts map[string]string
	err   error
	panic bool
}

func (m *mockRegistry) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if m.panic {
		panic("malformed input")
	}
	if m.err != nil {
		return "", m.err
	}
	text, ok := m.texts[raw.Extension()]
	if !ok {
		return "", domain.ErrUnsupportedType
	}
	return text, nil
}

func (m *mockRegistry) Register(_ driven.Extractor) {}

func (m *mockRegistry) SupportedExtensions() []string {
	exts := make([]string, 0, len(m.texts))
	for ext := range m.texts {
		exts = append(exts, ext)
	}
	return exts
}

// mockRenderer returns fixed bytes and keeps the last result it saw.
type mockRenderer struct {
	mu   sync.Mutex
	doc  []byte
	err  error
	seen *domain.AuditResult

	panicWith string
}

func (m *mockRenderer) Render(_ context.Context, result *domain.AuditResult) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = result
	if m.panicWith != "" {
		panic(m.panicWith)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func (m *mockRenderer) ContentType() string { return "application/pdf" }

// mockPromptStore serves templates from a map.
type mockPromptStore struct {
	templates map[string]string
	err       error
	reloads   int
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.templates[name], nil
}

func (m *mockPromptStore) Reload() { m.reloads++ }

// mockMetrics counts observations.
type mockMetrics struct {
	mu       sync.Mutex
	audits   int
	degraded map[domain.Section]int
	lastFlag bool
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{degraded: make(map[domain.Section]int)}
}

func (m *mockMetrics) ObserveAudit(_ time.Duration, degraded bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits++
	m.lastFlag = degraded
}

func (m *mockMetrics) IncDegraded(section domain.Section) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degraded[section]++
}

// mockConfigValidator records the settings it was asked to validate.
type mockConfigValidator struct {
	err  error
	seen *domain.LLMSettings
}

func (m *mockConfigValidator) ValidateLLM(config *domain.LLMSettings) error {
	m.seen = config
	return m.err
}

// concurrentLLM answers by prompt kind so interleaved runs get the right reply.
type concurrentLLM struct {
	evaluation string
}

func (m *concurrentLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	if strings.Contains(prompt, "Respond with a JSON array only") {
		return m.evaluation, nil
	}
	return "summary", nil
}

func (m *concurrentLLM) ModelName() string            { return "concurrent-model" }
func (m *concurrentLLM) Ping(_ context.Context) error { return nil }
func (m *concurrentLLM) Close() error                 { return nil }
