package mcp

import (
	"context"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
)

// mockAuditService is a mock implementation of driving.AuditService.
type mockAuditService struct {
	result *domain.AuditResult
	err    error
	got    domain.AuditRequest
}

func (m *mockAuditService) RunAudit(_ context.Context, req domain.AuditRequest) (*domain.AuditResult, error) {
	m.got = req
	return m.result, m.err
}

// mockPromptStore is a mock implementation of driven.PromptStore.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}
