// Package mcp provides an MCP (Model Context Protocol) server adapter for the auditor.
// It lets AI assistants run audits and read the criteria catalogue and prompt templates.
package mcp

import "errors"

// ErrMissingAuditService is returned when the audit service is not provided.
var ErrMissingAuditService = errors.New("mcp: audit service is required")

// ErrNoReportInput is returned when a tool call names neither text nor a file.
var ErrNoReportInput = errors.New("mcp: report_text or file_path is required")
