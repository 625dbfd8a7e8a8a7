package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/disclosure-auditor/internal/core/domain"
	"github.com/custodia-labs/disclosure-auditor/internal/core/ports/driven"
)

// uriScheme is the custom URI scheme for auditor resources.
const uriScheme = "auditor://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "criteria",
		Name:        "criteria",
		Description: "The recommended disclosures every report is scored against",
		MIMEType:    "application/json",
	}, s.handleCriteriaResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "prompts/{name}",
		Name:        "prompt-template",
		Description: "The prompt template used for evaluation or synthesis",
		MIMEType:    "text/plain",
	}, s.handlePromptResource)
}

type criterionInfo struct {
	Classification string `json:"classification"`
	Item           string `json:"item"`
	Description    string `json:"description"`
}

// handleCriteriaResource returns the criteria catalogue.
func (s *Server) handleCriteriaResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	catalogue := domain.Catalogue()
	infos := make([]criterionInfo, len(catalogue))
	for i, c := range catalogue {
		infos[i] = criterionInfo{
			Classification: c.Classification,
			Item:           c.Item,
			Description:    c.Description,
		}
	}

	data, err := domain.MarshalIndentUnescaped(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling criteria: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handlePromptResource returns the raw template for a prompt name.
func (s *Server) handlePromptResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Prompts == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	name := extractPromptName(req.Params.URI)
	if !isKnownPrompt(name) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := s.ports.Prompts.Load(name)
	if err != nil {
		return nil, fmt.Errorf("loading prompt %s: %w", name, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     content,
		}},
	}, nil
}

// extractPromptName extracts the name from a URI like auditor://prompts/{name}.
func extractPromptName(uri string) string {
	const prefix = uriScheme + "prompts/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}

func isKnownPrompt(name string) bool {
	return name == driven.PromptEvaluation || name == driven.PromptSynthesis
}
