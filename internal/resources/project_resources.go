package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/server"
)

// RegisterProjectResources registers resources describing the Dida365 account
func RegisterProjectResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register project list resource
	projectsResource := mcp.NewResource(
		"dida://projects",
		"Dida365 Projects",
		mcp.WithResourceDescription("All open projects of the authenticated Dida365 account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(projectsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleProjectList(ctx, request, sc)
	})

	return nil
}

// handleProjectList returns the open projects with their kanban columns
func handleProjectList(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.DidaClient()
	if client == nil {
		return nil, fmt.Errorf("no Dida365 client configured")
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	open := make([]dida.Project, 0, len(projects))
	for _, p := range projects {
		if p.Closed {
			continue
		}
		open = append(open, p)
	}

	payload := map[string]interface{}{
		"count":    len(open),
		"projects": open,
	}

	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
