// ABOUTME: MCP resource implementations for the rep tracker.
// ABOUTME: Provides gymbot://grid and gymbot://exercises resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/gymbot/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	gridURI      = "gymbot://grid"
	exercisesURI = "gymbot://exercises"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         gridURI,
		Name:        "Rep Grid",
		Description: "Max reps pivoted into weeks by exercise, grouped by category",
		MIMEType:    "application/json",
	}, s.handleGridResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         exercisesURI,
		Name:        "Exercise Records",
		Description: "Every flat exercise record in store order",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)
}

// Resource handlers

func (s *Server) handleGridResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	grid, err := s.freshGrid(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(gridURI, grid)
}

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, err
	}
	records := s.tracker.Records()
	if records == nil {
		records = []models.Exercise{}
	}
	return jsonResource(exercisesURI, records)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
