// ABOUTME: MCP tool implementations for the rep tracker.
// ABOUTME: Grid reads, cell edits, week and exercise management, and health.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
	"github.com/harperreed/gymbot/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "show_grid",
		Description: "Show the week by exercise grid of max reps",
	}, s.handleShowGrid)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List flat exercise records, optionally filtered by week or category",
	}, s.handleListExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_reps",
		Description: "Set max reps for an exercise in a week, creating the record if needed",
	}, s.handleSetReps)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_week",
		Description: "Add the next week with a zero-rep record for every known exercise",
	}, s.handleAddWeek)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Add a new exercise column in the PUSH, PULL, or LEG category",
	}, s.handleAddExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_exercise",
		Description: "Delete every record of an exercise across all weeks (requires confirm: true)",
	}, s.handleDeleteExercise)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "health",
		Description: "Check whether the record store backend is reachable",
	}, s.handleHealth)
}

// Tool input/output types

type emptyInput struct{}

type listExercisesInput struct {
	Week     int    `json:"week,omitempty" jsonschema:"Only records for this week"`
	Category string `json:"category,omitempty" jsonschema:"Only records in this category (push, pull, leg)"`
}

type setRepsInput struct {
	Week     int    `json:"week" jsonschema:"Week number, 1 or higher"`
	Exercise string `json:"exercise" jsonschema:"Exercise name exactly as shown in the grid"`
	Reps     int    `json:"reps" jsonschema:"Max reps, zero or more"`
}

type addExerciseInput struct {
	Name     string `json:"name" jsonschema:"Exercise name"`
	Category string `json:"category" jsonschema:"push, pull, or leg"`
}

type deleteExerciseInput struct {
	Name    string `json:"name" jsonschema:"Exercise name"`
	Confirm bool   `json:"confirm" jsonschema:"Must be true to delete"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type healthOutput struct {
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	Application string `json:"application,omitempty"`
	Version     string `json:"version,omitempty"`
	Environment string `json:"environment,omitempty"`
}

// Tool handlers

func (s *Server) handleShowGrid(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	grid, err := s.freshGrid(ctx)
	if err != nil {
		return nil, nil, err
	}
	if grid.Empty() {
		return nil, map[string]interface{}{"message": "No exercises recorded yet."}, nil
	}
	return nil, grid, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input listExercisesInput) (*mcp.CallToolResult, any, error) {
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, nil, err
	}

	var category models.Category
	if input.Category != "" {
		c, err := models.ParseCategory(input.Category)
		if err != nil {
			return nil, nil, err
		}
		category = c
	}

	var out []models.Exercise
	for _, e := range s.tracker.Records() {
		if input.Week > 0 && e.WeekNumber != input.Week {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		out = append(out, e)
	}

	if len(out) == 0 {
		return nil, map[string]interface{}{"message": "No exercises found."}, nil
	}
	return nil, out, nil
}

func (s *Server) handleSetReps(ctx context.Context, req *mcp.CallToolRequest, input setRepsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if input.Week < 1 {
		return nil, simpleOutput{}, models.ErrInvalidWeek
	}
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, simpleOutput{}, err
	}

	applied, err := s.tracker.Edit(ctx, input.Week, input.Exercise, strconv.Itoa(input.Reps))
	if err != nil {
		return nil, simpleOutput{}, describe("set reps", err)
	}
	if !applied {
		return nil, simpleOutput{}, pivot.ErrInvalidReps
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Set %s week %d to %d reps", input.Exercise, input.Week, input.Reps),
	}, nil
}

func (s *Server) handleAddWeek(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, simpleOutput{}, err
	}

	week, err := s.tracker.AddWeek(ctx)
	if err != nil {
		return nil, simpleOutput{}, describe("add week", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Added week %d", week),
	}, nil
}

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.tracker.AddExercise(ctx, input.Name, category); err != nil {
		return nil, simpleOutput{}, describe("add exercise", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Added %s (%s)", strings.TrimSpace(input.Name), category),
	}, nil
}

func (s *Server) handleDeleteExercise(ctx context.Context, req *mcp.CallToolRequest, input deleteExerciseInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, fmt.Errorf("deleting %s removes every week of records; call again with confirm: true", input.Name)
	}
	if _, err := s.freshGrid(ctx); err != nil {
		return nil, simpleOutput{}, err
	}

	n, err := s.tracker.DeleteExercise(ctx, input.Name, func(string) bool { return true })
	if err != nil {
		return nil, simpleOutput{}, describe("delete exercise", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s (%d records)", input.Name, n),
	}, nil
}

func (s *Server) handleHealth(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, healthOutput, error) {
	state := tracker.Probe(ctx, s.prober)

	out := healthOutput{
		Status:  string(state.Status),
		Message: state.Message,
	}
	if state.Info != nil {
		out.Application = state.Info.Application
		out.Version = state.Info.Version
		out.Environment = state.Info.Environment
	}
	return nil, out, nil
}

// freshGrid reloads the records so every tool acts on current data.
func (s *Server) freshGrid(ctx context.Context) (*pivot.Grid, error) {
	if err := s.tracker.Load(ctx); err != nil && !errors.Is(err, tracker.ErrStale) {
		return nil, describe("load exercises", err)
	}
	return s.tracker.Grid(), nil
}

// describe turns a store failure into the user-facing message.
func describe(op string, err error) error {
	var se *api.StatusError
	var nr *api.NoResponseError
	if errors.As(err, &se) || errors.As(err, &nr) {
		return fmt.Errorf("%s: %s", op, api.Describe(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
