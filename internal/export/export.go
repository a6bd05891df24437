// ABOUTME: Export and import of exercise records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/harperreed/gymbot/internal/api"
	"github.com/harperreed/gymbot/internal/models"
	"github.com/harperreed/gymbot/internal/pivot"
	"gopkg.in/yaml.v3"
)

// Version is the export format version.
const Version = "1.0"

// Data represents the full export format for exercise records.
type Data struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Exercises  []models.Exercise `json:"exercises" yaml:"exercises"`
}

// New wraps records in an export envelope stamped with now.
func New(records []models.Exercise, now time.Time) *Data {
	if records == nil {
		records = []models.Exercise{}
	}
	return &Data{
		Version:    Version,
		ExportedAt: now,
		Tool:       "gymbot",
		Exercises:  records,
	}
}

// JSON exports data as indented JSON.
func JSON(data *Data) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// YAML exports data as YAML with records grouped by category then name.
func YAML(data *Data) ([]byte, error) {
	yamlData := struct {
		Version    string                               `yaml:"version"`
		ExportedAt string                               `yaml:"exported_at"`
		Tool       string                               `yaml:"tool"`
		Exercises  map[string]map[string][]yamlWeekReps `yaml:"exercises"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Exercises:  make(map[string]map[string][]yamlWeekReps),
	}

	for _, e := range data.Exercises {
		c := string(e.Category)
		if yamlData.Exercises[c] == nil {
			yamlData.Exercises[c] = make(map[string][]yamlWeekReps)
		}
		yamlData.Exercises[c][e.Name] = append(yamlData.Exercises[c][e.Name], yamlWeekReps{
			ID:      e.ShortID(),
			Week:    e.WeekNumber,
			MaxReps: e.MaxReps,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlWeekReps struct {
	ID      string `yaml:"id"`
	Week    int    `yaml:"week"`
	MaxReps int    `yaml:"max_reps"`
}

// Markdown renders the pivoted grid, one table per category.
func Markdown(data *Data) string {
	grid := pivot.Forward(data.Exercises)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Gymbot Export - %s\n\n", data.ExportedAt.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	if grid.Empty() {
		sb.WriteString("No exercises recorded.\n")
		return sb.String()
	}

	for _, g := range grid.Groups {
		sb.WriteString(fmt.Sprintf("## %s\n\n", g.Category))
		writeTable(&sb, grid, g.Columns)
		sb.WriteString("\n")
	}

	if orphans := ungrouped(grid); len(orphans) > 0 {
		sb.WriteString("## Other\n\n")
		writeTable(&sb, grid, orphans)
		sb.WriteString("\n")
	}

	if len(grid.Conflicts) > 0 {
		sb.WriteString("## Conflicts\n\n")
		for _, c := range grid.Conflicts {
			sb.WriteString(fmt.Sprintf("- week %d %s: %d records (%s)\n",
				c.Week, c.Name, len(c.IDs), strings.Join(c.IDs, ", ")))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeTable(sb *strings.Builder, grid *pivot.Grid, columns []pivot.Column) {
	sb.WriteString("| Week |")
	for _, c := range columns {
		sb.WriteString(fmt.Sprintf(" %s |", c.Name))
	}
	sb.WriteString("\n|------|")
	for range columns {
		sb.WriteString("------|")
	}
	sb.WriteString("\n")

	for _, row := range grid.Rows {
		sb.WriteString(fmt.Sprintf("| %d |", row.Week))
		for _, c := range columns {
			cell := row.Cells[c.Name]
			if cell.Empty() {
				sb.WriteString(" - |")
			} else {
				sb.WriteString(fmt.Sprintf(" %d |", *cell.Reps))
			}
		}
		sb.WriteString("\n")
	}
}

func ungrouped(grid *pivot.Grid) []pivot.Column {
	grouped := make(map[string]bool)
	for _, g := range grid.Groups {
		for _, c := range g.Columns {
			grouped[c.Name] = true
		}
	}
	var out []pivot.Column
	for _, c := range grid.Columns {
		if !grouped[c.Name] {
			out = append(out, c)
		}
	}
	return out
}

// ParseJSON reads an export envelope or a bare JSON array of records.
func ParseJSON(raw []byte) (*Data, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var records []models.Exercise
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("unmarshal JSON: %w", err)
		}
		return &Data{Version: Version, Tool: "gymbot", Exercises: records}, nil
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return &data, nil
}

// Creator is the part of the record store an import needs.
type Creator interface {
	CreateExercise(ctx context.Context, in models.ExerciseInput) (*models.Exercise, error)
}

// ImportSummary holds counts of imported records.
type ImportSummary struct {
	Created int
	Skipped int
}

// Import creates every record in data through store, one call at a time.
// The store assigns new ids. A record the store rejects as a duplicate
// (name, week) pair is skipped; any other failure stops the import with
// earlier records kept.
func Import(ctx context.Context, store Creator, data *Data) (*ImportSummary, error) {
	summary := &ImportSummary{}

	for i, e := range data.Exercises {
		in := e.Input()
		if err := in.Validate(); err != nil {
			return summary, fmt.Errorf("record %d (%s): %w", i, e.Name, err)
		}

		_, err := store.CreateExercise(ctx, in)
		var se *api.StatusError
		switch {
		case errors.As(err, &se) && se.Status == http.StatusConflict:
			summary.Skipped++
		case err != nil:
			return summary, fmt.Errorf("import %s week %d: %w", e.Name, e.WeekNumber, err)
		default:
			summary.Created++
		}
	}

	return summary, nil
}
