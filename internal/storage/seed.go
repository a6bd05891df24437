// ABOUTME: Seeds the record store from a JSON file of exercise records.
// ABOUTME: Used by the reference server to start from an existing data file.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harperreed/gymbot/internal/models"
)

// SeedSummary holds counts of seeded records.
type SeedSummary struct {
	Created int
	Skipped int
}

// ReadSeedFile reads a JSON array of exercise records.
func ReadSeedFile(path string) ([]models.Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var records []models.Exercise
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return records, nil
}

// Seed copies records into dst in order. Records without an id get a
// fresh one. Records whose (name, week) pair already exists are skipped;
// any other failure stops the seed.
func Seed(ctx context.Context, dst Repository, records []models.Exercise) (*SeedSummary, error) {
	summary := &SeedSummary{}

	for i := range records {
		e := records[i]
		if err := e.Input().Validate(); err != nil {
			return summary, fmt.Errorf("seed record %d (%s): %w", i, e.Name, err)
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}

		err := dst.CreateExercise(ctx, &e)
		switch {
		case errors.Is(err, ErrDuplicate):
			summary.Skipped++
		case err != nil:
			return summary, fmt.Errorf("seed record %s: %w", e.ID, err)
		default:
			summary.Created++
		}
	}

	return summary, nil
}
