// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One exercises table keyed by id, unique per (name, week).
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exercises (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL CHECK (category IN ('PUSH', 'PULL', 'LEG')),
		week_number INTEGER NOT NULL CHECK (week_number > 0),
		max_reps INTEGER NOT NULL DEFAULT 0 CHECK (max_reps >= 0),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (name, week_number)
	);

	CREATE INDEX IF NOT EXISTS idx_exercises_week ON exercises(week_number);
	CREATE INDEX IF NOT EXISTS idx_exercises_category ON exercises(category);
	`

	_, err := d.db.Exec(schema)
	return err
}
