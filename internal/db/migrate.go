package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS assessments (
		id                   TEXT PRIMARY KEY,
		taken_at             TEXT NOT NULL,
		total_score          INTEGER NOT NULL CHECK(total_score >= 0),
		category             TEXT NOT NULL
		                     CHECK(category IN ('Poor','Moderate','Good','Excellent')),
		weak_domains         TEXT NOT NULL DEFAULT '[]',
		recommendations      TEXT NOT NULL DEFAULT '[]',
		recommendation_error TEXT NOT NULL DEFAULT '',
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assessments_taken_at ON assessments(taken_at)`,

	`CREATE TABLE IF NOT EXISTS assessment_responses (
		assessment_id TEXT NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
		question_id   INTEGER NOT NULL,
		value         INTEGER NOT NULL CHECK(value BETWEEN 1 AND 4),
		PRIMARY KEY (assessment_id, question_id)
	)`,

	// Added after the first release; older databases get the default.
	`ALTER TABLE assessments ADD COLUMN max_score INTEGER NOT NULL DEFAULT 32`,
}
