package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/lifestyle/internal/db"
	"github.com/alexanderramin/lifestyle/internal/domain"
)

// SQLiteAssessmentRepo implements AssessmentRepo on SQLite.
type SQLiteAssessmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssessmentRepo creates a repo over a *sql.DB or a *sql.Tx.
func NewSQLiteAssessmentRepo(conn db.DBTX) *SQLiteAssessmentRepo {
	return &SQLiteAssessmentRepo{db: conn}
}

// Create inserts the record and its responses. Callers wanting atomicity
// pass a transaction-backed DBTX.
func (r *SQLiteAssessmentRepo) Create(ctx context.Context, rec *domain.AssessmentRecord) error {
	weak, err := encodeStrings(rec.Result.WeakDomains)
	if err != nil {
		return err
	}
	recs, err := encodeStrings(rec.Result.Recommendations)
	if err != nil {
		return err
	}

	query := `INSERT INTO assessments (id, taken_at, total_score, max_score, category,
		weak_domains, recommendations, recommendation_error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TakenAt.UTC().Format(timeLayout),
		rec.Result.TotalScore,
		rec.MaxScore,
		string(rec.Result.Category),
		weak,
		recs,
		rec.RecommendationError,
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting assessment: %w", err)
	}

	for qid, value := range rec.Responses {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO assessment_responses (assessment_id, question_id, value) VALUES (?, ?, ?)`,
			rec.ID, qid, value)
		if err != nil {
			return fmt.Errorf("inserting response %d: %w", qid, err)
		}
	}
	return nil
}

const selectAssessment = `SELECT id, taken_at, total_score, max_score, category,
	weak_domains, recommendations, recommendation_error, created_at
	FROM assessments`

func (r *SQLiteAssessmentRepo) GetByID(ctx context.Context, id string) (*domain.AssessmentRecord, error) {
	row := r.db.QueryRowContext(ctx, selectAssessment+` WHERE id = ?`, id)
	rec, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("assessment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadResponses(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteAssessmentRepo) ListRecent(ctx context.Context, limit int) ([]*domain.AssessmentRecord, error) {
	query := selectAssessment + ` ORDER BY taken_at DESC, created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	var records []*domain.AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating assessments: %w", err)
	}
	// Close before loading responses; an in-memory database has a single
	// connection.
	rows.Close()

	for _, rec := range records {
		if err := r.loadResponses(ctx, rec); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *SQLiteAssessmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting assessment: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assessment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssessmentRepo) loadResponses(ctx context.Context, rec *domain.AssessmentRecord) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT question_id, value FROM assessment_responses WHERE assessment_id = ? ORDER BY question_id`, rec.ID)
	if err != nil {
		return fmt.Errorf("loading responses: %w", err)
	}
	defer rows.Close()

	rec.Responses = domain.ResponseMap{}
	for rows.Next() {
		var qid, value int
		if err := rows.Scan(&qid, &value); err != nil {
			return fmt.Errorf("scanning response: %w", err)
		}
		rec.Responses[qid] = value
	}
	return rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*domain.AssessmentRecord, error) {
	var (
		rec                      domain.AssessmentRecord
		takenAt, createdAt       string
		category, weak, recsJSON string
	)
	err := row.Scan(
		&rec.ID, &takenAt, &rec.Result.TotalScore, &rec.MaxScore, &category,
		&weak, &recsJSON, &rec.RecommendationError, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning assessment: %w", err)
	}

	rec.Result.Category = domain.Category(category)
	if rec.TakenAt, err = parseTime(takenAt); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if rec.Result.WeakDomains, err = decodeStrings(weak); err != nil {
		return nil, err
	}
	if rec.Result.Recommendations, err = decodeStrings(recsJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}
