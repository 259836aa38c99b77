package repository

import (
	"context"

	"github.com/alexanderramin/lifestyle/internal/domain"
)

// AssessmentRepo stores completed assessments with their responses.
type AssessmentRepo interface {
	Create(ctx context.Context, rec *domain.AssessmentRecord) error
	GetByID(ctx context.Context, id string) (*domain.AssessmentRecord, error)
	// ListRecent returns up to limit records, newest first. limit <= 0
	// returns all records.
	ListRecent(ctx context.Context, limit int) ([]*domain.AssessmentRecord, error)
	Delete(ctx context.Context, id string) error
}
