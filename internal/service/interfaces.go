package service

import (
	"context"

	"github.com/alexanderramin/lifestyle/internal/domain"
)

// HistoryService keeps completed assessments.
type HistoryService interface {
	// Record stores rec, assigning its ID and timestamps when unset.
	Record(ctx context.Context, rec *domain.AssessmentRecord) error
	Get(ctx context.Context, id string) (*domain.AssessmentRecord, error)
	List(ctx context.Context, limit int) ([]*domain.AssessmentRecord, error)
	// WeakDomainTrend counts weak domains over the last limit records,
	// most frequent first, ties by name.
	WeakDomainTrend(ctx context.Context, limit int) ([]domain.DomainCount, error)
}
