package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/lifestyle/internal/db"
	"github.com/alexanderramin/lifestyle/internal/domain"
	"github.com/alexanderramin/lifestyle/internal/repository"
	"github.com/google/uuid"
)

type historyService struct {
	assessments repository.AssessmentRepo
	uow         db.UnitOfWork
	observer    UseCaseObserver
}

func NewHistoryService(assessments repository.AssessmentRepo, uow db.UnitOfWork, observers ...UseCaseObserver) HistoryService {
	return &historyService{
		assessments: assessments,
		uow:         uow,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *historyService) Record(ctx context.Context, rec *domain.AssessmentRecord) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-assessment",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if !domain.ValidCategories[rec.Result.Category] {
		return fmt.Errorf("recording assessment: invalid category %q", rec.Result.Category)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if rec.TakenAt.IsZero() {
		rec.TakenAt = now
	}
	rec.CreatedAt = now
	fields["assessment_id"] = rec.ID
	fields["score"] = rec.Result.TotalScore
	fields["weak_domains"] = len(rec.Result.WeakDomains)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteAssessmentRepo(tx).Create(ctx, rec)
	})
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.AssessmentRecord, error) {
	return s.assessments.GetByID(ctx, id)
}

func (s *historyService) List(ctx context.Context, limit int) ([]*domain.AssessmentRecord, error) {
	return s.assessments.ListRecent(ctx, limit)
}

func (s *historyService) WeakDomainTrend(ctx context.Context, limit int) ([]domain.DomainCount, error) {
	records, err := s.assessments.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, rec := range records {
		for _, d := range rec.Result.WeakDomains {
			counts[d]++
		}
	}

	trend := make([]domain.DomainCount, 0, len(counts))
	for d, n := range counts {
		trend = append(trend, domain.DomainCount{Domain: d, Count: n})
	}
	sort.Slice(trend, func(i, j int) bool {
		if trend[i].Count != trend[j].Count {
			return trend[i].Count > trend[j].Count
		}
		return trend[i].Domain < trend[j].Domain
	})
	return trend, nil
}
