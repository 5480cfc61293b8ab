package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

type CreateNeedInput struct {
	FamilyCode    string
	Category      string
	Title         string
	Description   string
	EstimatedCost *float64
	Priority      string
}

type NeedService interface {
	List(ctx context.Context, familyCode string, unfulfilledOnly bool) ([]*domain.FamilyNeed, error)
	Create(ctx context.Context, input CreateNeedInput) (*domain.FamilyNeed, error)
	Fulfill(ctx context.Context, needID string) (*domain.FamilyNeed, error)
}

type needService struct {
	db         *gorm.DB
	log        *logger.Logger
	needRepo   repos.NeedRepo
	familyRepo repos.FamilyRepo
}

func NewNeedService(
	db *gorm.DB,
	log *logger.Logger,
	needRepo repos.NeedRepo,
	familyRepo repos.FamilyRepo,
) NeedService {
	serviceLog := log.With("service", "NeedService")
	return &needService{
		db:         db,
		log:        serviceLog,
		needRepo:   needRepo,
		familyRepo: familyRepo,
	}
}

func (ns *needService) List(ctx context.Context, familyCode string, unfulfilledOnly bool) ([]*domain.FamilyNeed, error) {
	needs, err := ns.needRepo.List(ctx, nil, repos.NeedListFilter{
		FamilyCode:      familyCode,
		UnfulfilledOnly: unfulfilledOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list needs: %w", err)
	}
	return needs, nil
}

func (ns *needService) Create(ctx context.Context, input CreateNeedInput) (*domain.FamilyNeed, error) {
	if input.FamilyCode == "" || input.Category == "" || input.Title == "" {
		return nil, fmt.Errorf("familyCode, category and title are required: %w", pkgErrors.ErrInvalidArgument)
	}
	if input.EstimatedCost != nil && *input.EstimatedCost < 0 {
		return nil, fmt.Errorf("estimated cost must not be negative: %w", pkgErrors.ErrInvalidArgument)
	}

	priority := domain.PriorityMedium
	if input.Priority != "" {
		parsed, err := domain.ParsePriorityLevel(input.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	codeExists, err := ns.familyRepo.CodeExists(ctx, nil, input.FamilyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check family code: %w", err)
	}
	if !codeExists {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}

	need := &domain.FamilyNeed{
		ID:            uuid.New(),
		FamilyCode:    input.FamilyCode,
		Category:      input.Category,
		Title:         input.Title,
		Description:   input.Description,
		EstimatedCost: input.EstimatedCost,
		Priority:      priority,
		IsFulfilled:   false,
	}
	if _, err := ns.needRepo.Create(ctx, nil, []*domain.FamilyNeed{need}); err != nil {
		return nil, fmt.Errorf("failed to create need: %w", err)
	}
	return need, nil
}

// Fulfill flips a need to fulfilled. Fulfilling an already fulfilled need is
// a success and changes nothing.
func (ns *needService) Fulfill(ctx context.Context, needID string) (*domain.FamilyNeed, error) {
	id, err := uuid.Parse(needID)
	if err != nil {
		return nil, fmt.Errorf("invalid need id: %w", pkgErrors.ErrInvalidArgument)
	}

	needs, err := ns.needRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch need: %w", err)
	}
	if len(needs) == 0 {
		return nil, fmt.Errorf("need not found: %w", pkgErrors.ErrNotFound)
	}
	need := needs[0]

	if !need.IsFulfilled {
		if err := ns.needRepo.MarkFulfilled(ctx, nil, id); err != nil {
			return nil, fmt.Errorf("failed to mark need fulfilled: %w", err)
		}
		need.IsFulfilled = true
	}
	return need, nil
}
