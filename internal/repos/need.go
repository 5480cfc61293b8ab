package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

type NeedListFilter struct {
	FamilyCode      string
	UnfulfilledOnly bool
}

type NeedRepo interface {
	Create(ctx context.Context, tx *gorm.DB, needs []*domain.FamilyNeed) ([]*domain.FamilyNeed, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, needIDs []uuid.UUID) ([]*domain.FamilyNeed, error)
	List(ctx context.Context, tx *gorm.DB, filter NeedListFilter) ([]*domain.FamilyNeed, error)
	MarkFulfilled(ctx context.Context, tx *gorm.DB, needID uuid.UUID) error
	CountByFulfillment(ctx context.Context, tx *gorm.DB, fulfilled bool) (int64, error)
}

type needRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNeedRepo(db *gorm.DB, baseLog *logger.Logger) NeedRepo {
	repoLog := baseLog.With("repo", "NeedRepo")
	return &needRepo{db: db, log: repoLog}
}

func (nr *needRepo) Create(ctx context.Context, tx *gorm.DB, needs []*domain.FamilyNeed) ([]*domain.FamilyNeed, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	if len(needs) == 0 {
		return []*domain.FamilyNeed{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&needs).Error; err != nil {
		return nil, err
	}
	return needs, nil
}

func (nr *needRepo) GetByIDs(ctx context.Context, tx *gorm.DB, needIDs []uuid.UUID) ([]*domain.FamilyNeed, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var results []*domain.FamilyNeed
	if len(needIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", needIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (nr *needRepo) List(ctx context.Context, tx *gorm.DB, filter NeedListFilter) ([]*domain.FamilyNeed, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	query := transaction.WithContext(ctx).Order("created_at DESC")
	if filter.FamilyCode != "" {
		query = query.Where("family_code = ?", filter.FamilyCode)
	}
	if filter.UnfulfilledOnly {
		query = query.Where("is_fulfilled = ?", false)
	}

	var results []*domain.FamilyNeed
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// MarkFulfilled only flips false -> true; fulfilling an already fulfilled
// need leaves the row untouched.
func (nr *needRepo) MarkFulfilled(ctx context.Context, tx *gorm.DB, needID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.FamilyNeed{}).
		Where("id = ? AND is_fulfilled = ?", needID, false).
		Update("is_fulfilled", true).Error
}

func (nr *needRepo) CountByFulfillment(ctx context.Context, tx *gorm.DB, fulfilled bool) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = nr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.FamilyNeed{}).
		Where("is_fulfilled = ?", fulfilled).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
