package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

type AdminRepo interface {
	Create(ctx context.Context, tx *gorm.DB, admins []*domain.Admin) ([]*domain.Admin, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, adminEmails []string) ([]*domain.Admin, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type adminRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminRepo(db *gorm.DB, baseLog *logger.Logger) AdminRepo {
	repoLog := baseLog.With("repo", "AdminRepo")
	return &adminRepo{db: db, log: repoLog}
}

func (ar *adminRepo) Create(ctx context.Context, tx *gorm.DB, admins []*domain.Admin) ([]*domain.Admin, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(admins) == 0 {
		return []*domain.Admin{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (ar *adminRepo) GetByEmails(ctx context.Context, tx *gorm.DB, adminEmails []string) ([]*domain.Admin, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*domain.Admin
	if len(adminEmails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", adminEmails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Count backs the first-admin bootstrap. The count-then-create sequence is a
// known race under concurrent first registrations; the store's uniqueness
// constraints do not cover it.
func (ar *adminRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Admin{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
