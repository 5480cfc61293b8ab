package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

// SecureFamilyRepo is the sensitive-data vault. It carries no authorization
// logic of its own; the transport layer restricts its read paths to
// administrators.
type SecureFamilyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*domain.SecureFamilyData) ([]*domain.SecureFamilyData, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.SecureFamilyData, error)
	StampVerification(ctx context.Context, tx *gorm.DB, familyCode string, adminID uuid.UUID, at time.Time) error
}

type secureFamilyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSecureFamilyRepo(db *gorm.DB, baseLog *logger.Logger) SecureFamilyRepo {
	repoLog := baseLog.With("repo", "SecureFamilyRepo")
	return &secureFamilyRepo{db: db, log: repoLog}
}

func (sr *secureFamilyRepo) Create(ctx context.Context, tx *gorm.DB, records []*domain.SecureFamilyData) ([]*domain.SecureFamilyData, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(records) == 0 {
		return []*domain.SecureFamilyData{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (sr *secureFamilyRepo) GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.SecureFamilyData, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*domain.SecureFamilyData
	if len(familyCodes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("family_code IN ?", familyCodes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// StampVerification overwrites the verifier fields; re-stamping an already
// stamped record is allowed and simply records the latest decision.
func (sr *secureFamilyRepo) StampVerification(ctx context.Context, tx *gorm.DB, familyCode string, adminID uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.SecureFamilyData{}).
		Where("family_code = ?", familyCode).
		Updates(map[string]interface{}{
			"verified_by": adminID,
			"verified_at": at,
		}).Error
}
