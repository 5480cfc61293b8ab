package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

// priorityOrder ranks the priority enum for listings (HIGH first).
const priorityOrder = `CASE priority_level WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END DESC, created_at DESC`

type FamilyListFilter struct {
	Region             string
	VerificationStatus domain.VerificationStatus
	PriorityLevel      domain.PriorityLevel
	ActiveOnly         bool
}

type FamilyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, families []*domain.Family) ([]*domain.Family, error)
	GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error)
	GetByCodesWithDetails(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Family, error)
	CodeExists(ctx context.Context, tx *gorm.DB, familyCode string) (bool, error)
	List(ctx context.Context, tx *gorm.DB, filter FamilyListFilter, skip, take int) ([]*domain.Family, error)
	Count(ctx context.Context, tx *gorm.DB, filter FamilyListFilter) (int64, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, status domain.VerificationStatus) (int64, error)
	UpdateVerification(ctx context.Context, tx *gorm.DB, familyCode string, status domain.VerificationStatus, adminID uuid.UUID) error
	ListActiveByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error)
	ListVerifiedByRegions(ctx context.Context, tx *gorm.DB, regions []string, take int) ([]*domain.Family, error)
}

type familyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyRepo(db *gorm.DB, baseLog *logger.Logger) FamilyRepo {
	repoLog := baseLog.With("repo", "FamilyRepo")
	return &familyRepo{db: db, log: repoLog}
}

func (fr *familyRepo) Create(ctx context.Context, tx *gorm.DB, families []*domain.Family) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	if len(families) == 0 {
		return []*domain.Family{}, nil
	}

	if err := transaction.WithContext(ctx).
		Omit("Needs", "Donations").
		Create(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (fr *familyRepo) GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Family
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

// GetByCodesWithDetails preloads every need and the verified donations,
// newest donation first, for the public family page.
func (fr *familyRepo) GetByCodesWithDetails(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Family
	if len(familyCodes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Needs").
		Preload("Donations", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_verified = ?", true).Order("donation_date DESC")
		}).
		Where("family_code IN ?", familyCodes).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Family
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyRepo) CodeExists(ctx context.Context, tx *gorm.DB, familyCode string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Family{}).
		Where("family_code = ?", familyCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns families with their unfulfilled needs and verified donations
// preloaded, highest priority first.
func (fr *familyRepo) List(ctx context.Context, tx *gorm.DB, filter FamilyListFilter, skip, take int) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	query := fr.applyFilter(transaction.WithContext(ctx).Model(&domain.Family{}), filter).
		Preload("Needs", "is_fulfilled = ?", false).
		Preload("Donations", "is_verified = ?", true).
		Order(priorityOrder)
	if skip > 0 {
		query = query.Offset(skip)
	}
	if take > 0 {
		query = query.Limit(take)
	}

	var results []*domain.Family
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyRepo) Count(ctx context.Context, tx *gorm.DB, filter FamilyListFilter) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := fr.applyFilter(transaction.WithContext(ctx).Model(&domain.Family{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *familyRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status domain.VerificationStatus) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Family{}).
		Where("verification_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *familyRepo) UpdateVerification(ctx context.Context, tx *gorm.DB, familyCode string, status domain.VerificationStatus, adminID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.Family{}).
		Where("family_code = ?", familyCode).
		Updates(map[string]interface{}{
			"verification_status":  status,
			"verified_by_admin_id": adminID,
		}).Error
}

// ListActiveByCodes keeps the favorites view to active families only.
func (fr *familyRepo) ListActiveByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Family
	if len(familyCodes) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Needs", "is_fulfilled = ?", false).
		Preload("Donations", "is_verified = ?", true).
		Where("family_code IN ? AND is_active = ?", familyCodes, true).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyRepo) ListVerifiedByRegions(ctx context.Context, tx *gorm.DB, regions []string, take int) ([]*domain.Family, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}

	var results []*domain.Family
	if len(regions) == 0 {
		return results, nil
	}

	query := transaction.WithContext(ctx).
		Preload("Needs", "is_fulfilled = ?", false).
		Where("region IN ? AND verification_status = ? AND is_active = ?", regions, domain.VerificationVerified, true).
		Order(priorityOrder)
	if take > 0 {
		query = query.Limit(take)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *familyRepo) applyFilter(query *gorm.DB, filter FamilyListFilter) *gorm.DB {
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.VerificationStatus != "" {
		query = query.Where("verification_status = ?", filter.VerificationStatus)
	}
	if filter.PriorityLevel != "" {
		query = query.Where("priority_level = ?", filter.PriorityLevel)
	}
	return query
}
