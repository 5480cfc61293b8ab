package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

// PlatformTotal is one group of the verified-donation breakdown.
type PlatformTotal struct {
	Platform string  `json:"platform"`
	Amount   float64 `json:"amount"`
	Count    int64   `json:"count"`
}

// DonationWindow filters verified donations to donation_date >= Since,
// optionally restricted to families in Region.
type DonationWindow struct {
	Region string
	Since  time.Time
}

type DonationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, donations []*domain.ExternalDonation) ([]*domain.ExternalDonation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) ([]*domain.ExternalDonation, error)
	SetVerified(ctx context.Context, tx *gorm.DB, donationID uuid.UUID, isVerified bool) error
	ListByFamilyCode(ctx context.Context, tx *gorm.DB, familyCode string, verifiedOnly bool) ([]*domain.ExternalDonation, error)
	ListByDonorIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.ExternalDonation, error)
	ListRecentVerified(ctx context.Context, tx *gorm.DB, window DonationWindow, take int) ([]*domain.ExternalDonation, error)
	PlatformTotals(ctx context.Context, tx *gorm.DB, window DonationWindow) ([]PlatformTotal, error)
	TotalsVerified(ctx context.Context, tx *gorm.DB, window DonationWindow) (float64, int64, error)
	CountAllVerified(ctx context.Context, tx *gorm.DB) (int64, error)
	SumAllVerified(ctx context.Context, tx *gorm.DB) (float64, error)
}

type donationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonationRepo(db *gorm.DB, baseLog *logger.Logger) DonationRepo {
	repoLog := baseLog.With("repo", "DonationRepo")
	return &donationRepo{db: db, log: repoLog}
}

func (dr *donationRepo) Create(ctx context.Context, tx *gorm.DB, donations []*domain.ExternalDonation) ([]*domain.ExternalDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(donations) == 0 {
		return []*domain.ExternalDonation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (dr *donationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) ([]*domain.ExternalDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*domain.ExternalDonation
	if len(donationIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", donationIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SetVerified flips the single mutable field of the ledger. Concurrent
// writers get last-write-wins from the store.
func (dr *donationRepo) SetVerified(ctx context.Context, tx *gorm.DB, donationID uuid.UUID, isVerified bool) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.ExternalDonation{}).
		Where("id = ?", donationID).
		Update("is_verified", isVerified).Error
}

func (dr *donationRepo) ListByFamilyCode(ctx context.Context, tx *gorm.DB, familyCode string, verifiedOnly bool) ([]*domain.ExternalDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	query := transaction.WithContext(ctx).
		Where("family_code = ?", familyCode).
		Order("donation_date DESC")
	if verifiedOnly {
		query = query.Where("is_verified = ?", true)
	}

	var results []*domain.ExternalDonation
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donationRepo) ListByDonorIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.ExternalDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*domain.ExternalDonation
	if len(donorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("donor_id IN ?", donorIDs).
		Order("donation_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donationRepo) ListRecentVerified(ctx context.Context, tx *gorm.DB, window DonationWindow, take int) ([]*domain.ExternalDonation, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	query := dr.applyWindow(transaction.WithContext(ctx).Model(&domain.ExternalDonation{}), window).
		Order("donation_date DESC")
	if take > 0 {
		query = query.Limit(take)
	}

	var results []*domain.ExternalDonation
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donationRepo) PlatformTotals(ctx context.Context, tx *gorm.DB, window DonationWindow) ([]PlatformTotal, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []PlatformTotal
	if err := dr.applyWindow(transaction.WithContext(ctx).Model(&domain.ExternalDonation{}), window).
		Select("external_donation.platform AS platform, COALESCE(SUM(external_donation.amount), 0) AS amount, COUNT(external_donation.id) AS count").
		Group("external_donation.platform").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donationRepo) TotalsVerified(ctx context.Context, tx *gorm.DB, window DonationWindow) (float64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var row struct {
		Amount float64
		Count  int64
	}
	if err := dr.applyWindow(transaction.WithContext(ctx).Model(&domain.ExternalDonation{}), window).
		Select("COALESCE(SUM(external_donation.amount), 0) AS amount, COUNT(external_donation.id) AS count").
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Amount, row.Count, nil
}

func (dr *donationRepo) CountAllVerified(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.ExternalDonation{}).
		Where("is_verified = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *donationRepo) SumAllVerified(ctx context.Context, tx *gorm.DB) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var sum float64
	if err := transaction.WithContext(ctx).
		Model(&domain.ExternalDonation{}).
		Where("is_verified = ?", true).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

func (dr *donationRepo) applyWindow(query *gorm.DB, window DonationWindow) *gorm.DB {
	query = query.Where("external_donation.is_verified = ?", true).
		Where("external_donation.donation_date >= ?", window.Since)
	if window.Region != "" {
		query = query.
			Joins("JOIN family ON family.family_code = external_donation.family_code").
			Where("family.region = ?", window.Region)
	}
	return query
}
