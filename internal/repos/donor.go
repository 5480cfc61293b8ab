package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

// DonorListFilter narrows admin donor listings. Region matches donors whose
// preferred_regions JSON array contains the code.
type DonorListFilter struct {
	Country string
	Region  string
}

type DonorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, donors []*domain.Donor) ([]*domain.Donor, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.Donor, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Donor, error)
	Update(ctx context.Context, tx *gorm.DB, donor *domain.Donor) error
	List(ctx context.Context, tx *gorm.DB, filter DonorListFilter, skip, take int) ([]*domain.Donor, error)
	Count(ctx context.Context, tx *gorm.DB, filter DonorListFilter) (int64, error)
}

type donorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDonorRepo(db *gorm.DB, baseLog *logger.Logger) DonorRepo {
	repoLog := baseLog.With("repo", "DonorRepo")
	return &donorRepo{db: db, log: repoLog}
}

func (dr *donorRepo) Create(ctx context.Context, tx *gorm.DB, donors []*domain.Donor) ([]*domain.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(donors) == 0 {
		return []*domain.Donor{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&donors).Error; err != nil {
		return nil, err
	}
	return donors, nil
}

func (dr *donorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*domain.Donor
	if len(donorIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("User").
		Where("id IN ?", donorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donorRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*domain.Donor
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

func (dr *donorRepo) Update(ctx context.Context, tx *gorm.DB, donor *domain.Donor) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).
		Model(&domain.Donor{}).
		Where("id = ?", donor.ID).
		Updates(map[string]interface{}{
			"name":              donor.Name,
			"country":           donor.Country,
			"preferred_regions": donor.PreferredRegions,
			"favorite_families": donor.FavoriteFamilies,
		}).Error
}

func (dr *donorRepo) List(ctx context.Context, tx *gorm.DB, filter DonorListFilter, skip, take int) ([]*domain.Donor, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	query := dr.applyFilter(transaction.WithContext(ctx).Model(&domain.Donor{}), filter).
		Preload("User").
		Order("joined_at DESC")
	if skip > 0 {
		query = query.Offset(skip)
	}
	if take > 0 {
		query = query.Limit(take)
	}

	var results []*domain.Donor
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *donorRepo) Count(ctx context.Context, tx *gorm.DB, filter DonorListFilter) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := dr.applyFilter(transaction.WithContext(ctx).Model(&domain.Donor{}), filter).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (dr *donorRepo) applyFilter(query *gorm.DB, filter DonorListFilter) *gorm.DB {
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Region != "" {
		query = query.Where(datatypes.JSONArrayQuery("preferred_regions").Contains(filter.Region))
	}
	return query
}
