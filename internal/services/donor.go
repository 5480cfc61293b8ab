package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

type DonorListParams struct {
	Country string
	Region  string
	Page    int
	Limit   int
}

type DonorListResult struct {
	Donors     []*domain.Donor `json:"donors"`
	Pagination Pagination      `json:"pagination"`
}

// DonorStats separates verified giving from pending entries: total and the
// distinct family count cover verified donations only.
type DonorStats struct {
	TotalDonated      float64 `json:"totalDonated"`
	FamiliesSupported int     `json:"familiesSupported"`
	PendingDonations  int     `json:"pendingDonations"`
}

type DonorDetail struct {
	Donor     *domain.Donor              `json:"donor"`
	Donations []*domain.ExternalDonation `json:"donations"`
	Stats     DonorStats                 `json:"stats"`
}

type DonorDashboard struct {
	Donor             *domain.Donor              `json:"donor"`
	Stats             DonorStats                 `json:"stats"`
	RecentDonations   []*domain.ExternalDonation `json:"recentDonations"`
	SuggestedFamilies []*domain.Family           `json:"suggestedFamilies"`
}

// UpdateDonorProfileInput uses pointers so absent fields are left untouched.
type UpdateDonorProfileInput struct {
	Name             *string
	Country          *string
	PreferredRegions *[]string
}

type DonorService interface {
	List(ctx context.Context, params DonorListParams) (*DonorListResult, error)
	GetByID(ctx context.Context, donorID string) (*DonorDetail, error)
	UpdateProfile(ctx context.Context, input UpdateDonorProfileInput) (*domain.Donor, error)
	Dashboard(ctx context.Context) (*DonorDashboard, error)
	ListFavorites(ctx context.Context) ([]*domain.Family, error)
	AddFavorite(ctx context.Context, familyCode string) ([]string, error)
	RemoveFavorite(ctx context.Context, familyCode string) ([]string, error)
}

type donorService struct {
	db           *gorm.DB
	log          *logger.Logger
	donorRepo    repos.DonorRepo
	donationRepo repos.DonationRepo
	familyRepo   repos.FamilyRepo
}

func NewDonorService(
	db *gorm.DB,
	log *logger.Logger,
	donorRepo repos.DonorRepo,
	donationRepo repos.DonationRepo,
	familyRepo repos.FamilyRepo,
) DonorService {
	serviceLog := log.With("service", "DonorService")
	return &donorService{
		db:           db,
		log:          serviceLog,
		donorRepo:    donorRepo,
		donationRepo: donationRepo,
		familyRepo:   familyRepo,
	}
}

func (ds *donorService) List(ctx context.Context, params DonorListParams) (*DonorListResult, error) {
	filter := repos.DonorListFilter{
		Country: params.Country,
		Region:  params.Region,
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	donors, err := ds.donorRepo.List(ctx, nil, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list donors: %w", err)
	}
	total, err := ds.donorRepo.Count(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count donors: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &DonorListResult{
		Donors: donors,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

func (ds *donorService) GetByID(ctx context.Context, donorID string) (*DonorDetail, error) {
	id, err := uuid.Parse(donorID)
	if err != nil {
		return nil, fmt.Errorf("invalid donor id: %w", pkgErrors.ErrInvalidArgument)
	}

	donors, err := ds.donorRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donor: %w", err)
	}
	if len(donors) == 0 {
		return nil, fmt.Errorf("donor not found: %w", pkgErrors.ErrNotFound)
	}
	donor := donors[0]

	donations, err := ds.donationRepo.ListByDonorIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to list donor donations: %w", err)
	}

	return &DonorDetail{
		Donor:     donor,
		Donations: donations,
		Stats:     computeDonorStats(donations),
	}, nil
}

func (ds *donorService) UpdateProfile(ctx context.Context, input UpdateDonorProfileInput) (*domain.Donor, error) {
	donor, err := ds.currentDonor(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		donor.Name = *input.Name
	}
	if input.Country != nil {
		donor.Country = *input.Country
	}
	if input.PreferredRegions != nil {
		donor.PreferredRegions = *input.PreferredRegions
	}

	if err := ds.donorRepo.Update(ctx, nil, donor); err != nil {
		return nil, fmt.Errorf("failed to update donor profile: %w", err)
	}
	return donor, nil
}

// Dashboard assembles the donor home view: profile, giving stats, the five
// most recent verified donations, and up to ten verified families in the
// donor's preferred regions ordered by priority.
func (ds *donorService) Dashboard(ctx context.Context) (*DonorDashboard, error) {
	donor, err := ds.currentDonor(ctx)
	if err != nil {
		return nil, err
	}

	donations, err := ds.donationRepo.ListByDonorIDs(ctx, nil, []uuid.UUID{donor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list donor donations: %w", err)
	}

	recent := make([]*domain.ExternalDonation, 0, 5)
	for _, donation := range donations {
		if !donation.IsVerified {
			continue
		}
		recent = append(recent, donation)
		if len(recent) == 5 {
			break
		}
	}

	suggested, err := ds.familyRepo.ListVerifiedByRegions(ctx, nil, donor.PreferredRegions, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggested families: %w", err)
	}

	return &DonorDashboard{
		Donor:             donor,
		Stats:             computeDonorStats(donations),
		RecentDonations:   recent,
		SuggestedFamilies: suggested,
	}, nil
}

func (ds *donorService) ListFavorites(ctx context.Context) ([]*domain.Family, error) {
	donor, err := ds.currentDonor(ctx)
	if err != nil {
		return nil, err
	}
	families, err := ds.familyRepo.ListActiveByCodes(ctx, nil, donor.FavoriteFamilies)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite families: %w", err)
	}
	return families, nil
}

// AddFavorite rejects duplicates so the stored list stays a set.
func (ds *donorService) AddFavorite(ctx context.Context, familyCode string) ([]string, error) {
	donor, err := ds.currentDonor(ctx)
	if err != nil {
		return nil, err
	}

	codeExists, err := ds.familyRepo.CodeExists(ctx, nil, familyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check family code: %w", err)
	}
	if !codeExists {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}
	for _, code := range donor.FavoriteFamilies {
		if code == familyCode {
			return nil, fmt.Errorf("family already in favorites: %w", pkgErrors.ErrDuplicate)
		}
	}

	donor.FavoriteFamilies = append(donor.FavoriteFamilies, familyCode)
	if err := ds.donorRepo.Update(ctx, nil, donor); err != nil {
		return nil, fmt.Errorf("failed to update favorites: %w", err)
	}
	return donor.FavoriteFamilies, nil
}

// RemoveFavorite is a no-op success when the code is absent.
func (ds *donorService) RemoveFavorite(ctx context.Context, familyCode string) ([]string, error) {
	donor, err := ds.currentDonor(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]string, 0, len(donor.FavoriteFamilies))
	for _, code := range donor.FavoriteFamilies {
		if code != familyCode {
			kept = append(kept, code)
		}
	}
	donor.FavoriteFamilies = kept

	if err := ds.donorRepo.Update(ctx, nil, donor); err != nil {
		return nil, fmt.Errorf("failed to update favorites: %w", err)
	}
	return donor.FavoriteFamilies, nil
}

func (ds *donorService) currentDonor(ctx context.Context) (*domain.Donor, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("no donor profile in context: %w", pkgErrors.ErrUnauthorized)
	}
	donors, err := ds.donorRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.ProfileID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donor: %w", err)
	}
	if len(donors) == 0 {
		return nil, fmt.Errorf("donor profile not found: %w", pkgErrors.ErrNotFound)
	}
	return donors[0], nil
}

func computeDonorStats(donations []*domain.ExternalDonation) DonorStats {
	stats := DonorStats{}
	families := map[string]struct{}{}
	for _, donation := range donations {
		if donation.IsVerified {
			stats.TotalDonated += donation.Amount
			families[donation.FamilyCode] = struct{}{}
		} else {
			stats.PendingDonations++
		}
	}
	stats.FamiliesSupported = len(families)
	return stats
}
