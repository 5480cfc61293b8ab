package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

// RecordDonationInput is the ledger append payload. Amount is left untyped
// because clients send it both as a number and as a string.
type RecordDonationInput struct {
	FamilyCode   string
	Platform     string
	ExternalLink string
	DonorName    string
	Amount       interface{}
	Currency     string
	DonationDate *time.Time
}

// DonationSummary reduces a family's ledger: total and count cover verified
// entries only, pending counts the unverified ones. The currency is taken
// from the first entry (mixed-currency ledgers are summed as-is).
type DonationSummary struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Count    int     `json:"count"`
	Pending  int     `json:"pending"`
}

type FamilyDonationsResult struct {
	Donations []*domain.ExternalDonation `json:"donations"`
	Summary   DonationSummary            `json:"summary"`
}

type DonationService interface {
	Record(ctx context.Context, input RecordDonationInput) (*domain.ExternalDonation, error)
	SetVerification(ctx context.Context, donationID string, isVerified bool) (*domain.ExternalDonation, error)
	ListForFamily(ctx context.Context, familyCode string, includeUnverified bool) (*FamilyDonationsResult, error)
}

type donationService struct {
	db           *gorm.DB
	log          *logger.Logger
	donationRepo repos.DonationRepo
	familyRepo   repos.FamilyRepo
}

func NewDonationService(
	db *gorm.DB,
	log *logger.Logger,
	donationRepo repos.DonationRepo,
	familyRepo repos.FamilyRepo,
) DonationService {
	serviceLog := log.With("service", "DonationService")
	return &donationService{
		db:           db,
		log:          serviceLog,
		donationRepo: donationRepo,
		familyRepo:   familyRepo,
	}
}

// Record appends an unverified entry to the ledger. When the caller is a
// donor their profile id is attached so the donation shows up in their
// history once verified.
func (ds *donationService) Record(ctx context.Context, input RecordDonationInput) (*domain.ExternalDonation, error) {
	if input.FamilyCode == "" || input.Platform == "" {
		return nil, fmt.Errorf("familyCode and platform are required: %w", pkgErrors.ErrInvalidArgument)
	}
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	codeExists, err := ds.familyRepo.CodeExists(ctx, nil, input.FamilyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check family code: %w", err)
	}
	if !codeExists {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	donationDate := time.Now()
	if input.DonationDate != nil {
		donationDate = *input.DonationDate
	}

	donation := &domain.ExternalDonation{
		ID:           uuid.New(),
		FamilyCode:   input.FamilyCode,
		Platform:     input.Platform,
		ExternalLink: input.ExternalLink,
		DonorName:    input.DonorName,
		Amount:       amount,
		Currency:     currency,
		DonationDate: donationDate,
		IsVerified:   false,
	}
	if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.Role == domain.RoleDonor && rd.ProfileID != uuid.Nil {
		donorID := rd.ProfileID
		donation.DonorID = &donorID
	}

	if _, err := ds.donationRepo.Create(ctx, nil, []*domain.ExternalDonation{donation}); err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}
	return donation, nil
}

// SetVerification toggles the verified flag. Both directions are allowed;
// concurrent toggles resolve to whichever write lands last.
func (ds *donationService) SetVerification(ctx context.Context, donationID string, isVerified bool) (*domain.ExternalDonation, error) {
	id, err := uuid.Parse(donationID)
	if err != nil {
		return nil, fmt.Errorf("invalid donation id: %w", pkgErrors.ErrInvalidArgument)
	}

	donations, err := ds.donationRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donation: %w", err)
	}
	if len(donations) == 0 {
		return nil, fmt.Errorf("donation not found: %w", pkgErrors.ErrNotFound)
	}
	donation := donations[0]

	if err := ds.donationRepo.SetVerified(ctx, nil, id, isVerified); err != nil {
		return nil, fmt.Errorf("failed to update donation verification: %w", err)
	}
	donation.IsVerified = isVerified
	return donation, nil
}

// ListForFamily returns the family ledger newest-first. Unverified entries
// are hidden unless includeUnverified is set, but the summary always counts
// them as pending.
func (ds *donationService) ListForFamily(ctx context.Context, familyCode string, includeUnverified bool) (*FamilyDonationsResult, error) {
	codeExists, err := ds.familyRepo.CodeExists(ctx, nil, familyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check family code: %w", err)
	}
	if !codeExists {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}

	all, err := ds.donationRepo.ListByFamilyCode(ctx, nil, familyCode, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	summary := SummarizeDonations(all)
	visible := all
	if !includeUnverified {
		visible = make([]*domain.ExternalDonation, 0, len(all))
		for _, donation := range all {
			if donation.IsVerified {
				visible = append(visible, donation)
			}
		}
	}
	return &FamilyDonationsResult{Donations: visible, Summary: summary}, nil
}

// SummarizeDonations reduces a ledger slice into its summary.
func SummarizeDonations(donations []*domain.ExternalDonation) DonationSummary {
	summary := DonationSummary{Currency: "USD"}
	if len(donations) > 0 {
		summary.Currency = donations[0].Currency
	}
	for _, donation := range donations {
		if donation.IsVerified {
			summary.Total += donation.Amount
			summary.Count++
		} else {
			summary.Pending++
		}
	}
	return summary
}

func parseAmount(raw interface{}) (float64, error) {
	var (
		amount float64
		err    error
	)
	switch v := raw.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case json.Number:
		amount, err = v.Float64()
	case string:
		amount, err = strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("a numeric amount is required: %w", pkgErrors.ErrInvalidArgument)
	}
	if err != nil {
		return 0, fmt.Errorf("a numeric amount is required: %w", pkgErrors.ErrInvalidArgument)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be greater than zero: %w", pkgErrors.ErrInvalidArgument)
	}
	return amount, nil
}
