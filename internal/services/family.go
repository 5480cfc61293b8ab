package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

// FamilyListParams are the public listing filters. Status and Priority are
// raw query values, validated here.
type FamilyListParams struct {
	Region   string
	Status   string
	Priority string
	Page     int
	Limit    int
}

// Pagination is the shared list envelope.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type FamilyListResult struct {
	Families   []*domain.Family `json:"families"`
	Pagination Pagination       `json:"pagination"`
}

// FamilyView is the public detail page: the family with its needs and
// verified donations, plus totals reduced from those donations.
type FamilyView struct {
	Family        *domain.Family `json:"family"`
	TotalReceived float64        `json:"totalReceived"`
	DonationCount int            `json:"donationCount"`
}

type CreateFamilyInput struct {
	FamilyCode    string
	Region        string
	Priority      string
	RealName      string
	ExactLocation string
	Story         string
}

type FamilyService interface {
	List(ctx context.Context, params FamilyListParams) (*FamilyListResult, error)
	GetByCode(ctx context.Context, familyCode string) (*FamilyView, error)
	Create(ctx context.Context, input CreateFamilyInput) (*domain.Family, error)
	VerifyFamily(ctx context.Context, familyCode, decision string) (*domain.Family, error)
	GetSecureData(ctx context.Context, familyCode string) (*domain.SecureFamilyData, error)
}

type familyService struct {
	db               *gorm.DB
	log              *logger.Logger
	familyRepo       repos.FamilyRepo
	secureFamilyRepo repos.SecureFamilyRepo
}

func NewFamilyService(
	db *gorm.DB,
	log *logger.Logger,
	familyRepo repos.FamilyRepo,
	secureFamilyRepo repos.SecureFamilyRepo,
) FamilyService {
	serviceLog := log.With("service", "FamilyService")
	return &familyService{
		db:               db,
		log:              serviceLog,
		familyRepo:       familyRepo,
		secureFamilyRepo: secureFamilyRepo,
	}
}

// List returns active families only, highest priority first, with their
// unfulfilled needs and verified donations preloaded.
func (fs *familyService) List(ctx context.Context, params FamilyListParams) (*FamilyListResult, error) {
	filter := repos.FamilyListFilter{
		Region:     params.Region,
		ActiveOnly: true,
	}
	if params.Status != "" {
		status, err := domain.ParseVerificationStatus(params.Status)
		if err != nil {
			return nil, err
		}
		filter.VerificationStatus = status
	}
	if params.Priority != "" {
		priority, err := domain.ParsePriorityLevel(params.Priority)
		if err != nil {
			return nil, err
		}
		filter.PriorityLevel = priority
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

	families, err := fs.familyRepo.List(ctx, nil, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list families: %w", err)
	}
	total, err := fs.familyRepo.Count(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count families: %w", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return &FamilyListResult{
		Families: families,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// GetByCode serves the public family page. Deactivated families are
// indistinguishable from missing ones.
func (fs *familyService) GetByCode(ctx context.Context, familyCode string) (*FamilyView, error) {
	if familyCode == "" {
		return nil, fmt.Errorf("family code is required: %w", pkgErrors.ErrInvalidArgument)
	}

	families, err := fs.familyRepo.GetByCodesWithDetails(ctx, nil, []string{familyCode})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch family: %w", err)
	}
	if len(families) == 0 || !families[0].IsActive {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}
	family := families[0]

	var total float64
	for _, donation := range family.Donations {
		total += donation.Amount
	}
	return &FamilyView{
		Family:        family,
		TotalReceived: total,
		DonationCount: len(family.Donations),
	}, nil
}

func (fs *familyService) Create(ctx context.Context, input CreateFamilyInput) (*domain.Family, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("no request data found in context: %w", pkgErrors.ErrUnauthorized)
	}
	if input.FamilyCode == "" || input.Region == "" || input.RealName == "" || input.ExactLocation == "" || input.Story == "" {
		return nil, fmt.Errorf("familyCode, region, realName, exactLocation and story are required: %w", pkgErrors.ErrInvalidArgument)
	}

	priority := domain.PriorityMedium
	if input.Priority != "" {
		parsed, err := domain.ParsePriorityLevel(input.Priority)
		if err != nil {
			return nil, err
		}
		priority = parsed
	}

	codeExists, err := fs.familyRepo.CodeExists(ctx, nil, input.FamilyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check family code: %w", err)
	}
	if codeExists {
		return nil, fmt.Errorf("family code already exists: %w", pkgErrors.ErrDuplicate)
	}

	family := &domain.Family{
		ID:                 uuid.New(),
		FamilyCode:         input.FamilyCode,
		Region:             input.Region,
		PriorityLevel:      priority,
		VerificationStatus: domain.VerificationPending,
		IsActive:           true,
		UserID:             rd.UserID,
	}
	blob, err := json.Marshal(map[string]string{
		"realName":      input.RealName,
		"exactLocation": input.ExactLocation,
		"story":         input.Story,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode secure payload: %w", err)
	}
	secure := &domain.SecureFamilyData{
		ID:            uuid.New(),
		FamilyCode:    input.FamilyCode,
		RealName:      input.RealName,
		ExactLocation: input.ExactLocation,
		Story:         input.Story,
		EncryptedData: string(blob),
	}

	if err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := fs.familyRepo.Create(ctx, tx, []*domain.Family{family}); err != nil {
			return fmt.Errorf("failed to create family: %w", err)
		}
		if _, err := fs.secureFamilyRepo.Create(ctx, tx, []*domain.SecureFamilyData{secure}); err != nil {
			return fmt.Errorf("failed to create secure family record: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return family, nil
}

// VerifyFamily records an admin decision. The public record and the vault
// record are stamped in the same transaction so neither can show a decision
// the other lacks. A later decision may overwrite an earlier one.
func (fs *familyService) VerifyFamily(ctx context.Context, familyCode, decision string) (*domain.Family, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.ProfileID == uuid.Nil {
		return nil, fmt.Errorf("no admin profile in context: %w", pkgErrors.ErrUnauthorized)
	}

	status, err := domain.ParseVerificationDecision(decision)
	if err != nil {
		return nil, err
	}

	families, err := fs.familyRepo.GetByCodes(ctx, nil, []string{familyCode})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch family: %w", err)
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("family not found: %w", pkgErrors.ErrNotFound)
	}
	family := families[0]

	now := time.Now()
	if err := fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fs.familyRepo.UpdateVerification(ctx, tx, familyCode, status, rd.ProfileID); err != nil {
			return fmt.Errorf("failed to update family verification: %w", err)
		}
		if err := fs.secureFamilyRepo.StampVerification(ctx, tx, familyCode, rd.ProfileID, now); err != nil {
			return fmt.Errorf("failed to stamp secure record: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	family.VerificationStatus = status
	adminID := rd.ProfileID
	family.VerifiedByAdminID = &adminID
	fs.log.Info("family verification recorded",
		"familyCode", familyCode,
		"status", status,
		"adminId", adminID,
	)
	return family, nil
}

func (fs *familyService) GetSecureData(ctx context.Context, familyCode string) (*domain.SecureFamilyData, error) {
	records, err := fs.secureFamilyRepo.GetByCodes(ctx, nil, []string{familyCode})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch secure family record: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("secure family record not found: %w", pkgErrors.ErrNotFound)
	}
	return records[0], nil
}
