package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string, role domain.Role) *domain.User {
	tb.Helper()
	u := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Role:     role,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedFamily(tb testing.TB, ctx context.Context, tx *gorm.DB, familyCode, region string, userID uuid.UUID) *domain.Family {
	tb.Helper()
	f := &domain.Family{
		ID:                 uuid.New(),
		FamilyCode:         familyCode,
		Region:             region,
		PriorityLevel:      domain.PriorityMedium,
		VerificationStatus: domain.VerificationPending,
		IsActive:           true,
		UserID:             userID,
	}
	if err := tx.WithContext(ctx).Omit("Needs", "Donations").Create(f).Error; err != nil {
		tb.Fatalf("seed family: %v", err)
	}
	return f
}

func SeedSecureFamilyData(tb testing.TB, ctx context.Context, tx *gorm.DB, familyCode string) *domain.SecureFamilyData {
	tb.Helper()
	s := &domain.SecureFamilyData{
		ID:            uuid.New(),
		FamilyCode:    familyCode,
		RealName:      "Real Name",
		ExactLocation: "Somewhere 1",
		Story:         "story",
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed secure family data: %v", err)
	}
	return s
}

func SeedDonor(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string) *domain.Donor {
	tb.Helper()
	d := &domain.Donor{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		Country:          "Unknown",
		PreferredRegions: []string{},
		FavoriteFamilies: []string{},
		JoinedAt:         time.Now(),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed donor: %v", err)
	}
	return d
}

func SeedDonation(tb testing.TB, ctx context.Context, tx *gorm.DB, familyCode, platform string, amount float64, verified bool, at time.Time) *domain.ExternalDonation {
	tb.Helper()
	d := &domain.ExternalDonation{
		ID:           uuid.New(),
		FamilyCode:   familyCode,
		Platform:     platform,
		Amount:       amount,
		Currency:     "USD",
		DonationDate: at,
		IsVerified:   verified,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed donation: %v", err)
	}
	return d
}

func SeedNeed(tb testing.TB, ctx context.Context, tx *gorm.DB, familyCode, title string, fulfilled bool) *domain.FamilyNeed {
	tb.Helper()
	n := &domain.FamilyNeed{
		ID:          uuid.New(),
		FamilyCode:  familyCode,
		Category:    "food",
		Title:       title,
		Priority:    domain.PriorityMedium,
		IsFulfilled: fulfilled,
	}
	if err := tx.WithContext(ctx).Create(n).Error; err != nil {
		tb.Fatalf("seed need: %v", err)
	}
	return n
}
