package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
)

type fakeStatsCache struct {
	store map[string]string
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{store: map[string]string{}}
}

func (f *fakeStatsCache) Get(ctx context.Context, key string) (string, bool) {
	payload, ok := f.store[key]
	return payload, ok
}

func (f *fakeStatsCache) Set(ctx context.Context, key, payload string) {
	f.store[key] = payload
}

func (f *fakeStatsCache) Close() error { return nil }

func statsFixture() (*fakeDonationRepo, *fakeFamilyRepo, *fakeNeedRepo) {
	now := time.Now()
	donations := &fakeDonationRepo{donations: []*domain.ExternalDonation{
		{ID: uuid.New(), FamilyCode: "FAM-A", Platform: "gofundme", Amount: 50, IsVerified: true, DonationDate: now.Add(-time.Hour)},
		{ID: uuid.New(), FamilyCode: "FAM-A", Platform: "gofundme", Amount: 30, IsVerified: true, DonationDate: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), FamilyCode: "FAM-B", Platform: "paypal", Amount: 20, IsVerified: true, DonationDate: now.Add(-3 * time.Hour)},
		{ID: uuid.New(), FamilyCode: "FAM-B", Platform: "paypal", Amount: 99, IsVerified: false, DonationDate: now.Add(-time.Hour)},
	}}
	families := &fakeFamilyRepo{families: []*domain.Family{
		{ID: uuid.New(), FamilyCode: "FAM-A", VerificationStatus: domain.VerificationVerified, IsActive: true},
		{ID: uuid.New(), FamilyCode: "FAM-B", VerificationStatus: domain.VerificationPending, IsActive: true},
	}}
	needs := &fakeNeedRepo{needs: []*domain.FamilyNeed{
		{ID: uuid.New(), FamilyCode: "FAM-A", Title: "open", IsFulfilled: false},
		{ID: uuid.New(), FamilyCode: "FAM-A", Title: "done", IsFulfilled: true},
	}}
	return donations, families, needs
}

func TestPlatformBreakdown(t *testing.T) {
	donations, families, needs := statsFixture()
	ss := NewStatsService(nil, testLogger(), donations, families, needs, nil)

	stats, err := ss.PlatformBreakdown(context.Background(), "", 30)
	if err != nil {
		t.Fatalf("PlatformBreakdown: %v", err)
	}
	if stats.TotalAmount != 100 || stats.TotalCount != 3 {
		t.Fatalf("totals: %+v", stats)
	}
	if len(stats.Platforms) != 2 {
		t.Fatalf("platforms: %+v", stats.Platforms)
	}
	if len(stats.Recent) != 3 {
		t.Fatalf("recent: %d", len(stats.Recent))
	}
}

func TestPlatformBreakdownZeroWindowIsEmpty(t *testing.T) {
	donations, families, needs := statsFixture()
	ss := NewStatsService(nil, testLogger(), donations, families, needs, nil)

	stats, err := ss.PlatformBreakdown(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("PlatformBreakdown: %v", err)
	}
	if stats.TotalAmount != 0 || stats.TotalCount != 0 || len(stats.Platforms) != 0 || len(stats.Recent) != 0 {
		t.Fatalf("zero window must match nothing: %+v", stats)
	}
}

func TestPlatformBreakdownNegativeWindow(t *testing.T) {
	donations, families, needs := statsFixture()
	ss := NewStatsService(nil, testLogger(), donations, families, needs, nil)

	if _, err := ss.PlatformBreakdown(context.Background(), "", -1); !errors.Is(err, pkgErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSiteStats(t *testing.T) {
	donations, families, needs := statsFixture()
	ss := NewStatsService(nil, testLogger(), donations, families, needs, nil)

	stats, err := ss.SiteStats(context.Background())
	if err != nil {
		t.Fatalf("SiteStats: %v", err)
	}
	if stats.ActiveFamilies != 2 || stats.VerifiedFamilies != 1 {
		t.Fatalf("family counts: %+v", stats)
	}
	if stats.TotalDonations != 3 || stats.TotalAmount != 100 {
		t.Fatalf("donation counts: %+v", stats)
	}
	if stats.OpenNeeds != 1 || stats.FulfilledNeeds != 1 {
		t.Fatalf("need counts: %+v", stats)
	}
}

func TestSiteStatsServedFromCache(t *testing.T) {
	donations, families, needs := statsFixture()
	cache := newFakeStatsCache()
	ss := NewStatsService(nil, testLogger(), donations, families, needs, cache)
	ctx := context.Background()

	first, err := ss.SiteStats(ctx)
	if err != nil {
		t.Fatalf("SiteStats: %v", err)
	}

	// New data after the first call must not show until the cache expires.
	donations.donations = append(donations.donations, &domain.ExternalDonation{
		ID: uuid.New(), FamilyCode: "FAM-A", Platform: "paypal", Amount: 500, IsVerified: true, DonationDate: time.Now(),
	})

	second, err := ss.SiteStats(ctx)
	if err != nil {
		t.Fatalf("SiteStats cached: %v", err)
	}
	if second.TotalAmount != first.TotalAmount || second.TotalDonations != first.TotalDonations {
		t.Fatalf("expected cached stats, got %+v vs %+v", second, first)
	}
}
