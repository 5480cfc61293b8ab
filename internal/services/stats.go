package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/clients/redis"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

// DonationStats is the public breakdown of verified donations inside a
// rolling window.
type DonationStats struct {
	TimeframeDays int                        `json:"timeframeDays"`
	Region        string                     `json:"region,omitempty"`
	TotalAmount   float64                    `json:"totalAmount"`
	TotalCount    int64                      `json:"totalCount"`
	Platforms     []repos.PlatformTotal      `json:"platforms"`
	Recent        []*domain.ExternalDonation `json:"recentDonations"`
}

// SiteStats is the public landing-page counter set.
type SiteStats struct {
	ActiveFamilies   int64   `json:"activeFamilies"`
	VerifiedFamilies int64   `json:"verifiedFamilies"`
	TotalDonations   int64   `json:"totalDonations"`
	TotalAmount      float64 `json:"totalAmount"`
	OpenNeeds        int64   `json:"openNeeds"`
	FulfilledNeeds   int64   `json:"fulfilledNeeds"`
}

type StatsService interface {
	PlatformBreakdown(ctx context.Context, region string, timeframeDays int) (*DonationStats, error)
	SiteStats(ctx context.Context) (*SiteStats, error)
}

type statsService struct {
	db           *gorm.DB
	log          *logger.Logger
	donationRepo repos.DonationRepo
	familyRepo   repos.FamilyRepo
	needRepo     repos.NeedRepo
	cache        redis.StatsCache
}

// NewStatsService takes an optional cache; nil means every call recomputes.
func NewStatsService(
	db *gorm.DB,
	log *logger.Logger,
	donationRepo repos.DonationRepo,
	familyRepo repos.FamilyRepo,
	needRepo repos.NeedRepo,
	cache redis.StatsCache,
) StatsService {
	serviceLog := log.With("service", "StatsService")
	return &statsService{
		db:           db,
		log:          serviceLog,
		donationRepo: donationRepo,
		familyRepo:   familyRepo,
		needRepo:     needRepo,
		cache:        cache,
	}
}

// PlatformBreakdown groups verified donations by platform over the trailing
// window. A zero-day window starts now and therefore matches nothing.
func (ss *statsService) PlatformBreakdown(ctx context.Context, region string, timeframeDays int) (*DonationStats, error) {
	if timeframeDays < 0 {
		return nil, fmt.Errorf("timeframe must not be negative: %w", pkgErrors.ErrInvalidArgument)
	}

	cacheKey := fmt.Sprintf("stats:donations:%s:%d", region, timeframeDays)
	if cached, ok := ss.cacheGet(ctx, cacheKey); ok {
		var stats DonationStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	window := repos.DonationWindow{
		Region: region,
		Since:  time.Now().AddDate(0, 0, -timeframeDays),
	}

	platforms, err := ss.donationRepo.PlatformTotals(ctx, nil, window)
	if err != nil {
		return nil, fmt.Errorf("failed to group donations by platform: %w", err)
	}
	totalAmount, totalCount, err := ss.donationRepo.TotalsVerified(ctx, nil, window)
	if err != nil {
		return nil, fmt.Errorf("failed to total donations: %w", err)
	}
	recent, err := ss.donationRepo.ListRecentVerified(ctx, nil, window, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent donations: %w", err)
	}

	stats := &DonationStats{
		TimeframeDays: timeframeDays,
		Region:        region,
		TotalAmount:   totalAmount,
		TotalCount:    totalCount,
		Platforms:     platforms,
		Recent:        recent,
	}
	ss.cacheSet(ctx, cacheKey, stats)
	return stats, nil
}

func (ss *statsService) SiteStats(ctx context.Context) (*SiteStats, error) {
	cacheKey := "stats:site"
	if cached, ok := ss.cacheGet(ctx, cacheKey); ok {
		var stats SiteStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
	}

	activeFamilies, err := ss.familyRepo.Count(ctx, nil, repos.FamilyListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to count active families: %w", err)
	}
	verifiedFamilies, err := ss.familyRepo.CountByStatus(ctx, nil, domain.VerificationVerified)
	if err != nil {
		return nil, fmt.Errorf("failed to count verified families: %w", err)
	}
	donationCount, err := ss.donationRepo.CountAllVerified(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to count donations: %w", err)
	}
	donationTotal, err := ss.donationRepo.SumAllVerified(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum donations: %w", err)
	}
	openNeeds, err := ss.needRepo.CountByFulfillment(ctx, nil, false)
	if err != nil {
		return nil, fmt.Errorf("failed to count open needs: %w", err)
	}
	fulfilledNeeds, err := ss.needRepo.CountByFulfillment(ctx, nil, true)
	if err != nil {
		return nil, fmt.Errorf("failed to count fulfilled needs: %w", err)
	}

	stats := &SiteStats{
		ActiveFamilies:   activeFamilies,
		VerifiedFamilies: verifiedFamilies,
		TotalDonations:   donationCount,
		TotalAmount:      donationTotal,
		OpenNeeds:        openNeeds,
		FulfilledNeeds:   fulfilledNeeds,
	}
	ss.cacheSet(ctx, cacheKey, stats)
	return stats, nil
}

func (ss *statsService) cacheGet(ctx context.Context, key string) (string, bool) {
	if ss.cache == nil {
		return "", false
	}
	return ss.cache.Get(ctx, key)
}

func (ss *statsService) cacheSet(ctx context.Context, key string, payload interface{}) {
	if ss.cache == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		ss.log.Warn("failed to encode stats for cache", "key", key, "error", err)
		return
	}
	ss.cache.Set(ctx, key, string(raw))
}
