package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
)

func newTestDonationService(donations *fakeDonationRepo, families *fakeFamilyRepo) DonationService {
	return NewDonationService(nil, testLogger(), donations, families)
}

func familyFixture(code string) *fakeFamilyRepo {
	return &fakeFamilyRepo{families: []*domain.Family{{
		ID:         uuid.New(),
		FamilyCode: code,
		IsActive:   true,
	}}}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     interface{}
		want    float64
		wantErr bool
	}{
		{"float", 12.5, 12.5, false},
		{"int", 40, 40, false},
		{"numeric string", "99.99", 99.99, false},
		{"json number", json.Number("15"), 15, false},
		{"non-numeric string", "lots", 0, true},
		{"negative", -5.0, 0, true},
		{"zero", 0.0, 0, true},
		{"nil", nil, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmount(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, pkgErrors.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("parseAmount(%v) = %v, %v", tc.raw, got, err)
			}
		})
	}
}

func TestSummarizeDonations(t *testing.T) {
	donations := []*domain.ExternalDonation{
		{Amount: 50, Currency: "EUR", IsVerified: true},
		{Amount: 30, Currency: "EUR", IsVerified: false},
		{Amount: 20, Currency: "EUR", IsVerified: true},
	}

	summary := SummarizeDonations(donations)
	if summary.Total != 70 {
		t.Fatalf("total = %v, want 70", summary.Total)
	}
	if summary.Count != 2 {
		t.Fatalf("count = %d, want 2", summary.Count)
	}
	if summary.Pending != 1 {
		t.Fatalf("pending = %d, want 1", summary.Pending)
	}
	if summary.Currency != "EUR" {
		t.Fatalf("currency = %s, want EUR", summary.Currency)
	}

	empty := SummarizeDonations(nil)
	if empty.Currency != "USD" || empty.Total != 0 || empty.Count != 0 || empty.Pending != 0 {
		t.Fatalf("empty summary: %+v", empty)
	}
}

func TestRecordDonation(t *testing.T) {
	donations := &fakeDonationRepo{}
	ds := newTestDonationService(donations, familyFixture("FAM-001"))
	ctx := context.Background()

	donation, err := ds.Record(ctx, RecordDonationInput{
		FamilyCode: "FAM-001",
		Platform:   "gofundme",
		Amount:     "25.50",
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if donation.Amount != 25.50 || donation.Currency != "USD" || donation.IsVerified {
		t.Fatalf("unexpected donation: %+v", donation)
	}
	if donation.DonorID != nil {
		t.Fatalf("anonymous record must not carry a donor id")
	}
	if len(donations.donations) != 1 {
		t.Fatalf("donation not persisted")
	}
}

func TestRecordDonationAttachesDonorProfile(t *testing.T) {
	ds := newTestDonationService(&fakeDonationRepo{}, familyFixture("FAM-001"))
	donorID := uuid.New()
	ctx := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:    uuid.New(),
		Role:      domain.RoleDonor,
		ProfileID: donorID,
	})

	donation, err := ds.Record(ctx, RecordDonationInput{
		FamilyCode: "FAM-001",
		Platform:   "paypal",
		Amount:     10.0,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if donation.DonorID == nil || *donation.DonorID != donorID {
		t.Fatalf("expected donor id %s, got %v", donorID, donation.DonorID)
	}
}

func TestRecordDonationUnknownFamily(t *testing.T) {
	ds := newTestDonationService(&fakeDonationRepo{}, &fakeFamilyRepo{})

	_, err := ds.Record(context.Background(), RecordDonationInput{
		FamilyCode: "FAM-MISSING",
		Platform:   "gofundme",
		Amount:     10.0,
	})
	if !errors.Is(err, pkgErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetVerificationUnknownDonation(t *testing.T) {
	ds := newTestDonationService(&fakeDonationRepo{}, familyFixture("FAM-001"))

	_, err := ds.SetVerification(context.Background(), uuid.NewString(), true)
	if !errors.Is(err, pkgErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListForFamilyHidesUnverified(t *testing.T) {
	now := time.Now()
	donations := &fakeDonationRepo{donations: []*domain.ExternalDonation{
		{ID: uuid.New(), FamilyCode: "FAM-001", Amount: 50, Currency: "USD", IsVerified: true, DonationDate: now},
		{ID: uuid.New(), FamilyCode: "FAM-001", Amount: 30, Currency: "USD", IsVerified: false, DonationDate: now},
		{ID: uuid.New(), FamilyCode: "FAM-001", Amount: 20, Currency: "USD", IsVerified: true, DonationDate: now},
	}}
	ds := newTestDonationService(donations, familyFixture("FAM-001"))
	ctx := context.Background()

	result, err := ds.ListForFamily(ctx, "FAM-001", false)
	if err != nil {
		t.Fatalf("ListForFamily: %v", err)
	}
	if len(result.Donations) != 2 {
		t.Fatalf("expected 2 visible donations, got %d", len(result.Donations))
	}
	if result.Summary.Total != 70 || result.Summary.Count != 2 || result.Summary.Pending != 1 {
		t.Fatalf("summary: %+v", result.Summary)
	}

	all, err := ds.ListForFamily(ctx, "FAM-001", true)
	if err != nil {
		t.Fatalf("ListForFamily all: %v", err)
	}
	if len(all.Donations) != 3 {
		t.Fatalf("expected 3 donations, got %d", len(all.Donations))
	}

	if _, err := ds.ListForFamily(ctx, "FAM-MISSING", false); !errors.Is(err, pkgErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
