package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

func testLogger() *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		panic(err)
	}
	return log
}

type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*domain.User) ([]*domain.User, error) {
	f.users = append(f.users, users...)
	return users, nil
}

func (f *fakeUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		for _, id := range userIDs {
			if u.ID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		for _, email := range userEmails {
			if u.Email == email {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, userEmail string) (bool, error) {
	for _, u := range f.users {
		if u.Email == userEmail {
			return true, nil
		}
	}
	return false, nil
}

type fakeAdminRepo struct {
	admins []*domain.Admin
}

func (f *fakeAdminRepo) Create(ctx context.Context, tx *gorm.DB, admins []*domain.Admin) ([]*domain.Admin, error) {
	f.admins = append(f.admins, admins...)
	return admins, nil
}

func (f *fakeAdminRepo) GetByEmails(ctx context.Context, tx *gorm.DB, adminEmails []string) ([]*domain.Admin, error) {
	var out []*domain.Admin
	for _, a := range f.admins {
		for _, email := range adminEmails {
			if a.Email == email {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func (f *fakeAdminRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(f.admins)), nil
}

type fakeDonorRepo struct {
	donors []*domain.Donor
}

func (f *fakeDonorRepo) Create(ctx context.Context, tx *gorm.DB, donors []*domain.Donor) ([]*domain.Donor, error) {
	f.donors = append(f.donors, donors...)
	return donors, nil
}

func (f *fakeDonorRepo) GetByIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.Donor, error) {
	var out []*domain.Donor
	for _, d := range f.donors {
		for _, id := range donorIDs {
			if d.ID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDonorRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Donor, error) {
	var out []*domain.Donor
	for _, d := range f.donors {
		for _, id := range userIDs {
			if d.UserID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDonorRepo) Update(ctx context.Context, tx *gorm.DB, donor *domain.Donor) error {
	for i, d := range f.donors {
		if d.ID == donor.ID {
			f.donors[i] = donor
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDonorRepo) List(ctx context.Context, tx *gorm.DB, filter repos.DonorListFilter, skip, take int) ([]*domain.Donor, error) {
	return f.donors, nil
}

func (f *fakeDonorRepo) Count(ctx context.Context, tx *gorm.DB, filter repos.DonorListFilter) (int64, error) {
	return int64(len(f.donors)), nil
}

type fakeFamilyRepo struct {
	families []*domain.Family
}

func (f *fakeFamilyRepo) Create(ctx context.Context, tx *gorm.DB, families []*domain.Family) ([]*domain.Family, error) {
	f.families = append(f.families, families...)
	return families, nil
}

func (f *fakeFamilyRepo) GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	var out []*domain.Family
	for _, fam := range f.families {
		for _, code := range familyCodes {
			if fam.FamilyCode == code {
				out = append(out, fam)
			}
		}
	}
	return out, nil
}

func (f *fakeFamilyRepo) GetByCodesWithDetails(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	return f.GetByCodes(ctx, tx, familyCodes)
}

func (f *fakeFamilyRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Family, error) {
	var out []*domain.Family
	for _, fam := range f.families {
		for _, id := range userIDs {
			if fam.UserID == id {
				out = append(out, fam)
			}
		}
	}
	return out, nil
}

func (f *fakeFamilyRepo) CodeExists(ctx context.Context, tx *gorm.DB, familyCode string) (bool, error) {
	for _, fam := range f.families {
		if fam.FamilyCode == familyCode {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFamilyRepo) List(ctx context.Context, tx *gorm.DB, filter repos.FamilyListFilter, skip, take int) ([]*domain.Family, error) {
	return f.families, nil
}

func (f *fakeFamilyRepo) Count(ctx context.Context, tx *gorm.DB, filter repos.FamilyListFilter) (int64, error) {
	return int64(len(f.families)), nil
}

func (f *fakeFamilyRepo) CountByStatus(ctx context.Context, tx *gorm.DB, status domain.VerificationStatus) (int64, error) {
	var count int64
	for _, fam := range f.families {
		if fam.VerificationStatus == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeFamilyRepo) UpdateVerification(ctx context.Context, tx *gorm.DB, familyCode string, status domain.VerificationStatus, adminID uuid.UUID) error {
	for _, fam := range f.families {
		if fam.FamilyCode == familyCode {
			fam.VerificationStatus = status
			id := adminID
			fam.VerifiedByAdminID = &id
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeFamilyRepo) ListActiveByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.Family, error) {
	var out []*domain.Family
	for _, fam := range f.families {
		if !fam.IsActive {
			continue
		}
		for _, code := range familyCodes {
			if fam.FamilyCode == code {
				out = append(out, fam)
			}
		}
	}
	return out, nil
}

func (f *fakeFamilyRepo) ListVerifiedByRegions(ctx context.Context, tx *gorm.DB, regions []string, take int) ([]*domain.Family, error) {
	var out []*domain.Family
	for _, fam := range f.families {
		if fam.VerificationStatus != domain.VerificationVerified || !fam.IsActive {
			continue
		}
		for _, region := range regions {
			if fam.Region == region {
				out = append(out, fam)
			}
		}
	}
	if take > 0 && len(out) > take {
		out = out[:take]
	}
	return out, nil
}

type fakeSecureFamilyRepo struct {
	records []*domain.SecureFamilyData
}

func (f *fakeSecureFamilyRepo) Create(ctx context.Context, tx *gorm.DB, records []*domain.SecureFamilyData) ([]*domain.SecureFamilyData, error) {
	f.records = append(f.records, records...)
	return records, nil
}

func (f *fakeSecureFamilyRepo) GetByCodes(ctx context.Context, tx *gorm.DB, familyCodes []string) ([]*domain.SecureFamilyData, error) {
	var out []*domain.SecureFamilyData
	for _, r := range f.records {
		for _, code := range familyCodes {
			if r.FamilyCode == code {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeSecureFamilyRepo) StampVerification(ctx context.Context, tx *gorm.DB, familyCode string, adminID uuid.UUID, at time.Time) error {
	for _, r := range f.records {
		if r.FamilyCode == familyCode {
			id := adminID
			stamped := at
			r.VerifiedBy = &id
			r.VerifiedAt = &stamped
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeNeedRepo struct {
	needs []*domain.FamilyNeed
}

func (f *fakeNeedRepo) Create(ctx context.Context, tx *gorm.DB, needs []*domain.FamilyNeed) ([]*domain.FamilyNeed, error) {
	f.needs = append(f.needs, needs...)
	return needs, nil
}

func (f *fakeNeedRepo) GetByIDs(ctx context.Context, tx *gorm.DB, needIDs []uuid.UUID) ([]*domain.FamilyNeed, error) {
	var out []*domain.FamilyNeed
	for _, n := range f.needs {
		for _, id := range needIDs {
			if n.ID == id {
				out = append(out, n)
			}
		}
	}
	return out, nil
}

func (f *fakeNeedRepo) List(ctx context.Context, tx *gorm.DB, filter repos.NeedListFilter) ([]*domain.FamilyNeed, error) {
	var out []*domain.FamilyNeed
	for _, n := range f.needs {
		if filter.FamilyCode != "" && n.FamilyCode != filter.FamilyCode {
			continue
		}
		if filter.UnfulfilledOnly && n.IsFulfilled {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNeedRepo) MarkFulfilled(ctx context.Context, tx *gorm.DB, needID uuid.UUID) error {
	for _, n := range f.needs {
		if n.ID == needID && !n.IsFulfilled {
			n.IsFulfilled = true
		}
	}
	return nil
}

func (f *fakeNeedRepo) CountByFulfillment(ctx context.Context, tx *gorm.DB, fulfilled bool) (int64, error) {
	var count int64
	for _, n := range f.needs {
		if n.IsFulfilled == fulfilled {
			count++
		}
	}
	return count, nil
}

type fakeDonationRepo struct {
	donations []*domain.ExternalDonation
}

func (f *fakeDonationRepo) Create(ctx context.Context, tx *gorm.DB, donations []*domain.ExternalDonation) ([]*domain.ExternalDonation, error) {
	f.donations = append(f.donations, donations...)
	return donations, nil
}

func (f *fakeDonationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, donationIDs []uuid.UUID) ([]*domain.ExternalDonation, error) {
	var out []*domain.ExternalDonation
	for _, d := range f.donations {
		for _, id := range donationIDs {
			if d.ID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) SetVerified(ctx context.Context, tx *gorm.DB, donationID uuid.UUID, isVerified bool) error {
	for _, d := range f.donations {
		if d.ID == donationID {
			d.IsVerified = isVerified
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeDonationRepo) ListByFamilyCode(ctx context.Context, tx *gorm.DB, familyCode string, verifiedOnly bool) ([]*domain.ExternalDonation, error) {
	var out []*domain.ExternalDonation
	for _, d := range f.donations {
		if d.FamilyCode != familyCode {
			continue
		}
		if verifiedOnly && !d.IsVerified {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDonationRepo) ListByDonorIDs(ctx context.Context, tx *gorm.DB, donorIDs []uuid.UUID) ([]*domain.ExternalDonation, error) {
	var out []*domain.ExternalDonation
	for _, d := range f.donations {
		if d.DonorID == nil {
			continue
		}
		for _, id := range donorIDs {
			if *d.DonorID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDonationRepo) ListRecentVerified(ctx context.Context, tx *gorm.DB, window repos.DonationWindow, take int) ([]*domain.ExternalDonation, error) {
	out := f.inWindow(window)
	if take > 0 && len(out) > take {
		out = out[:take]
	}
	return out, nil
}

func (f *fakeDonationRepo) PlatformTotals(ctx context.Context, tx *gorm.DB, window repos.DonationWindow) ([]repos.PlatformTotal, error) {
	grouped := map[string]*repos.PlatformTotal{}
	var order []string
	for _, d := range f.inWindow(window) {
		row, ok := grouped[d.Platform]
		if !ok {
			row = &repos.PlatformTotal{Platform: d.Platform}
			grouped[d.Platform] = row
			order = append(order, d.Platform)
		}
		row.Amount += d.Amount
		row.Count++
	}
	out := make([]repos.PlatformTotal, 0, len(order))
	for _, platform := range order {
		out = append(out, *grouped[platform])
	}
	return out, nil
}

func (f *fakeDonationRepo) TotalsVerified(ctx context.Context, tx *gorm.DB, window repos.DonationWindow) (float64, int64, error) {
	var amount float64
	var count int64
	for _, d := range f.inWindow(window) {
		amount += d.Amount
		count++
	}
	return amount, count, nil
}

func (f *fakeDonationRepo) CountAllVerified(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	for _, d := range f.donations {
		if d.IsVerified {
			count++
		}
	}
	return count, nil
}

func (f *fakeDonationRepo) SumAllVerified(ctx context.Context, tx *gorm.DB) (float64, error) {
	var sum float64
	for _, d := range f.donations {
		if d.IsVerified {
			sum += d.Amount
		}
	}
	return sum, nil
}

func (f *fakeDonationRepo) inWindow(window repos.DonationWindow) []*domain.ExternalDonation {
	var out []*domain.ExternalDonation
	for _, d := range f.donations {
		if !d.IsVerified || d.DonationDate.Before(window.Since) {
			continue
		}
		out = append(out, d)
	}
	return out
}
