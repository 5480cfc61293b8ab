package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
)

func newTestAuthService(users *fakeUserRepo, donors *fakeDonorRepo, admins *fakeAdminRepo, families *fakeFamilyRepo, secure *fakeSecureFamilyRepo) *authService {
	return NewAuthService(
		nil, testLogger(),
		users, donors, admins, families, secure,
		"test-secret", 7*24*time.Hour, bcrypt.MinCost,
	).(*authService)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{users: []*domain.User{{
		ID:    uuid.New(),
		Email: "taken@example.com",
		Role:  domain.RoleDonor,
	}}}
	as := newTestAuthService(users, &fakeDonorRepo{}, &fakeAdminRepo{}, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})

	_, err := as.RegisterUser(context.Background(), RegisterInput{
		Email:    "Taken@Example.com",
		Password: "pw",
		Role:     "DONOR",
		Name:     "Someone",
	})
	if !errors.Is(err, pkgErrors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestRegisterUserUnknownRole(t *testing.T) {
	as := newTestAuthService(&fakeUserRepo{}, &fakeDonorRepo{}, &fakeAdminRepo{}, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})

	_, err := as.RegisterUser(context.Background(), RegisterInput{
		Email:    "new@example.com",
		Password: "pw",
		Role:     "SUPERHERO",
	})
	if !errors.Is(err, pkgErrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRegisterFamilyRequiresAllFields(t *testing.T) {
	full := RegisterInput{
		Email:         "family@example.com",
		Password:      "pw",
		Role:          "FAMILY",
		FamilyCode:    "FAM-001",
		Region:        "gaza",
		RealName:      "Real Name",
		ExactLocation: "Somewhere 1",
		Story:         "story",
	}

	tests := []struct {
		name  string
		strip func(in *RegisterInput)
	}{
		{"missing familyCode", func(in *RegisterInput) { in.FamilyCode = "" }},
		{"missing region", func(in *RegisterInput) { in.Region = "" }},
		{"missing realName", func(in *RegisterInput) { in.RealName = "" }},
		{"missing exactLocation", func(in *RegisterInput) { in.ExactLocation = "" }},
		{"missing story", func(in *RegisterInput) { in.Story = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			as := newTestAuthService(&fakeUserRepo{}, &fakeDonorRepo{}, &fakeAdminRepo{}, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})
			in := full
			tc.strip(&in)
			_, err := as.RegisterUser(context.Background(), in)
			if !errors.Is(err, pkgErrors.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestRegisterFamilyDuplicateCode(t *testing.T) {
	families := &fakeFamilyRepo{families: []*domain.Family{{
		ID:         uuid.New(),
		FamilyCode: "FAM-001",
	}}}
	as := newTestAuthService(&fakeUserRepo{}, &fakeDonorRepo{}, &fakeAdminRepo{}, families, &fakeSecureFamilyRepo{})

	_, err := as.RegisterUser(context.Background(), RegisterInput{
		Email:         "family@example.com",
		Password:      "pw",
		Role:          "FAMILY",
		FamilyCode:    "FAM-001",
		Region:        "gaza",
		RealName:      "Real Name",
		ExactLocation: "Somewhere 1",
		Story:         "story",
	})
	if !errors.Is(err, pkgErrors.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestFirstAdminGetsSuperAdmin(t *testing.T) {
	admins := &fakeAdminRepo{}
	as := newTestAuthService(&fakeUserRepo{}, &fakeDonorRepo{}, admins, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})
	ctx := context.Background()

	first, err := as.createProfile(ctx, nil, &domain.User{
		ID:    uuid.New(),
		Email: "first@example.com",
		Role:  domain.RoleAdmin,
	}, RegisterInput{Name: "First"})
	if err != nil {
		t.Fatalf("createProfile first: %v", err)
	}
	firstAdmin := first.(*domain.Admin)
	if len(firstAdmin.Permissions) != 1 || firstAdmin.Permissions[0] != domain.PermissionSuperAdmin {
		t.Fatalf("first admin permissions: %v", firstAdmin.Permissions)
	}

	second, err := as.createProfile(ctx, nil, &domain.User{
		ID:    uuid.New(),
		Email: "second@example.com",
		Role:  domain.RoleAdmin,
	}, RegisterInput{Name: "Second"})
	if err != nil {
		t.Fatalf("createProfile second: %v", err)
	}
	secondAdmin := second.(*domain.Admin)
	if len(secondAdmin.Permissions) != 1 || secondAdmin.Permissions[0] != domain.PermissionBasicAdmin {
		t.Fatalf("second admin permissions: %v", secondAdmin.Permissions)
	}
}

func loginFixture(t *testing.T, active bool) (*authService, *domain.User) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		ID:       uuid.New(),
		Email:    "donor@example.com",
		Password: string(hash),
		Role:     domain.RoleDonor,
		IsActive: active,
	}
	donors := &fakeDonorRepo{donors: []*domain.Donor{{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Donor",
	}}}
	as := newTestAuthService(&fakeUserRepo{users: []*domain.User{user}}, donors, &fakeAdminRepo{}, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})
	return as, user
}

func TestLoginUser(t *testing.T) {
	as, user := loginFixture(t, true)
	ctx := context.Background()

	result, err := as.LoginUser(ctx, "donor@example.com", "correct-password")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if result.Token == "" || result.User.ID != user.ID {
		t.Fatalf("unexpected login result: %+v", result)
	}
	if _, ok := result.Profile.(*domain.Donor); !ok {
		t.Fatalf("expected donor profile, got %T", result.Profile)
	}

	if _, err := as.LoginUser(ctx, "donor@example.com", "wrong-password"); !errors.Is(err, pkgErrors.ErrUnauthorized) {
		t.Fatalf("wrong password: expected ErrUnauthorized, got %v", err)
	}
	if _, err := as.LoginUser(ctx, "nobody@example.com", "correct-password"); !errors.Is(err, pkgErrors.ErrUnauthorized) {
		t.Fatalf("unknown email: expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	as, _ := loginFixture(t, false)

	_, err := as.LoginUser(context.Background(), "donor@example.com", "correct-password")
	if !errors.Is(err, pkgErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	as, user := loginFixture(t, true)
	ctx := context.Background()

	result, err := as.LoginUser(ctx, "donor@example.com", "correct-password")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	withToken, err := as.SetContextFromToken(ctx, result.Token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := ctxutil.GetRequestData(withToken)
	if rd == nil {
		t.Fatalf("expected request data in context")
	}
	if rd.UserID != user.ID || rd.Email != user.Email || rd.Role != domain.RoleDonor {
		t.Fatalf("claims mismatch: %+v", rd)
	}
	donor := result.Profile.(*domain.Donor)
	if rd.ProfileID != donor.ID {
		t.Fatalf("profile id mismatch: %s != %s", rd.ProfileID, donor.ID)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	as, user := loginFixture(t, true)
	as.tokenTTL = -time.Hour

	token, err := as.generateToken(user, nil)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	if _, err := as.SetContextFromToken(context.Background(), token); !errors.Is(err, pkgErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	as, user := loginFixture(t, true)

	token, err := as.generateToken(user, nil)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	if _, err := as.SetContextFromToken(context.Background(), token+"x"); !errors.Is(err, pkgErrors.ErrForbidden) {
		t.Fatalf("tampered signature: expected ErrForbidden, got %v", err)
	}

	other := newTestAuthService(&fakeUserRepo{}, &fakeDonorRepo{}, &fakeAdminRepo{}, &fakeFamilyRepo{}, &fakeSecureFamilyRepo{})
	other.jwtSecretKey = "another-secret"
	foreign, err := other.generateToken(user, nil)
	if err != nil {
		t.Fatalf("generateToken foreign: %v", err)
	}
	if _, err := as.SetContextFromToken(context.Background(), foreign); !errors.Is(err, pkgErrors.ErrForbidden) {
		t.Fatalf("wrong key: expected ErrForbidden, got %v", err)
	}
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	as, _ := loginFixture(t, true)
	if _, err := as.SetContextFromToken(context.Background(), ""); !errors.Is(err, pkgErrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
