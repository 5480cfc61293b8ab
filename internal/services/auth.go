package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/ctxutil"
	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

// JWTClaims embeds the caller identity in the signed token: account id
// (subject), email, role, and the role profile id where one exists.
type JWTClaims struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	ProfileID  string `json:"profile_id,omitempty"`
	FamilyCode string `json:"family_code,omitempty"`
	jwt.RegisteredClaims
}

// RegisterInput carries the registration payload. The family fields are
// required only for role FAMILY.
type RegisterInput struct {
	Email            string
	Password         string
	Role             string
	Name             string
	Country          string
	PreferredRegions []string

	FamilyCode    string
	Region        string
	RealName      string
	ExactLocation string
	Story         string
}

// AuthResult is what register/login hand back to the transport layer.
type AuthResult struct {
	Token   string
	User    *domain.User
	Profile interface{}
}

type AuthService interface {
	RegisterUser(ctx context.Context, input RegisterInput) (*AuthResult, error)
	LoginUser(ctx context.Context, email, password string) (*AuthResult, error)
	GetMe(ctx context.Context) (*domain.User, interface{}, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetTokenTTL() time.Duration
}

type authService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	donorRepo        repos.DonorRepo
	adminRepo        repos.AdminRepo
	familyRepo       repos.FamilyRepo
	secureFamilyRepo repos.SecureFamilyRepo
	jwtSecretKey     string
	tokenTTL         time.Duration
	bcryptCost       int
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	donorRepo repos.DonorRepo,
	adminRepo repos.AdminRepo,
	familyRepo repos.FamilyRepo,
	secureFamilyRepo repos.SecureFamilyRepo,
	jwtSecretKey string,
	tokenTTL time.Duration,
	bcryptCost int,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:               db,
		log:              serviceLog,
		userRepo:         userRepo,
		donorRepo:        donorRepo,
		adminRepo:        adminRepo,
		familyRepo:       familyRepo,
		secureFamilyRepo: secureFamilyRepo,
		jwtSecretKey:     jwtSecretKey,
		tokenTTL:         tokenTTL,
		bcryptCost:       bcryptCost,
	}
}

// RegisterUser creates the account and its role profile in one transaction,
// so a half-created account (user row without profile) is never observable.
// The first-admin permission grant reads the admin count inside the same
// transaction; two concurrent first registrations can still both see zero
// (known race, accepted).
func (as *authService) RegisterUser(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("an email is required to register: %w", pkgErrors.ErrInvalidArgument)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("a password is required to register: %w", pkgErrors.ErrInvalidArgument)
	}
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	emailExists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user email: %w", err)
	}
	if emailExists {
		return nil, fmt.Errorf("user already exists: %w", pkgErrors.ErrDuplicate)
	}

	if role == domain.RoleFamily {
		if input.FamilyCode == "" || input.Region == "" || input.RealName == "" || input.ExactLocation == "" || input.Story == "" {
			return nil, fmt.Errorf("family registration requires: familyCode, region, realName, exactLocation, story: %w", pkgErrors.ErrInvalidArgument)
		}
		codeExists, err := as.familyRepo.CodeExists(ctx, nil, input.FamilyCode)
		if err != nil {
			return nil, fmt.Errorf("failed to check family code: %w", err)
		}
		if codeExists {
			return nil, fmt.Errorf("family code already exists: %w", pkgErrors.ErrDuplicate)
		}
	}
	if (role == domain.RoleDonor || role == domain.RoleAdmin) && strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("a name is required to register: %w", pkgErrors.ErrInvalidArgument)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), as.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}

	var profile interface{}
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := as.userRepo.Create(ctx, tx, []*domain.User{user}); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		created, err := as.createProfile(ctx, tx, user, input)
		if err != nil {
			return err
		}
		profile = created
		return nil
	}); err != nil {
		return nil, err
	}

	token, err := as.generateToken(user, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user, Profile: profile}, nil
}

func (as *authService) createProfile(ctx context.Context, tx *gorm.DB, user *domain.User, input RegisterInput) (interface{}, error) {
	switch user.Role {
	case domain.RoleDonor:
		country := input.Country
		if country == "" {
			country = "Unknown"
		}
		donor := &domain.Donor{
			ID:               uuid.New(),
			UserID:           user.ID,
			Name:             input.Name,
			Country:          country,
			PreferredRegions: input.PreferredRegions,
			FavoriteFamilies: []string{},
			JoinedAt:         time.Now(),
		}
		if _, err := as.donorRepo.Create(ctx, tx, []*domain.Donor{donor}); err != nil {
			return nil, fmt.Errorf("failed to create donor profile: %w", err)
		}
		return donor, nil

	case domain.RoleAdmin:
		adminCount, err := as.adminRepo.Count(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to count admins: %w", err)
		}
		permissions := []string{domain.PermissionBasicAdmin}
		if adminCount == 0 {
			permissions = []string{domain.PermissionSuperAdmin}
		}
		admin := &domain.Admin{
			ID:          uuid.New(),
			Email:       user.Email,
			Password:    user.Password,
			Name:        input.Name,
			Permissions: permissions,
		}
		if _, err := as.adminRepo.Create(ctx, tx, []*domain.Admin{admin}); err != nil {
			return nil, fmt.Errorf("failed to create admin profile: %w", err)
		}
		return admin, nil

	case domain.RoleFamily:
		family := &domain.Family{
			ID:                 uuid.New(),
			FamilyCode:         input.FamilyCode,
			Region:             input.Region,
			PriorityLevel:      domain.PriorityMedium,
			VerificationStatus: domain.VerificationPending,
			IsActive:           true,
			UserID:             user.ID,
		}
		if _, err := as.familyRepo.Create(ctx, tx, []*domain.Family{family}); err != nil {
			return nil, fmt.Errorf("failed to create family profile: %w", err)
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
		if _, err := as.secureFamilyRepo.Create(ctx, tx, []*domain.SecureFamilyData{secure}); err != nil {
			return nil, fmt.Errorf("failed to create secure family record: %w", err)
		}
		return family, nil
	}
	return nil, fmt.Errorf("unknown role %q: %w", user.Role, pkgErrors.ErrInvalidArgument)
}

// LoginUser reports the same error for a missing account, an inactive account
// and a wrong password, so the response never reveals which one it was.
func (as *authService) LoginUser(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required to login: %w", pkgErrors.ErrInvalidArgument)
	}

	users, err := as.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(users) == 0 || !users[0].IsActive {
		return nil, fmt.Errorf("invalid credentials: %w", pkgErrors.ErrUnauthorized)
	}
	user := users[0]

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", pkgErrors.ErrUnauthorized)
	}

	profile, err := as.resolveProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := as.generateToken(user, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user, Profile: profile}, nil
}

func (as *authService) GetMe(ctx context.Context) (*domain.User, interface{}, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, nil, fmt.Errorf("no request data found in context: %w", pkgErrors.ErrUnauthorized)
	}

	users, err := as.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if len(users) == 0 {
		return nil, nil, fmt.Errorf("user not found: %w", pkgErrors.ErrNotFound)
	}
	user := users[0]

	profile, err := as.resolveProfile(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (as *authService) resolveProfile(ctx context.Context, user *domain.User) (interface{}, error) {
	switch user.Role {
	case domain.RoleDonor:
		donors, err := as.donorRepo.GetByUserIDs(ctx, nil, []uuid.UUID{user.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch donor profile: %w", err)
		}
		if len(donors) == 0 {
			return nil, fmt.Errorf("donor profile not found: %w", pkgErrors.ErrNotFound)
		}
		return donors[0], nil
	case domain.RoleAdmin:
		admins, err := as.adminRepo.GetByEmails(ctx, nil, []string{user.Email})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch admin profile: %w", err)
		}
		if len(admins) == 0 {
			return nil, fmt.Errorf("admin profile not found: %w", pkgErrors.ErrNotFound)
		}
		return admins[0], nil
	case domain.RoleFamily:
		families, err := as.familyRepo.GetByUserIDs(ctx, nil, []uuid.UUID{user.ID})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch family profile: %w", err)
		}
		if len(families) == 0 {
			return nil, fmt.Errorf("family profile not found: %w", pkgErrors.ErrNotFound)
		}
		return families[0], nil
	}
	return nil, fmt.Errorf("unknown role %q: %w", user.Role, pkgErrors.ErrInvalidArgument)
}

func (as *authService) generateToken(user *domain.User, profile interface{}) (string, error) {
	claims := JWTClaims{
		Email: user.Email,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	switch p := profile.(type) {
	case *domain.Donor:
		claims.ProfileID = p.ID.String()
	case *domain.Admin:
		claims.ProfileID = p.ID.String()
	case *domain.Family:
		claims.ProfileID = p.ID.String()
		claims.FamilyCode = p.FamilyCode
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken verifies the signature and expiry and attaches the
// caller identity to the context for downstream authorization.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("access token required: %w", pkgErrors.ErrUnauthorized)
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("invalid or expired token: %w", pkgErrors.ErrForbidden)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token: %w", pkgErrors.ErrForbidden)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", pkgErrors.ErrForbidden)
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return ctx, fmt.Errorf("invalid role in token: %w", pkgErrors.ErrForbidden)
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       claims.Email,
		Role:        role,
		FamilyCode:  claims.FamilyCode,
	}
	if claims.ProfileID != "" {
		profileID, err := uuid.Parse(claims.ProfileID)
		if err != nil {
			return ctx, fmt.Errorf("invalid profile id in token: %w", pkgErrors.ErrForbidden)
		}
		rd.ProfileID = profileID
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetTokenTTL() time.Duration {
	return as.tokenTTL
}
