package domain

import (
	"fmt"
	"strings"

	pkgErrors "github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/errors"
)

// Role is the closed set of account roles. Values are stored uppercase; any
// other value is rejected at the boundary instead of falling through.
type Role string

const (
	RoleDonor  Role = "DONOR"
	RoleFamily Role = "FAMILY"
	RoleAdmin  Role = "ADMIN"
)

func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleDonor:
		return RoleDonor, nil
	case RoleFamily:
		return RoleFamily, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role %q: %w", raw, pkgErrors.ErrInvalidArgument)
	}
}

// VerificationStatus drives the family trust state machine:
// PENDING -> VERIFIED | REJECTED.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

func ParseVerificationStatus(raw string) (VerificationStatus, error) {
	switch VerificationStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case VerificationPending:
		return VerificationPending, nil
	case VerificationVerified:
		return VerificationVerified, nil
	case VerificationRejected:
		return VerificationRejected, nil
	default:
		return "", fmt.Errorf("unknown verification status %q: %w", raw, pkgErrors.ErrInvalidArgument)
	}
}

// ParseVerificationDecision accepts only the two terminal outcomes an
// administrator may pick; PENDING is not a valid decision.
func ParseVerificationDecision(raw string) (VerificationStatus, error) {
	switch VerificationStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case VerificationVerified:
		return VerificationVerified, nil
	case VerificationRejected:
		return VerificationRejected, nil
	default:
		return "", fmt.Errorf("unknown verification decision %q: %w", raw, pkgErrors.ErrInvalidArgument)
	}
}

type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "LOW"
	PriorityMedium PriorityLevel = "MEDIUM"
	PriorityHigh   PriorityLevel = "HIGH"
)

func ParsePriorityLevel(raw string) (PriorityLevel, error) {
	switch PriorityLevel(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("unknown priority level %q: %w", raw, pkgErrors.ErrInvalidArgument)
	}
}

// Admin permission tags. The first admin ever created is granted SUPER_ADMIN,
// every later one BASIC_ADMIN; no update path may escalate.
const (
	PermissionSuperAdmin = "SUPER_ADMIN"
	PermissionBasicAdmin = "BASIC_ADMIN"
)
