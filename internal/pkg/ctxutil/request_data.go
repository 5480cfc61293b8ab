package ctxutil

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
)

type requestDataKey struct{}

// RequestData carries the authenticated caller's identity through the request
// context. ProfileID is the role profile row id; FamilyCode is set only for
// FAMILY accounts.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
	Email       string
	Role        domain.Role
	ProfileID   uuid.UUID
	FamilyCode  string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey{})
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
