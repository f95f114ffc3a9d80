package model

import (
	"context"

	"github.com/google/uuid"
)

// ContextManager carries the authenticated user ID through a request's
// context. The identity lives only as long as the request does.
type ContextManager interface {
	SetUserID(ctx context.Context, userID uuid.UUID) context.Context
	UserID(ctx context.Context) (uuid.UUID, bool)
}
