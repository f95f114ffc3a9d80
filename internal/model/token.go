package model

import "github.com/google/uuid"

// TokenManager mints and validates signed identity tokens.
type TokenManager interface {
	Generate(userID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}
