package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/avoronin/devconnect-server/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)
	got, err := j.Parse(tokenString)
	require.NoError(t, err)
	require.Equal(t, u, got)
}

func TestJWT_Parse_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Parse_WrongKey(t *testing.T) {
	u := uuid.New()

	tokenString, err := NewJWT("secret", time.Hour).Generate(u)
	require.NoError(t, err)

	_, err = NewJWT("other-secret", time.Hour).Parse(tokenString)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Parse_Malformed(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.Parse(tokenString)
		require.ErrorIs(t, err, model.ErrInvalidToken)
	}
}

func TestJWT_Parse_Tampered(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	u := uuid.New()

	tokenString, err := j.Generate(u)
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = j.Parse(tampered)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestJWT_Parse_NilUserID(t *testing.T) {
	j := NewJWT("secret", time.Hour)

	tokenString, err := j.Generate(uuid.Nil)
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}
