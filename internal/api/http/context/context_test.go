package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManager_SetAndGetUserID(t *testing.T) {
	m := NewManager()
	uid := uuid.New()
	ctx := m.SetUserID(stdctx.Background(), uid)

	got, ok := m.UserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, uid, got)
}

func TestManager_UserID_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.UserID(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_UserID_NilUUID(t *testing.T) {
	m := NewManager()
	ctx := m.SetUserID(stdctx.Background(), uuid.Nil)

	_, ok := m.UserID(ctx)
	assert.False(t, ok)
}
