package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	uc := &UserContext{UserID: "user-1", Username: "alice"}
	ctx := WithUserContext(context.Background(), uc)

	got := UserContextFromContext(ctx)
	assert.Equal(t, uc, got)
	assert.Equal(t, "user-1", ResolveUserID(ctx))
}

func TestResolveUserID_Unauthenticated(t *testing.T) {
	assert.Empty(t, ResolveUserID(context.Background()))
	assert.Nil(t, UserContextFromContext(context.Background()))
}
