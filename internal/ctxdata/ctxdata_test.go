package ctxdata

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bimbingan_service/internal/domain"
)

func TestTraceID(t *testing.T) {
	_, ok := GetTraceID(context.Background())
	assert.False(t, ok)

	ctx := WithTraceID(context.Background(), "trace-1")
	got, ok := GetTraceID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trace-1", got)
}

func TestPrincipal(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)

	p := domain.Principal{ID: uuid.New(), Role: domain.RoleAdvisor, Status: domain.UserStatusActive}
	got, ok := GetPrincipal(WithPrincipal(context.Background(), p))
	assert.True(t, ok)
	assert.Equal(t, p, got)
}
