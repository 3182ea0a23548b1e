package ctxdata

import (
	"context"

	"bimbingan_service/internal/domain"
)

type traceIDKey struct{}
type principalKey struct{}

var (
	traceIDKeyInstance   = traceIDKey{}
	principalKeyInstance = principalKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKeyInstance, p)
}

func GetPrincipal(ctx context.Context) (domain.Principal, bool) {
	v := ctx.Value(principalKeyInstance)
	p, ok := v.(domain.Principal)
	return p, ok
}
