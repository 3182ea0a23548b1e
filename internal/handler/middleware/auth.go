package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bimbingan_service/internal/ctxdata"
	"bimbingan_service/internal/domain"
	"bimbingan_service/internal/logging"
)

const (
	HeaderUserID     = "X-User-Id"
	HeaderUserRole   = "X-User-Role"
	HeaderUserStatus = "X-User-Status"
)

// NewAuthMiddleware trusts the identity headers set by the upstream gateway.
func NewAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, err := uuid.Parse(r.Header.Get(HeaderUserID))
			if err != nil {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "missing or malformed user id", zap.String("path", r.URL.Path))
				}
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			role, ok := domain.ParseRole(r.Header.Get(HeaderUserRole))
			if !ok {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "unknown user role",
						zap.String("path", r.URL.Path),
						zap.String("role", r.Header.Get(HeaderUserRole)),
					)
				}
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			status := domain.UserStatus(r.Header.Get(HeaderUserStatus))
			if status != domain.UserStatusActive {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "inactive user", zap.String("user_id", id.String()))
				}
				w.WriteHeader(http.StatusForbidden)
				return
			}

			ctx = ctxdata.WithPrincipal(ctx, domain.Principal{ID: id, Role: role, Status: status})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
