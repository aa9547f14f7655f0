package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/upb/recruitment-platform/utils"
	"go.uber.org/zap"
)

// TokenValidator verifies a bearer token and returns the caller it belongs to
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*Identity, error)
}

// RoleChecker decides whether a subject holds a role. Implementations fail
// closed: lookup errors answer false.
type RoleChecker interface {
	HasRole(ctx context.Context, subject, role string) bool
}

// AuthMiddleware provides authentication and authorization middleware
type AuthMiddleware struct {
	validator     TokenValidator
	roles         RoleChecker
	verifyTimeout time.Duration
	logger        *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware; verifyTimeout bounds each
// token verification when positive
func NewAuthMiddleware(validator TokenValidator, roles RoleChecker, verifyTimeout time.Duration, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator:     validator,
		roles:         roles,
		verifyTimeout: verifyTimeout,
		logger:        logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// caller identity to the context of those that have one
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)

		token := extractBearerToken(r)
		if token == "" {
			m.logger.Warn("missing token",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Missing or invalid authorization")
			return
		}

		identity, err := m.verify(ctx, token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}
		if identity == nil || identity.Subject == "" {
			m.logger.Warn("token carries no subject",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Invalid or expired token")
			return
		}

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("sub", identity.Subject))

		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

func (m *AuthMiddleware) verify(ctx context.Context, token string) (*Identity, error) {
	if m.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.verifyTimeout)
		defer cancel()
	}
	return m.validator.ValidateToken(ctx, token)
}

// RequireRole lets the request through only when the authenticated caller
// holds role. It must be chained after RequireAuth.
func (m *AuthMiddleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			identity := IdentityFromContext(ctx)
			if identity == nil {
				m.logger.Error("identity not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			if !m.roles.HasRole(ctx, identity.Subject, role) {
				m.logger.Warn("insufficient permissions",
					zap.String("request_id", requestID),
					zap.String("sub", identity.Subject),
					zap.String("required_role", role))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			m.logger.Debug("role check passed",
				zap.String("request_id", requestID),
				zap.String("sub", identity.Subject),
				zap.String("required_role", role))

			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
