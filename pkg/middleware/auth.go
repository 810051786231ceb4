package middleware

import (
	"errors"
	"net/http"
	"strings"

	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bearerToken reads "Authorization: Bearer <token>". Websocket handshakes may
// pass the token as ?token= because browsers cannot set headers on them.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			if t := r.URL.Query().Get("token"); t != "" {
				return t, true
			}
		}
		return "", false
	}

	scheme, value, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(value) == "" {
		return "", false
	}
	return strings.TrimSpace(value), true
}

func unauthenticated(w http.ResponseWriter, kind apperror.Kind, message string) {
	utils.ResponseError(w, http.StatusUnauthorized, string(kind), message, nil)
}

// Authenticate validates the JWT and puts account id, role and jti on the context.
func Authenticate(tokens *token.Manager, revocations token.RevocationStore, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthenticated(w, apperror.KindUnauthenticated, "Missing or malformed authorization token. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				if errors.Is(err, token.ErrExpiredToken) {
					unauthenticated(w, apperror.KindTokenExpired, "Token expired")
					return
				}
				logger.Warn("Invalid token", zap.String("path", r.URL.Path), zap.Error(err))
				unauthenticated(w, apperror.KindUnauthenticated, "Invalid token")
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("Failed to check token revocation", zap.Error(err))
				utils.ResponseError(w, http.StatusInternalServerError, string(apperror.KindInternal), "Internal server error", nil)
				return
			}
			if revoked {
				unauthenticated(w, apperror.KindUnauthenticated, "Token has been revoked")
				return
			}

			userID, err := claims.UserID()
			if err != nil || userID == uuid.Nil {
				logger.Warn("Token subject is not an account id", zap.String("path", r.URL.Path))
				unauthenticated(w, apperror.KindUnauthenticated, "Invalid token")
				return
			}
			ctx := utils.SetUserContext(r.Context(), userID, claims.Role)
			ctx = utils.SetTokenIDContext(ctx, claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after Authenticate.
func RequireRole(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				unauthenticated(w, apperror.KindUnauthenticated, "Authentication required")
				return
			}

			if !allowed[role] {
				logger.Warn("Role check failed",
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseError(w, http.StatusForbidden, string(apperror.KindForbidden), "Access denied for role "+role, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
