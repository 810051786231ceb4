package middleware

import (
	"net/http"

	"wedding-marketplace/pkg/apperror"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// Recover middleware
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					utils.ResponseError(w, http.StatusInternalServerError, string(apperror.KindInternal), "Internal server error", nil)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
