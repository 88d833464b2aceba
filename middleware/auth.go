package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/controllers"
	"github.com/dcode-github/realty_portal/logger"
)

// AuthMiddleware admits requests carrying a live admin session and attaches
// its claims to the request context.
func AuthMiddleware(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			if r.Header.Get("Authorization") == "" {
				log.Info("Missing Authorization header", zap.String("method", r.Method), zap.String("path", r.URL.Path))
				unauthorized(w, "Missing Authorization header")
				return
			}

			token, found := controllers.BearerToken(r)
			if !found {
				log.Info("Invalid Authorization header format", zap.String("method", r.Method), zap.String("path", r.URL.Path))
				unauthorized(w, "Invalid Authorization header format")
				return
			}

			claims, err := authService.Current(r.Context(), token)
			if err != nil {
				log.Info("Invalid or expired token", zap.Error(err))
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), controllers.ClaimsKey, claims)
			ctx = logger.WithContext(ctx, log.With(zap.String("admin", claims.UserID)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"` + message + `"}`))
}
