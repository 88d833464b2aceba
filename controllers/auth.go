package controllers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/logger"
	"github.com/dcode-github/realty_portal/utils"
)

type ContextKey string

const ClaimsKey = ContextKey("claims")

func LoginUser(authService *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		v, err := forms.LoginSchema.Validate(form)
		if err != nil {
			writeError(w, r, err)
			return
		}

		session, err := authService.SignIn(r.Context(), v.String("email"), v.String("password"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("Admin signed in", zap.String("userID", session.UserID))
		success(w, http.StatusOK, "Login successful", session)
	}
}

func LogoutUser(authService *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, _ := BearerToken(r)
		if err := authService.SignOut(r.Context(), token); err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Logged out", nil)
	}
}

// GetSession echoes the claims the auth middleware attached.
func GetSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, found := r.Context().Value(ClaimsKey).(*utils.Claims)
		if !found {
			writeError(w, r, auth.ErrNoSession)
			return
		}
		success(w, http.StatusOK, "", auth.Session{
			UserID:    claims.UserID,
			Email:     claims.Email,
			ExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
		})
	}
}
