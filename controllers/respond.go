package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/logger"
	"github.com/dcode-github/realty_portal/mail"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
	"github.com/dcode-github/realty_portal/workflows"
)

const maxBodyBytes = 1 << 20

var errBadPayload = errors.New("invalid request payload")

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func success(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, models.APIResponse{Success: true, Message: message, Data: data})
}

// statusFor maps the error taxonomy onto HTTP status codes and the message
// shown to the caller.
func statusFor(err error) (int, string) {
	var verrs forms.ValidationErrors
	var perm *store.PermissionError
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, "Please correct the highlighted fields."
	case errors.Is(err, errBadPayload):
		return http.StatusBadRequest, "Invalid request payload"
	case errors.As(err, &perm):
		return http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, "The listing store is not available. Please try again shortly."
	case errors.Is(err, workflows.ErrBusy), errors.Is(err, workflows.ErrTerminalStatus):
		return http.StatusConflict, err.Error()
	case errors.Is(err, workflows.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "Deletion must be confirmed with confirm=true"
	case errors.Is(err, workflows.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, mail.ErrNotConfigured):
		return http.StatusInternalServerError, "Email service is not configured."
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, auth.ErrNoSession):
		return http.StatusUnauthorized, "Invalid or expired token"
	default:
		return http.StatusInternalServerError, "Something went wrong"
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Info("Request rejected", zap.Int("status", status), zap.Error(err))
	}

	resp := models.APIResponse{Success: false, Message: message}
	var verrs forms.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Data = map[string]interface{}{"errors": verrs}
		if msg, same := sharedMessage(verrs); same {
			resp.Message = msg
		}
	}
	writeJSON(w, status, resp)
}

// sharedMessage reports the single message all failures agree on, as with
// the mail dispatch schema.
func sharedMessage(verrs forms.ValidationErrors) (string, bool) {
	msg := ""
	for _, m := range verrs {
		if msg != "" && m != msg {
			return "", false
		}
		msg = m
	}
	return msg, msg != ""
}

// decodeForm reads a JSON object or a urlencoded form into field text.
func decodeForm(r *http.Request) (forms.Form, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", errBadPayload, err)
		}
		form := forms.Form{}
		for key, values := range r.PostForm {
			form[key] = forms.JoinList(values)
		}
		return form, nil
	}

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return forms.Form{}, nil
		}
		return nil, fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return forms.FormFromJSON(body), nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func errorBody(message string) models.APIResponse {
	return models.APIResponse{Success: false, Message: message}
}

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		success(w, http.StatusOK, "ok", nil)
	}
}
