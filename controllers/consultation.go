package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/realty_portal/workflows"
)

func SubmitConsultation(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		req, err := svc.SubmitConsultation(r.Context(), form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusCreated, "Your consultation request has been submitted. We will verify your payment and get back to you.", req)
	}
}

func ListConsultations(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := svc.ListConsultations(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", requests)
	}
}

type transitionResponse struct {
	Draft  workflows.EmailDraft `json:"draft"`
	Mailto string               `json:"mailto"`
}

// TransitionConsultation answers with the notification draft as soon as the
// status write has been issued. The write itself finishes in the background.
func TransitionConsultation(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		draft, _, err := svc.TransitionConsultation(r.Context(), mux.Vars(r)["id"], form["status"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusAccepted, "Status update submitted", transitionResponse{Draft: draft, Mailto: draft.Mailto()})
	}
}

func ListInquiries(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inquiries, err := svc.ListInquiries(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", inquiries)
	}
}
