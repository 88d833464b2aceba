package controllers

import (
	"net/http"

	"github.com/dcode-github/realty_portal/display"
	"github.com/dcode-github/realty_portal/workflows"
)

func GetDashboard(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", d)
	}
}

// GetPermissionErrors lists the most recent access-control rejections.
func GetPermissionErrors(collector *workflows.Collector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		success(w, http.StatusOK, "", collector.Events())
	}
}

// ConvertDriveURL turns a Drive share link into a direct image link and
// appends it to the submitted image list.
func ConvertDriveURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		link, err := display.ConvertDriveURL(form["url"])
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		success(w, http.StatusOK, "", map[string]string{
			"url":    link,
			"images": display.AppendImage(form["images"], link),
		})
	}
}

// SendContact mails a property contact form to the brokerage inbox.
func SendContact(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.SendContact(r.Context(), form); err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Thank you for your inquiry. We will get back to you soon.", nil)
	}
}

func SendEmail(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := svc.SendEmail(r.Context(), form); err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Email sent successfully", nil)
	}
}
