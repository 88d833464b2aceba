package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/display"
	"github.com/dcode-github/realty_portal/feeds"
	"github.com/dcode-github/realty_portal/filters"
	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/workflows"
)

// GetAllProperties serves the curated residential page from the live feed.
func GetAllProperties(feed *feeds.Feed[models.Property], l Listings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := filters.ParsePropertyQuery(r.URL.Query())
		l.serve(w, r, cache.SurfaceProperties, feed, criteria, func() (interface{}, int) {
			matched := filters.FilterProperties(feed.Items(), criteria)
			return display.PropertyCards(matched), len(matched)
		})
	}
}

func GetCommercialProperties(feed *feeds.Feed[models.Property], l Listings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := filters.ParseCommercialQuery(r.URL.Query())
		l.serve(w, r, cache.SurfaceCommercial, feed, criteria, func() (interface{}, int) {
			matched := filters.FilterCommercial(feed.Items(), criteria)
			return display.PropertyCards(matched), len(matched)
		})
	}
}

func GetPropertyByID(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProperty(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", display.NewPropertyDetail(p))
	}
}

func ListAdminProperties(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		properties, err := svc.ListProperties(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", properties)
	}
}

// GetAdminProperty returns the record together with its edit-form prefill.
func GetAdminProperty(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProperty(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", map[string]interface{}{
			"property": p,
			"form":     forms.PropertyForm(p),
		})
	}
}

func CreateProperty(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		p, err := svc.CreateProperty(r.Context(), form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusCreated, "Property created successfully", p)
	}
}

func UpdateProperty(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		p, err := svc.UpdateProperty(r.Context(), mux.Vars(r)["id"], form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Property updated successfully", p)
	}
}

func DeleteProperty(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProperty(r.Context(), mux.Vars(r)["id"], confirmed(r)); err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Property deleted successfully", nil)
	}
}

func confirmed(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return err == nil && v
}
