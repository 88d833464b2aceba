package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/display"
	"github.com/dcode-github/realty_portal/feeds"
	"github.com/dcode-github/realty_portal/filters"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/workflows"
)

// GetCommunityListings serves the community board. Items never carry the
// owner's email or phone.
func GetCommunityListings(feed *feeds.Feed[models.CommunityListing], l Listings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria := filters.ParseCommunityQuery(r.URL.Query())
		l.serve(w, r, cache.SurfaceCommunity, feed, criteria, func() (interface{}, int) {
			matched := filters.FilterCommunity(feed.Items(), criteria)
			return display.CommunityCards(matched), len(matched)
		})
	}
}

func GetCommunityListing(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := svc.GetCommunityListing(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", display.NewCommunityDetail(listing))
	}
}

// SubmitInquiry records the visitor's inquiry and answers with the owner's
// contact details.
func SubmitInquiry(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		contact, err := svc.SubmitInquiry(r.Context(), mux.Vars(r)["id"], form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusCreated, "Inquiry submitted", contact)
	}
}

func ListAdminCommunityListings(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := svc.ListCommunityListings(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", listings)
	}
}

func GetAdminCommunityListing(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listing, err := svc.GetCommunityListing(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "", listing)
	}
}

func CreateCommunityListing(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		listing, err := svc.CreateCommunityListing(r.Context(), form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusCreated, "Listing created successfully", listing)
	}
}

func UpdateCommunityListing(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, err := decodeForm(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		listing, err := svc.UpdateCommunityListing(r.Context(), mux.Vars(r)["id"], form)
		if err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Listing updated successfully", listing)
	}
}

func DeleteCommunityListing(svc *workflows.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCommunityListing(r.Context(), mux.Vars(r)["id"], confirmed(r)); err != nil {
			writeError(w, r, err)
			return
		}
		success(w, http.StatusOK, "Listing deleted successfully", nil)
	}
}
