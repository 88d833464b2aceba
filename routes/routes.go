package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/realty_portal/auth"
	"github.com/dcode-github/realty_portal/controllers"
	"github.com/dcode-github/realty_portal/feeds"
	"github.com/dcode-github/realty_portal/metrics"
	"github.com/dcode-github/realty_portal/middleware"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/workflows"
)

// App is everything the routes hand to their controllers.
type App struct {
	Workflows  *workflows.Service
	Auth       *auth.Service
	Properties *feeds.Feed[models.Property]
	Community  *feeds.Feed[models.CommunityListing]
	Listings   controllers.Listings
	Collector  *workflows.Collector
	Metrics    *metrics.Metrics
}

func Routes(router *mux.Router, app App) {
	if app.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(app.Metrics))
		router.Handle("/metrics", app.Metrics.Handler()).Methods(http.MethodGet)
	}
	router.HandleFunc("/health", controllers.Health()).Methods(http.MethodGet)

	// Auth routes
	router.HandleFunc("/login", controllers.LoginUser(app.Auth)).Methods(http.MethodPost)

	// Routes that require an admin session
	admin := router.PathPrefix("/api/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware(app.Auth))

	admin.HandleFunc("/session", controllers.GetSession()).Methods(http.MethodGet)
	admin.HandleFunc("/logout", controllers.LogoutUser(app.Auth)).Methods(http.MethodPost)
	admin.HandleFunc("/dashboard", controllers.GetDashboard(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/drive-url", controllers.ConvertDriveURL()).Methods(http.MethodPost)
	if app.Collector != nil {
		admin.HandleFunc("/permission-errors", controllers.GetPermissionErrors(app.Collector)).Methods(http.MethodGet)
	}

	// Property routes
	admin.HandleFunc("/properties", controllers.ListAdminProperties(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/properties", controllers.CreateProperty(app.Workflows)).Methods(http.MethodPost)
	admin.HandleFunc("/properties/{id}", controllers.GetAdminProperty(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/properties/{id}", controllers.UpdateProperty(app.Workflows)).Methods(http.MethodPut)
	admin.HandleFunc("/properties/{id}", controllers.DeleteProperty(app.Workflows)).Methods(http.MethodDelete)

	// Community listing routes
	admin.HandleFunc("/community-listings", controllers.ListAdminCommunityListings(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/community-listings", controllers.CreateCommunityListing(app.Workflows)).Methods(http.MethodPost)
	admin.HandleFunc("/community-listings/{id}", controllers.GetAdminCommunityListing(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/community-listings/{id}", controllers.UpdateCommunityListing(app.Workflows)).Methods(http.MethodPut)
	admin.HandleFunc("/community-listings/{id}", controllers.DeleteCommunityListing(app.Workflows)).Methods(http.MethodDelete)

	// Consultation and inquiry routes
	admin.HandleFunc("/consultations", controllers.ListConsultations(app.Workflows)).Methods(http.MethodGet)
	admin.HandleFunc("/consultations/{id}/status", controllers.TransitionConsultation(app.Workflows)).Methods(http.MethodPost)
	admin.HandleFunc("/inquiries", controllers.ListInquiries(app.Workflows)).Methods(http.MethodGet)

	// Public routes
	public := router.PathPrefix("/api").Subrouter()
	public.HandleFunc("/properties", controllers.GetAllProperties(app.Properties, app.Listings)).Methods(http.MethodGet)
	public.HandleFunc("/properties/{id}", controllers.GetPropertyByID(app.Workflows)).Methods(http.MethodGet)
	public.HandleFunc("/commercial", controllers.GetCommercialProperties(app.Properties, app.Listings)).Methods(http.MethodGet)
	public.HandleFunc("/community-listings", controllers.GetCommunityListings(app.Community, app.Listings)).Methods(http.MethodGet)
	public.HandleFunc("/community-listings/{id}", controllers.GetCommunityListing(app.Workflows)).Methods(http.MethodGet)
	public.HandleFunc("/community-listings/{id}/inquiries", controllers.SubmitInquiry(app.Workflows)).Methods(http.MethodPost)
	public.HandleFunc("/consultations", controllers.SubmitConsultation(app.Workflows)).Methods(http.MethodPost)
	public.HandleFunc("/contact", controllers.SendContact(app.Workflows)).Methods(http.MethodPost)
	public.HandleFunc("/send-email", controllers.SendEmail(app.Workflows)).Methods(http.MethodPost)
}
