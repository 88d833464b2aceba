package workflows

import (
	"context"

	"github.com/dcode-github/realty_portal/models"
)

const dashboardRecent = 5

type Dashboard struct {
	Properties           int                          `json:"properties"`
	CommunityListings    int                          `json:"communityListings"`
	Consultations        int                          `json:"consultations"`
	Inquiries            int                          `json:"inquiries"`
	PendingConsultations int                          `json:"pendingConsultations"`
	RecentPending        []models.ConsultationRequest `json:"recentPending"`
	RecentInquiries      []models.CommunityInquiry    `json:"recentInquiries"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	properties, err := s.ListProperties(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	listings, err := s.ListCommunityListings(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	consultations, err := s.ListConsultations(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	inquiries, err := s.ListInquiries(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Properties:        len(properties),
		CommunityListings: len(listings),
		Consultations:     len(consultations),
		Inquiries:         len(inquiries),
		RecentPending:     []models.ConsultationRequest{},
		RecentInquiries:   []models.CommunityInquiry{},
	}
	for _, c := range consultations {
		if !c.IsPending() {
			continue
		}
		d.PendingConsultations++
		if len(d.RecentPending) < dashboardRecent {
			d.RecentPending = append(d.RecentPending, c)
		}
	}
	if len(inquiries) > dashboardRecent {
		inquiries = inquiries[:dashboardRecent]
	}
	d.RecentInquiries = append(d.RecentInquiries, inquiries...)
	return d, nil
}
