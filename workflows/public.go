package workflows

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/mail"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
)

// SubmitInquiry records a visitor's inquiry on a community listing and only
// then returns the owner's contact details. A failed write reveals nothing.
func (s *Service) SubmitInquiry(ctx context.Context, listingID string, form forms.Form) (models.OwnerContact, error) {
	v, err := forms.InquirySchema.Validate(form)
	if err != nil {
		return models.OwnerContact{}, err
	}
	if err := s.available(); err != nil {
		return models.OwnerContact{}, err
	}

	var listing models.CommunityListing
	if err := s.store.Get(ctx, models.CollectionCommunity, listingID, &listing); err != nil {
		return models.OwnerContact{}, err
	}

	inquiry := forms.DecodeInquiry(v, listing.ID, listing.Title)
	if inquiry.ListingID == "" {
		inquiry.ListingID = listingID
	}
	inquiry.CreatedAt = s.now().UTC()
	id, err := s.store.Create(ctx, models.CollectionInquiries, inquiry)
	if err := s.failed(ctx, "inquiry", store.OpCreate, err); err != nil {
		return models.OwnerContact{}, err
	}

	s.logger(ctx).Info("Inquiry recorded", zap.String("id", id), zap.String("listing", listingID))
	return listing.Contact(), nil
}

func (s *Service) ListInquiries(ctx context.Context) ([]models.CommunityInquiry, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	out := []models.CommunityInquiry{}
	q := store.Query{Collection: models.CollectionInquiries, OrderBy: "createdAt", Descending: true}
	if err := s.store.List(ctx, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendContact mails a property contact form to the brokerage inbox.
func (s *Service) SendContact(ctx context.Context, form forms.Form) error {
	v, err := forms.ContactSchema.Validate(form)
	if err != nil {
		return err
	}
	if !mail.Configured(s.mailer) {
		return mail.ErrNotConfigured
	}

	lines := []string{
		"Name: " + v.String("name"),
		"Email: " + v.String("email"),
		"Phone: " + v.String("phone"),
		"Property: " + v.String("propertyTitle"),
		"Link: " + v.String("propertyUrl"),
		"",
		v.String("message"),
	}
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = html.EscapeString(l)
	}
	msg := mail.Message{
		To:      s.adminInbox,
		Subject: fmt.Sprintf("New inquiry for %s", v.String("propertyTitle")),
		Text:    strings.Join(lines, "\n"),
		HTML:    "<p>" + strings.Join(escaped, "<br>") + "</p>",
	}
	err = s.mailer.Send(ctx, msg)
	if s.metrics != nil {
		s.metrics.Mutation("contact", "send", err)
	}
	return err
}

// SendEmail backs the mail dispatch endpoint. An unconfigured sender is
// reported before the message is looked at.
func (s *Service) SendEmail(ctx context.Context, form forms.Form) error {
	if !mail.Configured(s.mailer) {
		return mail.ErrNotConfigured
	}
	v, err := forms.EmailSchema.Validate(form)
	if err != nil {
		return err
	}
	if !s.relayAllowed(v.String("to")) {
		return forms.ValidationErrors{"to": "Recipient is not allowed."}
	}
	err = s.mailer.Send(ctx, mail.Message{
		To:      v.String("to"),
		Subject: v.String("subject"),
		Text:    v.String("text"),
		HTML:    v.String("html"),
	})
	if s.metrics != nil {
		s.metrics.Mutation("email", "send", err)
	}
	return err
}

// relayAllowed limits the public mail endpoint to the brokerage inbox and
// the configured relay recipients.
func (s *Service) relayAllowed(to string) bool {
	to = strings.TrimSpace(to)
	if s.adminInbox != "" && strings.EqualFold(to, s.adminInbox) {
		return true
	}
	for _, r := range s.relay {
		if strings.EqualFold(to, r) {
			return true
		}
	}
	return false
}
