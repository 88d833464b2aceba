package workflows

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
)

// EmailDraft is a notification for the operator to send by hand.
type EmailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailto renders the draft as a mailto link for the operator's mail client.
func (d EmailDraft) Mailto() string {
	q := url.Values{"subject": {d.Subject}, "body": {d.Body}}
	return "mailto:" + d.To + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
}

func approvalDraft(req models.ConsultationRequest, schedulingLink string) EmailDraft {
	return EmailDraft{
		To:      req.Email,
		Subject: "Your Consultation Request has been Approved.",
		Body: fmt.Sprintf("Dear %s,\n\n"+
			"We are pleased to inform you that your request for a property consultation has been approved. "+
			"Our team has verified your payment and is ready to assist you.\n\n"+
			"To schedule your session, please use the following link:\n%s\n\n"+
			"We look forward to speaking with you!\n\n"+
			"Best regards,\nThe Sudha Realty Team", req.Name, schedulingLink),
	}
}

func rejectionDraft(req models.ConsultationRequest) EmailDraft {
	return EmailDraft{
		To:      req.Email,
		Subject: "Update on Your Consultation Request",
		Body: fmt.Sprintf("Dear %s,\n\n"+
			"Thank you for your interest in a consultation with Sudha Realty. "+
			"After reviewing your request, we were unable to proceed at this time.\n\n"+
			"This is often due to an issue with payment verification. "+
			"If you believe this is an error, please ensure your payment with Transaction ID %s "+
			"was completed successfully and feel free to contact us.\n\n"+
			"We appreciate your understanding.\n\n"+
			"Best regards,\nThe Sudha Realty Team", req.Name, req.TransactionID),
	}
}

// TransitionConsultation moves a pending request to approved or rejected.
//
// The status write is issued first but is not awaited: the draft is returned
// straight away and the write outcome arrives later on the returned channel,
// which receives exactly one value and is then closed. The draft can
// therefore exist for a write that ends up failing.
func (s *Service) TransitionConsultation(ctx context.Context, id, status string) (EmailDraft, <-chan error, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return EmailDraft{}, nil, ErrInvalidStatus
	}
	if err := s.available(); err != nil {
		return EmailDraft{}, nil, err
	}
	release, err := s.inflight.acquire(models.CollectionConsultations, id)
	if err != nil {
		return EmailDraft{}, nil, err
	}

	var req models.ConsultationRequest
	if err := s.store.Get(ctx, models.CollectionConsultations, id, &req); err != nil {
		release()
		return EmailDraft{}, nil, err
	}
	if !req.IsPending() {
		release()
		return EmailDraft{}, nil, ErrTerminalStatus
	}

	result := make(chan error, 1)
	writeCtx := context.WithoutCancel(ctx)
	log := s.logger(ctx).With(zap.String("consultation", id), zap.String("status", status))
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(result)
		defer release()
		err := s.store.Update(writeCtx, models.CollectionConsultations, id, map[string]interface{}{"status": status})
		if err = s.failed(writeCtx, "consultation", store.OpUpdate, err); err == nil {
			log.Info("Consultation status updated")
		}
		result <- err
	}()

	if status == models.StatusApproved {
		return approvalDraft(req, s.schedulingLink), result, nil
	}
	return rejectionDraft(req), result, nil
}

// SubmitConsultation records a public booking as pending.
func (s *Service) SubmitConsultation(ctx context.Context, form forms.Form) (models.ConsultationRequest, error) {
	v, err := forms.ConsultationSchema.Validate(form)
	if err != nil {
		return models.ConsultationRequest{}, err
	}
	if err := s.available(); err != nil {
		return models.ConsultationRequest{}, err
	}
	req := forms.DecodeConsultation(v)
	req.Status = models.StatusPending
	req.CreatedAt = s.now().UTC()

	id, err := s.store.Create(ctx, models.CollectionConsultations, req)
	if err := s.failed(ctx, "consultation", store.OpCreate, err); err != nil {
		return models.ConsultationRequest{}, err
	}
	req.ID = id
	return req, nil
}

func (s *Service) ListConsultations(ctx context.Context) ([]models.ConsultationRequest, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	out := []models.ConsultationRequest{}
	q := store.Query{Collection: models.CollectionConsultations, OrderBy: "createdAt", Descending: true}
	if err := s.store.List(ctx, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
