package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/mail"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
)

// hookedStore lets a test intercept writes on top of the memory store.
type hookedStore struct {
	*store.MemoryStore

	mu       sync.Mutex
	calls    []string
	onUpdate func(collection, id string) error
	onCreate func(collection string) error
	onDelete func(collection, id string) error
}

func newHookedStore() *hookedStore {
	return &hookedStore{MemoryStore: store.NewMemoryStore()}
}

func (h *hookedStore) record(call string) {
	h.mu.Lock()
	h.calls = append(h.calls, call)
	h.mu.Unlock()
}

func (h *hookedStore) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.calls...)
}

func (h *hookedStore) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	h.record("create:" + collection)
	if h.onCreate != nil {
		if err := h.onCreate(collection); err != nil {
			return "", err
		}
	}
	return h.MemoryStore.Create(ctx, collection, doc)
}

func (h *hookedStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	h.record("update:" + collection)
	if h.onUpdate != nil {
		if err := h.onUpdate(collection, id); err != nil {
			return err
		}
	}
	return h.MemoryStore.Update(ctx, collection, id, fields)
}

func (h *hookedStore) Delete(ctx context.Context, collection, id string) error {
	h.record("delete:" + collection)
	if h.onDelete != nil {
		if err := h.onDelete(collection, id); err != nil {
			return err
		}
	}
	return h.MemoryStore.Delete(ctx, collection, id)
}

type fixture struct {
	svc       *Service
	store     *hookedStore
	collector *Collector
	mailer    *mail.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newHookedStore()
	collector := NewCollector(nil)
	mailer := &mail.Recorder{}
	svc := New(Deps{
		Store:      st,
		Mailer:     mailer,
		Reporter:   collector,
		Logger:     zap.NewNop(),
		AdminInbox: "admin@sudharealty.in",
		Now:        func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) },
	})
	t.Cleanup(svc.Wait)
	return &fixture{svc: svc, store: st, collector: collector, mailer: mailer}
}

func (f *fixture) consultation(t *testing.T, status string) string {
	t.Helper()
	id, err := f.store.MemoryStore.Create(context.Background(), models.CollectionConsultations, models.ConsultationRequest{
		TransactionID: "TXN98765",
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Message:       "Looking for a villa near the airport.",
		Status:        status,
		CreatedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)
	return id
}

func TestTransitionApproveDraft(t *testing.T) {
	f := newFixture(t)
	id := f.consultation(t, models.StatusPending)

	draft, result, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", draft.To)
	assert.Equal(t, "Your Consultation Request has been Approved.", draft.Subject)
	assert.Equal(t, "Dear Ravi Kumar,\n\nWe are pleased to inform you that your request for a property consultation has been approved. "+
		"Our team has verified your payment and is ready to assist you.\n\nTo schedule your session, please use the following link:\n"+
		"https://cal.com/jayendrat/property-consultation\n\nWe look forward to speaking with you!\n\nBest regards,\nThe Sudha Realty Team", draft.Body)

	require.NoError(t, <-result)
	_, open := <-result
	assert.False(t, open)

	var stored models.ConsultationRequest
	require.NoError(t, f.store.Get(context.Background(), models.CollectionConsultations, id, &stored))
	assert.Equal(t, models.StatusApproved, stored.Status)
}

func TestTransitionRejectDraftCitesTransaction(t *testing.T) {
	f := newFixture(t)
	id := f.consultation(t, models.StatusPending)

	draft, result, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, "Update on Your Consultation Request", draft.Subject)
	assert.Equal(t, "Dear Ravi Kumar,\n\nThank you for your interest in a consultation with Sudha Realty. After reviewing your request, "+
		"we were unable to proceed at this time.\n\nThis is often due to an issue with payment verification. If you believe this is an error, "+
		"please ensure your payment with Transaction ID TXN98765 was completed successfully and feel free to contact us.\n\n"+
		"We appreciate your understanding.\n\nBest regards,\nThe Sudha Realty Team", draft.Body)
	require.NoError(t, <-result)
}

func TestTransitionDraftSurvivesFailedWrite(t *testing.T) {
	f := newFixture(t)
	id := f.consultation(t, models.StatusPending)
	denied := &store.PermissionError{Path: models.CollectionConsultations + "/" + id, Operation: store.OpUpdate, Data: map[string]interface{}{"status": "approved"}}
	f.store.onUpdate = func(string, string) error { return denied }

	draft, result, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusApproved)
	require.NoError(t, err)
	assert.NotEmpty(t, draft.Body)

	werr := <-result
	assert.True(t, store.IsPermission(werr))
	require.Len(t, f.collector.Events(), 1)
	assert.Equal(t, store.OpUpdate, f.collector.Events()[0].Operation)

	var stored models.ConsultationRequest
	require.NoError(t, f.store.Get(context.Background(), models.CollectionConsultations, id, &stored))
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestTransitionDoesNotWaitForWrite(t *testing.T) {
	f := newFixture(t)
	id := f.consultation(t, models.StatusPending)
	unblock := make(chan struct{})
	f.store.onUpdate = func(string, string) error { <-unblock; return nil }

	done := make(chan struct{})
	var result <-chan error
	go func() {
		defer close(done)
		var err error
		_, result, err = f.svc.TransitionConsultation(context.Background(), id, models.StatusApproved)
		assert.NoError(t, err)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("transition blocked on the store write")
	}
	assert.True(t, f.svc.Busy(models.CollectionConsultations, id))

	_, _, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusRejected)
	assert.ErrorIs(t, err, ErrBusy)

	close(unblock)
	require.NoError(t, <-result)
	assert.False(t, f.svc.Busy(models.CollectionConsultations, id))
}

func TestTransitionIsTerminal(t *testing.T) {
	f := newFixture(t)
	for _, status := range []string{models.StatusApproved, models.StatusRejected} {
		id := f.consultation(t, status)
		_, result, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusApproved)
		assert.ErrorIs(t, err, ErrTerminalStatus)
		assert.Nil(t, result)
	}
	assert.Empty(t, f.store.Calls())
}

func TestTransitionRejectsUnknownInputs(t *testing.T) {
	f := newFixture(t)
	id := f.consultation(t, models.StatusPending)

	_, _, err := f.svc.TransitionConsultation(context.Background(), id, models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, _, err = f.svc.TransitionConsultation(context.Background(), "missing", models.StatusApproved)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, f.svc.Busy(models.CollectionConsultations, "missing"))
}

func TestUnavailableStoreShortCircuits(t *testing.T) {
	svc := New(Deps{Logger: zap.NewNop()})
	_, _, err := svc.TransitionConsultation(context.Background(), "x", models.StatusApproved)
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.ErrorIs(t, svc.DeleteProperty(context.Background(), "x", true), store.ErrUnavailable)
	_, err = svc.Dashboard(context.Background())
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func propertyForm() forms.Form {
	return forms.Form{
		"title":       "Lakeview Villa",
		"description": "Four bedroom villa facing the lake.",
		"price":       "12500000",
		"location":    "Kokapet",
		"area":        "3200",
		"type":        "Villa",
		"bedrooms":    "4",
		"facing":      "East",
		"images":      "a.jpg, b.jpg",
	}
}

func TestPropertyCRUD(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.CreateProperty(ctx, propertyForm())
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)

	form := propertyForm()
	form["price"] = "13000000"
	delete(form, "facing")
	updated, err := f.svc.UpdateProperty(ctx, p.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 13000000.0, updated.Price)
	assert.Empty(t, updated.Facing)
	assert.Equal(t, p.ID, updated.ID)

	assert.ErrorIs(t, f.svc.DeleteProperty(ctx, p.ID, false), ErrConfirmationRequired)
	_, err = f.svc.GetProperty(ctx, p.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteProperty(ctx, p.ID, true))
	_, err = f.svc.GetProperty(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, f.svc.DeleteProperty(ctx, p.ID, true), store.ErrNotFound)
	_, err = f.svc.UpdateProperty(ctx, p.ID, propertyForm())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteWithoutConfirmationNeverReachesStore(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.DeleteCommunityListing(context.Background(), "any", false), ErrConfirmationRequired)
	assert.Empty(t, f.store.Calls())
}

func TestValidationErrorsNeverReachStore(t *testing.T) {
	f := newFixture(t)
	form := propertyForm()
	form["title"] = "Hut"
	_, err := f.svc.CreateProperty(context.Background(), form)
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Empty(t, f.store.Calls())
}

func TestPerRecordGuard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, err := f.svc.CreateProperty(ctx, propertyForm())
	require.NoError(t, err)
	b, err := f.svc.CreateProperty(ctx, propertyForm())
	require.NoError(t, err)

	entered := make(chan struct{})
	unblock := make(chan struct{})
	f.store.onDelete = func(_, id string) error {
		if id == a.ID {
			close(entered)
			<-unblock
		}
		return nil
	}

	errc := make(chan error, 1)
	go func() { errc <- f.svc.DeleteProperty(ctx, a.ID, true) }()
	<-entered

	_, err = f.svc.UpdateProperty(ctx, a.ID, propertyForm())
	assert.ErrorIs(t, err, ErrBusy)

	_, err = f.svc.UpdateProperty(ctx, b.ID, propertyForm())
	assert.NoError(t, err)

	close(unblock)
	assert.NoError(t, <-errc)
}

func TestPermissionErrorOnDeleteIsReported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p, err := f.svc.CreateProperty(ctx, propertyForm())
	require.NoError(t, err)

	f.store.onDelete = func(collection, id string) error {
		return &store.PermissionError{Path: collection + "/" + id, Operation: store.OpDelete}
	}
	err = f.svc.DeleteProperty(ctx, p.ID, true)
	assert.True(t, store.IsPermission(err))
	require.Len(t, f.collector.Events(), 1)
	assert.Equal(t, models.CollectionProperties+"/"+p.ID, f.collector.Events()[0].Path)
}

func communityForm() forms.Form {
	return forms.Form{
		"title": "2 BHK near park", "description": "Bright flat with balcony and cross ventilation.",
		"price": "18000", "deposit": "50000", "area": "1100", "location": "Kondapur",
		"address": "Flat 302, Green Meadows", "ownerName": "Meera", "ownerEmail": "meera@example.com",
		"ownerPhone": "9123456780", "listingType": "rent", "propertyType": "Apartment/Gated Community",
		"bhk": "2 BHK", "bathrooms": "2", "furnishing": "Semi-Furnished", "parking": "Both",
		"preferredTenants": "Family", "facing": "East", "floor": "3", "waterSupply": "Both",
		"gatedSecurity": "Yes", "petAllowed": "No", "nonVegAllowed": "Yes",
	}
}

func inquiryForm() forms.Form {
	return forms.Form{"reason": "Self Use", "isDealer": "No", "name": "Asha", "phone": "9876543210", "agreed": "true"}
}

func TestInquiryIsRecordedBeforeContactIsRevealed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l, err := f.svc.CreateCommunityListing(ctx, communityForm())
	require.NoError(t, err)

	contact, err := f.svc.SubmitInquiry(ctx, l.ID, inquiryForm())
	require.NoError(t, err)
	assert.Equal(t, models.OwnerContact{Name: "Meera", Email: "meera@example.com", Phone: "9123456780"}, contact)
	assert.Contains(t, f.store.Calls(), "create:"+models.CollectionInquiries)

	inquiries, err := f.svc.ListInquiries(ctx)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "2 BHK near park", inquiries[0].ListingTitle)
	assert.Equal(t, l.ID, inquiries[0].ListingID)
	assert.Equal(t, "Asha", inquiries[0].UserName)
}

func TestFailedInquiryRevealsNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	l, err := f.svc.CreateCommunityListing(ctx, communityForm())
	require.NoError(t, err)

	f.store.onCreate = func(collection string) error {
		if collection == models.CollectionInquiries {
			return &store.PermissionError{Path: collection, Operation: store.OpCreate}
		}
		return nil
	}
	contact, err := f.svc.SubmitInquiry(ctx, l.ID, inquiryForm())
	assert.True(t, store.IsPermission(err))
	assert.Equal(t, models.OwnerContact{}, contact)
	assert.Len(t, f.collector.Events(), 1)

	form := inquiryForm()
	form["agreed"] = "false"
	contact, err = f.svc.SubmitInquiry(ctx, l.ID, form)
	var verrs forms.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Equal(t, models.OwnerContact{}, contact)

	_, err = f.svc.SubmitInquiry(ctx, "missing", inquiryForm())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmitConsultationAndDashboard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 7; i++ {
		req, err := f.svc.SubmitConsultation(ctx, forms.Form{
			"transactionId": "TXN0000" + string(rune('0'+i)),
			"name":          "Client",
			"email":         "client@example.com",
			"phone":         "9000000000",
			"message":       "Please call me about plots.",
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, req.Status)
		assert.False(t, req.CreatedAt.IsZero())
	}
	f.consultation(t, models.StatusApproved)
	_, err := f.svc.CreateProperty(ctx, propertyForm())
	require.NoError(t, err)

	d, err := f.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Properties)
	assert.Equal(t, 0, d.CommunityListings)
	assert.Equal(t, 8, d.Consultations)
	assert.Equal(t, 7, d.PendingConsultations)
	assert.Len(t, d.RecentPending, 5)
	assert.Empty(t, d.RecentInquiries)
}

func TestSendEmail(t *testing.T) {
	ctx := context.Background()

	unconfigured := New(Deps{Mailer: mail.NewSendGrid("", "admin@sudharealty.in", "", zap.NewNop())})
	assert.ErrorIs(t, unconfigured.SendEmail(ctx, forms.Form{}), mail.ErrNotConfigured)

	f := newFixture(t)
	err := f.svc.SendEmail(ctx, forms.Form{"to": "a@example.com", "subject": "Hi"})
	var verrs forms.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Missing required email fields.", verrs["text"])

	err = f.svc.SendEmail(ctx, forms.Form{"to": "a@example.com", "subject": "Hi", "text": "t", "html": "<p>t</p>"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "Recipient is not allowed.", verrs["to"])
	assert.Empty(t, f.mailer.Sent())

	require.NoError(t, f.svc.SendEmail(ctx, forms.Form{"to": "Admin@SudhaRealty.in", "subject": "Hi", "text": "t", "html": "<p>t</p>"}))
	require.Len(t, f.mailer.Sent(), 1)
	assert.Equal(t, "Admin@SudhaRealty.in", f.mailer.Sent()[0].To)

	recorder := &mail.Recorder{}
	relay := New(Deps{Mailer: recorder, AdminInbox: "admin@sudharealty.in", RelayRecipients: []string{"sales@sudharealty.in"}})
	require.NoError(t, relay.SendEmail(ctx, forms.Form{"to": "sales@sudharealty.in", "subject": "Hi", "text": "t", "html": "<p>t</p>"}))
	assert.Len(t, recorder.Sent(), 1)
}

func TestSendContact(t *testing.T) {
	f := newFixture(t)
	err := f.svc.SendContact(context.Background(), forms.Form{
		"name": "Kiran", "email": "kiran@example.com", "phone": "9000000000",
		"message": "Is this <still> available?", "propertyTitle": "Lakeview Villa",
		"propertyUrl": "https://sudharealty.in/properties/p1",
	})
	require.NoError(t, err)
	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "admin@sudharealty.in", sent[0].To)
	assert.Equal(t, "New inquiry for Lakeview Villa", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "&lt;still&gt;")

	f.mailer.Err = errors.New("provider down")
	err = f.svc.SendContact(context.Background(), forms.Form{
		"name": "Kiran", "email": "kiran@example.com", "phone": "9000000000",
		"message": "Is this still available?", "propertyTitle": "Lakeview Villa",
		"propertyUrl": "https://sudharealty.in/properties/p1",
	})
	assert.Error(t, err)
}
