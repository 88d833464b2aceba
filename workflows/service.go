// Package workflows orchestrates every write the portal makes: admin CRUD on
// listings, consultation status changes, and the public submission forms.
// Every collaborator is injected through Deps.
package workflows

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/logger"
	"github.com/dcode-github/realty_portal/mail"
	"github.com/dcode-github/realty_portal/metrics"
	"github.com/dcode-github/realty_portal/store"
)

var (
	ErrBusy                 = errors.New("another change to this record is in progress")
	ErrTerminalStatus       = errors.New("consultation request has already been decided")
	ErrInvalidStatus        = errors.New("status must be approved or rejected")
	ErrConfirmationRequired = errors.New("deletion must be explicitly confirmed")
)

const DefaultSchedulingLink = "https://cal.com/jayendrat/property-consultation"

type Deps struct {
	Store    store.Store
	Mailer   mail.Sender
	Reporter Reporter
	Cache    cache.ListingCache
	Metrics  *metrics.Metrics
	Logger   *zap.Logger

	SchedulingLink  string
	AdminInbox      string
	RelayRecipients []string
	Now             func() time.Time
}

type Service struct {
	store    store.Store
	mailer   mail.Sender
	reporter Reporter
	cache    cache.ListingCache
	metrics  *metrics.Metrics
	log      *zap.Logger

	schedulingLink string
	adminInbox     string
	relay          []string
	now            func() time.Time

	inflight *inflight
	pending  sync.WaitGroup
}

func New(d Deps) *Service {
	s := &Service{
		store:          d.Store,
		mailer:         d.Mailer,
		reporter:       d.Reporter,
		cache:          d.Cache,
		metrics:        d.Metrics,
		log:            d.Logger,
		schedulingLink: d.SchedulingLink,
		adminInbox:     d.AdminInbox,
		relay:          d.RelayRecipients,
		now:            d.Now,
		inflight:       &inflight{keys: make(map[string]struct{})},
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.reporter == nil {
		s.reporter = NewLogReporter(s.log, s.metrics)
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.schedulingLink == "" {
		s.schedulingLink = DefaultSchedulingLink
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// available short-circuits when no store has been wired.
func (s *Service) available() error {
	if s.store == nil {
		return store.ErrUnavailable
	}
	return nil
}

// Wait blocks until detached writes and cache invalidations have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

func (s *Service) logger(ctx context.Context) *zap.Logger {
	if l, ok := logger.Lookup(ctx); ok {
		return l
	}
	return s.log
}

// failed records the outcome of a store call and publishes permission
// failures to the reporter.
func (s *Service) failed(ctx context.Context, entity, op string, err error) error {
	if s.metrics != nil {
		s.metrics.Mutation(entity, op, err)
	}
	if err == nil {
		return nil
	}
	var pe *store.PermissionError
	if errors.As(err, &pe) {
		s.reporter.ReportPermission(ctx, pe)
	}
	s.logger(ctx).Error("Write failed",
		zap.String("entity", entity),
		zap.String("operation", op),
		zap.Error(err))
	return err
}

func (s *Service) invalidate(surfaces ...string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.cache.Invalidate(context.Background(), surfaces...)
	}()
}

// inflight rejects a second mutation on a record while one is running.
// Different records never block each other.
type inflight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (g *inflight) acquire(collection, id string) (func(), error) {
	key := collection + "/" + id
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.keys[key]; busy {
		return nil, ErrBusy
	}
	g.keys[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether a mutation on the record is in progress.
func (s *Service) Busy(collection, id string) bool {
	s.inflight.mu.Lock()
	defer s.inflight.mu.Unlock()
	_, busy := s.inflight.keys[collection+"/"+id]
	return busy
}
