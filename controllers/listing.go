package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/logger"
	"github.com/dcode-github/realty_portal/metrics"
	"github.com/dcode-github/realty_portal/models"
)

const feedWaitTimeout = 5 * time.Second

// ListingPage is the body of every public filtered listing endpoint.
type ListingPage struct {
	Filters interface{} `json:"filters"`
	Count   int         `json:"count"`
	Items   interface{} `json:"items"`
}

type snapshotFeed interface {
	Wait(ctx context.Context) error
	ReadAt() time.Time
}

// Listings bundles what the public listing endpoints read from.
type Listings struct {
	Cache   cache.ListingCache
	Metrics *metrics.Metrics
}

func (l Listings) cache() cache.ListingCache {
	if l.Cache == nil {
		return cache.Noop{}
	}
	return l.Cache
}

func waitForFeed(r *http.Request, feed snapshotFeed) error {
	ctx, cancel := context.WithTimeout(r.Context(), feedWaitTimeout)
	defer cancel()
	return feed.Wait(ctx)
}

// serve answers from the listing cache when the same criteria were already
// evaluated against the same snapshot, and otherwise runs evaluate.
func (l Listings) serve(w http.ResponseWriter, r *http.Request, surface string, feed snapshotFeed, filters interface{}, evaluate func() (interface{}, int)) {
	if err := waitForFeed(r, feed); err != nil {
		writeError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context())
	criteria := struct {
		Filters interface{} `json:"filters"`
		ReadAt  time.Time   `json:"readAt"`
	}{filters, feed.ReadAt()}

	if body, hit := l.cache().Get(r.Context(), surface, criteria); hit {
		l.observeCache("hit")
		log.Debug("Cache hit", zap.String("surface", surface))
		writeRaw(w, body)
		return
	}
	l.observeCache("miss")

	items, count := evaluate()
	if l.Metrics != nil {
		l.Metrics.FilterQueries.WithLabelValues(surface).Inc()
		l.Metrics.FilterResults.WithLabelValues(surface).Observe(float64(count))
	}

	body, err := json.Marshal(models.APIResponse{
		Success: true,
		Data:    ListingPage{Filters: filters, Count: count, Items: items},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	l.cache().Set(r.Context(), surface, criteria, body)
	writeRaw(w, body)
}

func (l Listings) observeCache(result string) {
	if l.Metrics != nil {
		l.Metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}
