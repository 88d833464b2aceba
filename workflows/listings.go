package workflows

import (
	"context"

	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/cache"
	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/models"
	"github.com/dcode-github/realty_portal/store"
)

var (
	propertySurfaces  = []string{cache.SurfaceProperties, cache.SurfaceCommercial}
	communitySurfaces = []string{cache.SurfaceCommunity}
)

func (s *Service) CreateProperty(ctx context.Context, form forms.Form) (models.Property, error) {
	v, err := forms.PropertySchema.Validate(form)
	if err != nil {
		return models.Property{}, err
	}
	if err := s.available(); err != nil {
		return models.Property{}, err
	}
	p := forms.DecodeProperty(v)
	id, err := s.store.Create(ctx, models.CollectionProperties, p)
	if err := s.failed(ctx, "property", store.OpCreate, err); err != nil {
		return models.Property{}, err
	}
	p.ID = id
	s.invalidate(propertySurfaces...)
	s.logger(ctx).Info("Property created", zap.String("id", id), zap.String("title", p.Title))
	return p, nil
}

func (s *Service) UpdateProperty(ctx context.Context, id string, form forms.Form) (models.Property, error) {
	v, err := forms.PropertySchema.Validate(form)
	if err != nil {
		return models.Property{}, err
	}
	if err := s.available(); err != nil {
		return models.Property{}, err
	}
	release, err := s.inflight.acquire(models.CollectionProperties, id)
	if err != nil {
		return models.Property{}, err
	}
	defer release()

	err = s.store.Update(ctx, models.CollectionProperties, id, forms.UpdateFields(forms.PropertySchema, v))
	if err := s.failed(ctx, "property", store.OpUpdate, err); err != nil {
		return models.Property{}, err
	}
	s.invalidate(propertySurfaces...)

	var p models.Property
	if err := s.store.Get(ctx, models.CollectionProperties, id, &p); err != nil {
		return models.Property{}, err
	}
	return p, nil
}

// DeleteProperty refuses to touch the store unless confirmed is true.
func (s *Service) DeleteProperty(ctx context.Context, id string, confirmed bool) error {
	return s.deleteListing(ctx, "property", models.CollectionProperties, id, confirmed, propertySurfaces)
}

func (s *Service) GetProperty(ctx context.Context, id string) (models.Property, error) {
	if err := s.available(); err != nil {
		return models.Property{}, err
	}
	var p models.Property
	err := s.store.Get(ctx, models.CollectionProperties, id, &p)
	return p, err
}

func (s *Service) ListProperties(ctx context.Context) ([]models.Property, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	out := []models.Property{}
	if err := s.store.List(ctx, store.Query{Collection: models.CollectionProperties}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) CreateCommunityListing(ctx context.Context, form forms.Form) (models.CommunityListing, error) {
	v, err := forms.CommunityListingSchema.Validate(form)
	if err != nil {
		return models.CommunityListing{}, err
	}
	if err := s.available(); err != nil {
		return models.CommunityListing{}, err
	}
	l := forms.DecodeCommunityListing(v)
	id, err := s.store.Create(ctx, models.CollectionCommunity, l)
	if err := s.failed(ctx, "community_listing", store.OpCreate, err); err != nil {
		return models.CommunityListing{}, err
	}
	l.ID = id
	s.invalidate(communitySurfaces...)
	s.logger(ctx).Info("Community listing created", zap.String("id", id), zap.String("title", l.Title))
	return l, nil
}

func (s *Service) UpdateCommunityListing(ctx context.Context, id string, form forms.Form) (models.CommunityListing, error) {
	v, err := forms.CommunityListingSchema.Validate(form)
	if err != nil {
		return models.CommunityListing{}, err
	}
	if err := s.available(); err != nil {
		return models.CommunityListing{}, err
	}
	release, err := s.inflight.acquire(models.CollectionCommunity, id)
	if err != nil {
		return models.CommunityListing{}, err
	}
	defer release()

	err = s.store.Update(ctx, models.CollectionCommunity, id, forms.UpdateFields(forms.CommunityListingSchema, v))
	if err := s.failed(ctx, "community_listing", store.OpUpdate, err); err != nil {
		return models.CommunityListing{}, err
	}
	s.invalidate(communitySurfaces...)

	var l models.CommunityListing
	if err := s.store.Get(ctx, models.CollectionCommunity, id, &l); err != nil {
		return models.CommunityListing{}, err
	}
	return l, nil
}

func (s *Service) DeleteCommunityListing(ctx context.Context, id string, confirmed bool) error {
	return s.deleteListing(ctx, "community_listing", models.CollectionCommunity, id, confirmed, communitySurfaces)
}

// GetCommunityListing returns the full record, owner contact included.
// Anything shown to visitors must go through Public.
func (s *Service) GetCommunityListing(ctx context.Context, id string) (models.CommunityListing, error) {
	if err := s.available(); err != nil {
		return models.CommunityListing{}, err
	}
	var l models.CommunityListing
	err := s.store.Get(ctx, models.CollectionCommunity, id, &l)
	return l, err
}

func (s *Service) ListCommunityListings(ctx context.Context) ([]models.CommunityListing, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	out := []models.CommunityListing{}
	if err := s.store.List(ctx, store.Query{Collection: models.CollectionCommunity}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) deleteListing(ctx context.Context, entity, collection, id string, confirmed bool, surfaces []string) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.available(); err != nil {
		return err
	}
	release, err := s.inflight.acquire(collection, id)
	if err != nil {
		return err
	}
	defer release()

	if err := s.failed(ctx, entity, store.OpDelete, s.store.Delete(ctx, collection, id)); err != nil {
		return err
	}
	s.invalidate(surfaces...)
	s.logger(ctx).Info("Listing deleted", zap.String("entity", entity), zap.String("id", id))
	return nil
}
