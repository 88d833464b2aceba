package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcode-github/realty_portal/models"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, id(it))
	}
	return out
}

func propertyIDs(ps []models.Property) []string {
	return ids(ps, func(p models.Property) string { return p.ID })
}

func listingIDs(ls []models.CommunityListing) []string {
	return ids(ls, func(l models.CommunityListing) string { return l.ID })
}

func sampleProperties() []models.Property {
	return []models.Property{
		{ID: "villa", Type: models.TypeVilla, Bedrooms: 3, Bathrooms: 3, Price: 2000000, Location: "Jubilee Hills", Facing: "East", SaleType: "Fresh Sales"},
		{ID: "apt", Type: models.TypeApartment, Bedrooms: 2, Bathrooms: 2, Price: 3000000, Location: "Gachibowli", Facing: "North"},
		{ID: "big", Type: models.TypeVilla, Bedrooms: 7, Bathrooms: 5, Price: 45000000, Location: "Banjara Hills", SaleType: "Resales"},
		{ID: "four", Type: models.TypeApartment, Bedrooms: 4, Bathrooms: 4, Price: 9000000, Location: "Kompally"},
		{ID: "plot", Type: models.TypeOpenPlot, Price: 5000000, Location: "Moinabad", Facing: "East"},
		{ID: "farm", Type: models.TypeFarmland, Price: 12000000, Location: "moinabad outskirts"},
		{ID: "office", Type: models.TypeOffice, Price: 15000000, Location: "Hitech City", Facing: "East"},
		{ID: "shop", Type: models.TypeShowroom, Price: 60000000, Location: "Banjara Hills"},
	}
}

func TestFilterPropertiesDefaultsShowResidentialInRange(t *testing.T) {
	got := FilterProperties(sampleProperties(), DefaultPropertyFilters())
	assert.Equal(t, []string{"villa", "apt", "big", "four", "plot", "farm"}, propertyIDs(got))
}

func TestFilterPropertiesAndOr(t *testing.T) {
	all := []models.Property{
		{ID: "v", Type: models.TypeVilla, Bedrooms: 3, Price: 2000000},
		{ID: "a", Type: models.TypeApartment, Bedrooms: 2, Price: 3000000},
	}
	f := DefaultPropertyFilters()
	f.PropertyType = []string{models.TypeVilla}
	assert.Equal(t, []string{"v"}, propertyIDs(FilterProperties(all, f)))

	f.PropertyType = []string{models.TypeVilla, models.TypeApartment}
	assert.Equal(t, []string{"v", "a"}, propertyIDs(FilterProperties(all, f)))

	f.Bedrooms = []string{"2"}
	assert.Equal(t, []string{"a"}, propertyIDs(FilterProperties(all, f)))
}

func TestFilterPropertiesEveryCriterionIsAnIntersection(t *testing.T) {
	all := sampleProperties()
	cases := []struct {
		name   string
		mutate func(*PropertyFilters)
	}{
		{"bedrooms", func(f *PropertyFilters) { f.Bedrooms = []string{"2", "5+"} }},
		{"bathrooms", func(f *PropertyFilters) { f.Bathrooms = []string{"4+"} }},
		{"type", func(f *PropertyFilters) { f.PropertyType = []string{models.TypeVilla, models.TypeOpenPlot} }},
		{"facing", func(f *PropertyFilters) { f.Facing = []string{"East"} }},
		{"saleType", func(f *PropertyFilters) { f.SaleType = []string{"Resales", "Fresh Sales"} }},
		{"location", func(f *PropertyFilters) { f.Location = "HILLS" }},
		{"price", func(f *PropertyFilters) { f.Price = [2]float64{2500000, 12000000} }},
	}

	base := FilterProperties(all, DefaultPropertyFilters())
	for i := range cases {
		for j := i + 1; j < len(cases); j++ {
			a, b := cases[i], cases[j]
			t.Run(a.name+"+"+b.name, func(t *testing.T) {
				fa, fb, both := DefaultPropertyFilters(), DefaultPropertyFilters(), DefaultPropertyFilters()
				a.mutate(&fa)
				b.mutate(&fb)
				a.mutate(&both)
				b.mutate(&both)

				inA := map[string]bool{}
				for _, p := range FilterProperties(base, fa) {
					inA[p.ID] = true
				}
				var want []string
				for _, p := range FilterProperties(base, fb) {
					if inA[p.ID] {
						want = append(want, p.ID)
					}
				}
				got := propertyIDs(FilterProperties(all, both))
				if len(want) == 0 {
					assert.Empty(t, got)
					return
				}
				assert.Equal(t, want, got)
			})
		}
	}
}

func TestBedroomBuckets(t *testing.T) {
	seven := models.Property{ID: "7", Type: models.TypeVilla, Bedrooms: 7, Price: 2000000}
	four := models.Property{ID: "4", Type: models.TypeVilla, Bedrooms: 4, Price: 2000000}
	all := []models.Property{seven, four}

	f := DefaultPropertyFilters()
	f.Bedrooms = []string{"5+"}
	assert.Equal(t, []string{"7"}, propertyIDs(FilterProperties(all, f)))

	f.Bedrooms = []string{"4"}
	assert.Equal(t, []string{"4"}, propertyIDs(FilterProperties(all, f)))

	f.Bedrooms = []string{"4", "5+"}
	assert.Equal(t, []string{"7", "4"}, propertyIDs(FilterProperties(all, f)))
}

func TestBathroomOpenBucket(t *testing.T) {
	all := []models.Property{
		{ID: "3", Type: models.TypeApartment, Bathrooms: 3, Price: 2000000},
		{ID: "4", Type: models.TypeApartment, Bathrooms: 4, Price: 2000000},
		{ID: "6", Type: models.TypeApartment, Bathrooms: 6, Price: 2000000},
		{ID: "none", Type: models.TypeApartment, Price: 2000000},
	}
	f := DefaultPropertyFilters()
	f.Bathrooms = []string{"4+"}
	assert.Equal(t, []string{"4", "6"}, propertyIDs(FilterProperties(all, f)))
}

func TestRoomFiltersSuppressedForLandOnlySelections(t *testing.T) {
	f := DefaultPropertyFilters()
	f.PropertyType = []string{models.TypeOpenPlot, models.TypeFarmland}
	f.Bedrooms = []string{"3"}
	f.Bathrooms = []string{"2"}

	got := FilterProperties(sampleProperties(), f)
	assert.Equal(t, []string{"plot", "farm"}, propertyIDs(got))

	assert.True(t, RoomFiltersApply(nil))
	assert.True(t, RoomFiltersApply([]string{models.TypeVilla, models.TypeFarmland}))
	assert.False(t, RoomFiltersApply([]string{models.TypeFarmland}))
}

func TestRoomFiltersStillApplyToMixedSelections(t *testing.T) {
	f := DefaultPropertyFilters()
	f.PropertyType = []string{models.TypeVilla, models.TypeOpenPlot}
	f.Bedrooms = []string{"3"}
	assert.Equal(t, []string{"villa"}, propertyIDs(FilterProperties(sampleProperties(), f)))
}

func TestFilterPropertiesEdgeCases(t *testing.T) {
	assert.Empty(t, FilterProperties(nil, DefaultPropertyFilters()))
	assert.NotNil(t, FilterProperties(nil, DefaultPropertyFilters()))

	f := DefaultPropertyFilters()
	f.Price = [2]float64{10000000, 2000000}
	assert.Empty(t, FilterProperties(sampleProperties(), f))

	f = DefaultPropertyFilters()
	f.Price = [2]float64{2000000, 2000000}
	assert.Equal(t, []string{"villa"}, propertyIDs(FilterProperties(sampleProperties(), f)))
}

func TestFilterPropertiesDoesNotMutateInput(t *testing.T) {
	all := sampleProperties()
	before := propertyIDs(all)
	f := DefaultPropertyFilters()
	f.Facing = []string{"North"}
	FilterProperties(all, f)
	assert.Equal(t, before, propertyIDs(all))
}

func TestFilterCommercial(t *testing.T) {
	all := sampleProperties()
	assert.Equal(t, []string{"office"}, propertyIDs(FilterCommercial(all, DefaultCommercialFilters())))

	f := DefaultCommercialFilters()
	f.Price = [2]float64{0, 100000000}
	assert.Equal(t, []string{"office", "shop"}, propertyIDs(FilterCommercial(all, f)))

	f.Facing = []string{"East"}
	assert.Equal(t, []string{"office"}, propertyIDs(FilterCommercial(all, f)))

	f.Facing = nil
	f.PropertyType = []string{models.TypeShowroom}
	assert.Equal(t, []string{"shop"}, propertyIDs(FilterCommercial(all, f)))
}

func sampleListings() []models.CommunityListing {
	return []models.CommunityListing{
		{ID: "r1", ListingType: "rent", Price: 15000, BHK: "2 BHK", PropertyType: "Apartment/Gated Community", PreferredTenants: "Family", Parking: "Both"},
		{ID: "r2", ListingType: "rent", Price: 8000, BHK: "1 RK", PropertyType: "Independent House", PreferredTenants: "Male Bachelors", Parking: "2-wheeler"},
		{ID: "r3", ListingType: "rent", Price: 45000, BHK: "3 BHK", PropertyType: "Villa", PreferredTenants: "Any", Parking: "4-wheeler"},
		{ID: "r4", ListingType: "rent", Price: 60000, BHK: "4+ BHK", PropertyType: "Villa", PreferredTenants: "Company", Parking: "None"},
		{ID: "s1", ListingType: "sale", Price: 7500000, BHK: "3 BHK", PropertyType: "Villa", PreferredTenants: "Any", Parking: "Both"},
	}
}

func TestFilterCommunityDefaults(t *testing.T) {
	assert.Equal(t, []string{"r1", "r2", "r3"}, listingIDs(FilterCommunity(sampleListings(), DefaultCommunityFilters("rent"))))
	assert.Equal(t, []string{"s1"}, listingIDs(FilterCommunity(sampleListings(), DefaultCommunityFilters("sale"))))
}

func TestParkingModes(t *testing.T) {
	for _, mode := range []string{ParkingTwoWheeler, ParkingFourWheel, ParkingBoth, ParkingAny} {
		assert.True(t, MatchesParking(mode, "Both"), mode)
	}
	assert.True(t, MatchesParking(ParkingTwoWheeler, "2-wheeler"))
	assert.False(t, MatchesParking(ParkingFourWheel, "2-wheeler"))
	assert.False(t, MatchesParking(ParkingBoth, "2-wheeler"))
	assert.False(t, MatchesParking(ParkingTwoWheeler, "None"))

	f := DefaultCommunityFilters("rent")
	f.Parking = ParkingTwoWheeler
	assert.Equal(t, []string{"r1", "r2"}, listingIDs(FilterCommunity(sampleListings(), f)))
	f.Parking = ParkingBoth
	assert.Equal(t, []string{"r1"}, listingIDs(FilterCommunity(sampleListings(), f)))
}

func TestTenantSelectionWithAnyIsUnrestricted(t *testing.T) {
	f := DefaultCommunityFilters("rent")
	f.Tenants = []string{"Family"}
	assert.Equal(t, []string{"r1"}, listingIDs(FilterCommunity(sampleListings(), f)))

	f.Tenants = []string{"Family", "Any"}
	assert.Equal(t, []string{"r1", "r2", "r3"}, listingIDs(FilterCommunity(sampleListings(), f)))
}

func TestCommunityBHKAndType(t *testing.T) {
	f := DefaultCommunityFilters("rent")
	f.BHK = []string{"1 RK", "3 BHK"}
	assert.Equal(t, []string{"r2", "r3"}, listingIDs(FilterCommunity(sampleListings(), f)))

	f.PropertyType = []string{"Villa"}
	assert.Equal(t, []string{"r3"}, listingIDs(FilterCommunity(sampleListings(), f)))
}

func TestSetListingTypeResetsCriteria(t *testing.T) {
	f := DefaultCommunityFilters("rent")
	f.BHK = []string{"2 BHK"}
	f.Parking = ParkingBoth
	f.Price = [2]float64{10000, 20000}

	f.SetListingType("sale")
	assert.Equal(t, DefaultCommunityFilters("sale"), f)
	assert.Equal(t, [2]float64{2000000, 20000000}, f.Price)

	f.SetListingType("lease")
	assert.Equal(t, "rent", f.ListingType)
	assert.Equal(t, [2]float64{5000, 50000}, f.Price)
}
