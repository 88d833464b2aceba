// Package filters narrows an in-memory listing snapshot to what a visitor's
// filter criteria select. Every function here is pure: it never reads the
// store, never mutates its input and preserves the input order.
//
// Criteria are AND-combined. Inside a multi-select criterion the selected
// values are OR-combined, and an empty selection imposes no restriction.
package filters

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dcode-github/realty_portal/models"
)

type PriceRange struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

var (
	PropertyPriceRange = PriceRange{Min: 1000000, Max: 50000000, Step: 500000}
	RentPriceRange     = PriceRange{Min: 5000, Max: 50000, Step: 1000}
	SalePriceRange     = PriceRange{Min: 2000000, Max: 20000000, Step: 100000}
)

func (r PriceRange) Bounds() [2]float64 {
	return [2]float64{r.Min, r.Max}
}

var (
	BedroomBuckets  = []string{"1", "2", "3", "4", "5+"}
	BathroomBuckets = []string{"1", "2", "3", "4+"}
)

// PropertyFilters drives the curated (residential) listing page.
type PropertyFilters struct {
	Price        [2]float64 `json:"price"`
	Bedrooms     []string   `json:"bedrooms"`
	Bathrooms    []string   `json:"bathrooms"`
	PropertyType []string   `json:"propertyType"`
	Facing       []string   `json:"facing"`
	SaleType     []string   `json:"saleType"`
	Location     string     `json:"location"`
}

func DefaultPropertyFilters() PropertyFilters {
	return PropertyFilters{
		Price:        PropertyPriceRange.Bounds(),
		Bedrooms:     []string{},
		Bathrooms:    []string{},
		PropertyType: []string{},
		Facing:       []string{},
		SaleType:     []string{},
	}
}

// RoomFiltersApply reports whether bedroom and bathroom criteria take part.
// They are skipped when every selected type is land (Open Plot, Farmland).
func RoomFiltersApply(types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if !models.OneOf(models.LandTypes, t) {
			return true
		}
	}
	return false
}

// FilterProperties returns the residential properties matching f.
func FilterProperties(all []models.Property, f PropertyFilters) []models.Property {
	location := strings.ToLower(f.Location)
	rooms := RoomFiltersApply(f.PropertyType)

	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if !p.IsResidential() {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		if !inRange(p.Price, f.Price) {
			continue
		}
		if rooms && len(f.Bedrooms) > 0 && !matchesBucket(f.Bedrooms, p.Bedrooms, "5+", 5) {
			continue
		}
		if rooms && len(f.Bathrooms) > 0 && !matchesBucket(f.Bathrooms, p.Bathrooms, "4+", 4) {
			continue
		}
		if !selected(f.PropertyType, p.Type) || !selected(f.Facing, p.Facing) || !selected(f.SaleType, p.SaleType) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CommercialFilters drives the commercial listing page.
type CommercialFilters struct {
	Price        [2]float64 `json:"price"`
	PropertyType []string   `json:"propertyType"`
	Facing       []string   `json:"facing"`
}

func DefaultCommercialFilters() CommercialFilters {
	return CommercialFilters{
		Price:        PropertyPriceRange.Bounds(),
		PropertyType: []string{},
		Facing:       []string{},
	}
}

// FilterCommercial returns the commercial-partition properties matching f.
func FilterCommercial(all []models.Property, f CommercialFilters) []models.Property {
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if !p.IsCommercial() || !inRange(p.Price, f.Price) {
			continue
		}
		if !selected(f.PropertyType, p.Type) || !selected(f.Facing, p.Facing) {
			continue
		}
		out = append(out, p)
	}
	return out
}

const (
	ParkingAny        = "any"
	ParkingTwoWheeler = "2-wheeler"
	ParkingFourWheel  = "4-wheeler"
	ParkingBoth       = "both"
)

var ParkingModes = []string{ParkingAny, ParkingTwoWheeler, ParkingFourWheel, ParkingBoth}

// CommunityBHKs is the BHK selection offered to visitors; "N/A" is not filterable.
var CommunityBHKs = []string{"1 RK", "1 BHK", "2 BHK", "3 BHK", "4+ BHK"}

// CommunityFilters drives the community board. The listing type is single
// select and owns the price bounds.
type CommunityFilters struct {
	ListingType  string     `json:"listingType"`
	Price        [2]float64 `json:"price"`
	BHK          []string   `json:"bhk"`
	PropertyType []string   `json:"propertyType"`
	Tenants      []string   `json:"tenants"`
	Parking      string     `json:"parking"`
}

func CommunityPriceRange(listingType string) PriceRange {
	if listingType == models.ListingSale {
		return SalePriceRange
	}
	return RentPriceRange
}

// DefaultCommunityFilters returns the reset state for listingType; anything
// other than "sale" is treated as "rent".
func DefaultCommunityFilters(listingType string) CommunityFilters {
	if listingType != models.ListingSale {
		listingType = models.ListingRent
	}
	return CommunityFilters{
		ListingType:  listingType,
		Price:        CommunityPriceRange(listingType).Bounds(),
		BHK:          []string{},
		PropertyType: []string{},
		Tenants:      []string{},
		Parking:      ParkingAny,
	}
}

// SetListingType switches the board and resets every other criterion.
func (f *CommunityFilters) SetListingType(listingType string) {
	*f = DefaultCommunityFilters(listingType)
}

func FilterCommunity(all []models.CommunityListing, f CommunityFilters) []models.CommunityListing {
	tenantsApply := len(f.Tenants) > 0 && !slices.Contains(f.Tenants, "Any")

	out := make([]models.CommunityListing, 0, len(all))
	for _, l := range all {
		if l.ListingType != f.ListingType || !inRange(l.Price, f.Price) {
			continue
		}
		if !selected(f.BHK, l.BHK) || !selected(f.PropertyType, l.PropertyType) {
			continue
		}
		if tenantsApply && !slices.Contains(f.Tenants, l.PreferredTenants) {
			continue
		}
		if !MatchesParking(f.Parking, l.Parking) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// MatchesParking applies a parking mode to a listing's parking value. A
// listing offering "Both" satisfies either single-vehicle mode.
func MatchesParking(mode, parking string) bool {
	switch mode {
	case ParkingBoth:
		return parking == "Both"
	case ParkingTwoWheeler:
		return parking == "2-wheeler" || parking == "Both"
	case ParkingFourWheel:
		return parking == "4-wheeler" || parking == "Both"
	default:
		return true
	}
}

// inRange is inclusive on both ends. A reversed range matches nothing.
func inRange(price float64, bounds [2]float64) bool {
	return price >= bounds[0] && price <= bounds[1]
}

// selected treats an empty selection as "match all" and a missing value as
// never matching an active selection.
func selected(selection []string, value string) bool {
	if len(selection) == 0 {
		return true
	}
	return value != "" && slices.Contains(selection, value)
}

// matchesBucket checks a room count against exact buckets plus one open
// bucket (e.g. "5+" meaning count >= 5). Unknown counts never match.
func matchesBucket(buckets []string, count int, open string, openMin int) bool {
	if count <= 0 {
		return false
	}
	if count >= openMin && slices.Contains(buckets, open) {
		return true
	}
	return slices.Contains(buckets, strconv.Itoa(count))
}
