package filters

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/dcode-github/realty_portal/models"
)

// ParsePropertyQuery seeds residential filters from a query string.
//
// `location` and `type` are the public deep-link contract: `type` only takes
// effect when it names one of the four residential types and is otherwise
// ignored. The remaining keys mirror the sidebar controls.
func ParsePropertyQuery(q url.Values) PropertyFilters {
	f := DefaultPropertyFilters()
	f.Location = strings.TrimSpace(q.Get("location"))
	if t := q.Get("type"); models.OneOf(models.ResidentialTypes, t) {
		f.PropertyType = []string{t}
	}
	if types := listParam(q, "propertyType", models.ResidentialTypes); len(types) > 0 {
		f.PropertyType = types
	}
	f.Price = priceParam(q, f.Price)
	f.Bedrooms = listParam(q, "bedrooms", BedroomBuckets)
	f.Bathrooms = listParam(q, "bathrooms", BathroomBuckets)
	f.Facing = listParam(q, "facing", models.Facings)
	f.SaleType = listParam(q, "saleType", models.SaleTypes)
	return f
}

func ParseCommercialQuery(q url.Values) CommercialFilters {
	f := DefaultCommercialFilters()
	f.Price = priceParam(q, f.Price)
	f.PropertyType = listParam(q, "propertyType", models.CommercialTypes)
	f.Facing = listParam(q, "facing", models.Facings)
	return f
}

// ParseCommunityQuery picks the listing type first, because it decides the
// default price bounds every other criterion starts from.
func ParseCommunityQuery(q url.Values) CommunityFilters {
	f := DefaultCommunityFilters(q.Get("listingType"))
	f.Price = priceParam(q, f.Price)
	f.BHK = listParam(q, "bhk", CommunityBHKs)
	f.PropertyType = listParam(q, "propertyType", models.CommunityPropertyTypes)
	f.Tenants = listParam(q, "tenants", models.PreferredTenants)
	if p := strings.TrimSpace(q.Get("parking")); slices.Contains(ParkingModes, p) {
		f.Parking = p
	}
	return f
}

// listParam accepts repeated keys and comma lists, keeps only members of
// allowed, and drops duplicates.
func listParam(q url.Values, key string, allowed []string) []string {
	out := []string{}
	for _, raw := range q[key] {
		for _, part := range strings.Split(raw, ",") {
			v := strings.TrimSpace(part)
			if v == "" {
				continue
			}
			// An unescaped "+" arrives as a space, turning "5+" into "5".
			if !slices.Contains(allowed, v) && slices.Contains(allowed, v+"+") {
				v += "+"
			}
			if !slices.Contains(allowed, v) || slices.Contains(out, v) {
				continue
			}
			out = append(out, v)
		}
	}
	return out
}

func priceParam(q url.Values, bounds [2]float64) [2]float64 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(q.Get("minPrice")), 64); err == nil {
		bounds[0] = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(q.Get("maxPrice")), 64); err == nil {
		bounds[1] = v
	}
	return bounds
}
