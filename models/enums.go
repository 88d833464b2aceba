package models

import "golang.org/x/exp/slices"

const (
	TypeApartment       = "Apartment"
	TypeVilla           = "Villa"
	TypeOpenPlot        = "Open Plot"
	TypeFarmland        = "Farmland"
	TypeCommercialSpace = "Commercial Space"
	TypeOffice          = "Office"
	TypeShowroom        = "Showroom"
	TypeWarehouse       = "Warehouse"
)

var (
	ResidentialTypes = []string{TypeApartment, TypeVilla, TypeOpenPlot, TypeFarmland}
	CommercialTypes  = []string{TypeCommercialSpace, TypeOffice, TypeShowroom, TypeWarehouse}
	PropertyTypes    = append(append([]string{}, ResidentialTypes...), CommercialTypes...)

	// LandTypes carry no bedroom or bathroom semantics.
	LandTypes = []string{TypeOpenPlot, TypeFarmland}

	Facings   = []string{"North", "South", "East", "West", "North-East", "North-West", "South-East", "South-West"}
	SaleTypes = []string{"Fresh Sales", "Resales"}
)

const (
	ListingRent = "rent"
	ListingSale = "sale"
)

var (
	ListingTypes           = []string{ListingRent, ListingSale}
	CommunityPropertyTypes = []string{"Villa", "Apartment/Gated Community", "Independent House"}
	BHKs                   = []string{"1 RK", "1 BHK", "2 BHK", "3 BHK", "4+ BHK", "N/A"}
	Furnishings            = []string{"Fully Furnished", "Semi-Furnished", "Unfurnished"}
	Parkings               = []string{"2-wheeler", "4-wheeler", "Both", "None"}
	PreferredTenants       = []string{"Family", "Company", "Male Bachelors", "Female Bachelors", "Pure Vegetarian Family", "Any"}
	WaterSupplies          = []string{"Corporation", "Borewell", "Both"}
	YesNo                  = []string{"Yes", "No"}
	InquiryReasons         = []string{"Investment", "Self Use"}
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var ConsultationStatuses = []string{StatusPending, StatusApproved, StatusRejected}

// OneOf reports whether value is a member of the closed set.
func OneOf(set []string, value string) bool {
	return slices.Contains(set, value)
}
