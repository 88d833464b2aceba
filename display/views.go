package display

import (
	"strconv"
	"strings"

	"github.com/dcode-github/realty_portal/models"
)

// PartitionImages drops blank URLs, then splits the rest into the hero image
// and the gallery that follows it.
func PartitionImages(images []string) (hero string, gallery []string) {
	gallery = []string{}
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" {
			continue
		}
		if hero == "" {
			hero = img
			continue
		}
		gallery = append(gallery, img)
	}
	return hero, gallery
}

func validImages(images []string) []string {
	hero, gallery := PartitionImages(images)
	if hero == "" {
		return []string{}
	}
	return append([]string{hero}, gallery...)
}

const (
	BadgeFeatured          = "Featured"
	BadgeUnderConstruction = "Under Construction"
)

// PropertyBadges yields at most one badge per qualifying field, in display order.
func PropertyBadges(p models.Property) []string {
	badges := []string{}
	if p.IsFeatured {
		badges = append(badges, BadgeFeatured)
	}
	if p.SaleType != "" {
		badges = append(badges, p.SaleType)
	}
	if p.IsUnderConstruction {
		badges = append(badges, BadgeUnderConstruction)
	}
	return badges
}

type DetailItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PropertyDetail is the assembled detail page for a curated property.
type PropertyDetail struct {
	models.Property
	FormattedPrice string       `json:"formattedPrice"`
	Hero           string       `json:"hero,omitempty"`
	Gallery        []string     `json:"gallery"`
	Badges         []string     `json:"badges"`
	Details        []DetailItem `json:"details"`
	Possession     string       `json:"possession,omitempty"`
}

func NewPropertyDetail(p models.Property) PropertyDetail {
	hero, gallery := PartitionImages(p.Images)
	d := PropertyDetail{
		Property:       p,
		FormattedPrice: FormatPrice(p.Price),
		Hero:           hero,
		Gallery:        gallery,
		Badges:         PropertyBadges(p),
		Details:        propertyDetails(p),
	}
	if p.IsUnderConstruction {
		d.Possession = p.PossessionDate
	}
	return d
}

// propertyDetails omits rows whose value is absent or zero.
func propertyDetails(p models.Property) []DetailItem {
	items := []DetailItem{}
	if p.Bedrooms > 0 {
		items = append(items, DetailItem{Label: "Bedrooms", Value: strconv.Itoa(p.Bedrooms)})
	}
	if p.Bathrooms > 0 {
		items = append(items, DetailItem{Label: "Bathrooms", Value: strconv.Itoa(p.Bathrooms)})
	}
	if p.Area > 0 {
		items = append(items, DetailItem{Label: "Area", Value: FormatArea(p.Area)})
	}
	if p.Facing != "" {
		items = append(items, DetailItem{Label: "Facing", Value: p.Facing})
	}
	return items
}

// PropertyCard is one row of a listing page.
type PropertyCard struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Location       string       `json:"location"`
	Type           string       `json:"type"`
	Price          float64      `json:"price"`
	FormattedPrice string       `json:"formattedPrice"`
	Images         []string     `json:"images"`
	Badges         []string     `json:"badges"`
	Details        []DetailItem `json:"details"`
}

func NewPropertyCard(p models.Property) PropertyCard {
	return PropertyCard{
		ID:             p.ID,
		Title:          p.Title,
		Location:       p.Location,
		Type:           p.Type,
		Price:          p.Price,
		FormattedPrice: FormatCurrency(p.Price),
		Images:         validImages(p.Images),
		Badges:         PropertyBadges(p),
		Details:        propertyDetails(p),
	}
}

func PropertyCards(ps []models.Property) []PropertyCard {
	cards := make([]PropertyCard, 0, len(ps))
	for _, p := range ps {
		cards = append(cards, NewPropertyCard(p))
	}
	return cards
}

// CommunityDetail never carries the owner's email or phone; those are only
// released by recording an inquiry.
type CommunityDetail struct {
	models.CommunityListing
	FormattedPrice   string       `json:"formattedPrice"`
	FormattedDeposit string       `json:"formattedDeposit"`
	Hero             string       `json:"hero,omitempty"`
	Gallery          []string     `json:"gallery"`
	Details          []DetailItem `json:"details"`
}

func NewCommunityDetail(l models.CommunityListing) CommunityDetail {
	l = l.Public()
	hero, gallery := PartitionImages(l.Images)
	return CommunityDetail{
		CommunityListing: l,
		FormattedPrice:   FormatCurrency(l.Price),
		FormattedDeposit: FormatCurrency(l.Deposit),
		Hero:             hero,
		Gallery:          gallery,
		Details:          communityDetails(l),
	}
}

func communityDetails(l models.CommunityListing) []DetailItem {
	rows := []DetailItem{
		{Label: "Builtup Area", Value: FormatArea(l.Area)},
		{Label: "BHK", Value: l.BHK},
		{Label: "Bathrooms", Value: strconv.Itoa(l.Bathrooms)},
		{Label: "Furnishing", Value: l.Furnishing},
		{Label: "Parking", Value: l.Parking},
		{Label: "Preferred Tenants", Value: l.PreferredTenants},
	}
	if l.ListingType == models.ListingRent {
		rows = append(rows, DetailItem{Label: "Deposit", Value: FormatCurrency(l.Deposit)})
	}
	rows = append(rows,
		DetailItem{Label: "Facing", Value: l.Facing},
		DetailItem{Label: "Floor", Value: l.Floor},
		DetailItem{Label: "Water Supply", Value: l.WaterSupply},
		DetailItem{Label: "Pet Allowed", Value: l.PetAllowed},
		DetailItem{Label: "Gated Security", Value: l.GatedSecurity},
		DetailItem{Label: "Non-Veg Allowed", Value: l.NonVegAllowed},
	)
	return rows
}

// CommunityCards returns public copies of ls for the board.
func CommunityCards(ls []models.CommunityListing) []CommunityDetail {
	out := make([]CommunityDetail, 0, len(ls))
	for _, l := range ls {
		out = append(out, NewCommunityDetail(l))
	}
	return out
}
