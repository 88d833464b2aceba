package forms

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcode-github/realty_portal/models"
)

// FormFromJSON flattens a decoded JSON body into raw form input. Arrays are
// joined into comma lists so list fields accept either shape.
func FormFromJSON(body map[string]interface{}) Form {
	f := Form{}
	for k, v := range body {
		switch t := v.(type) {
		case nil:
		case string:
			f[k] = t
		case bool:
			f[k] = strconv.FormatBool(t)
		case float64:
			f[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case []interface{}:
			parts := make([]string, 0, len(t))
			for _, item := range t {
				parts = append(parts, fmt.Sprint(item))
			}
			f[k] = JoinList(parts)
		default:
			f[k] = fmt.Sprint(t)
		}
	}
	return f
}

func DecodeProperty(v Values) models.Property {
	p := models.Property{
		Title:               v.String("title"),
		Description:         v.String("description"),
		Price:               v.Float("price"),
		Location:            v.String("location"),
		LocationURL:         v.String("locationUrl"),
		Bedrooms:            v.Int("bedrooms"),
		Bathrooms:           v.Int("bathrooms"),
		Area:                v.Float("area"),
		Type:                v.String("type"),
		Images:              v.Strings("images"),
		IsFeatured:          v.Bool("isFeatured"),
		Facing:              v.String("facing"),
		SaleType:            v.String("saleType"),
		Features:            v.Strings("features"),
		FloorPlans:          []models.FloorPlan{},
		IsUnderConstruction: v.Bool("isUnderConstruction"),
	}
	if p.IsUnderConstruction {
		p.PossessionDate = v.String("possessionDate")
	}
	return p
}

func DecodeCommunityListing(v Values) models.CommunityListing {
	l := models.CommunityListing{
		Title:            v.String("title"),
		Description:      v.String("description"),
		Price:            v.Float("price"),
		Deposit:          v.Float("deposit"),
		Area:             v.Float("area"),
		Location:         v.String("location"),
		Address:          v.String("address"),
		OwnerName:        v.String("ownerName"),
		OwnerEmail:       v.String("ownerEmail"),
		OwnerPhone:       v.String("ownerPhone"),
		Images:           v.Strings("images"),
		ListingType:      v.String("listingType"),
		PropertyType:     v.String("propertyType"),
		BHK:              v.String("bhk"),
		Bathrooms:        v.Int("bathrooms"),
		Furnishing:       v.String("furnishing"),
		Parking:          v.String("parking"),
		PreferredTenants: v.String("preferredTenants"),
		Facing:           v.String("facing"),
		Floor:            v.String("floor"),
		WaterSupply:      v.String("waterSupply"),
		GatedSecurity:    v.String("gatedSecurity"),
		PetAllowed:       v.String("petAllowed"),
		NonVegAllowed:    v.String("nonVegAllowed"),
	}
	// Deposits only apply to rentals.
	if l.ListingType != models.ListingRent {
		l.Deposit = 0
	}
	return l
}

// DecodeConsultation leaves Status and CreatedAt to the workflow.
func DecodeConsultation(v Values) models.ConsultationRequest {
	return models.ConsultationRequest{
		TransactionID: v.String("transactionId"),
		Name:          v.String("name"),
		Email:         v.String("email"),
		Phone:         v.String("phone"),
		Message:       v.String("message"),
	}
}

func DecodeInquiry(v Values, listingID, listingTitle string) models.CommunityInquiry {
	return models.CommunityInquiry{
		ListingID:    listingID,
		ListingTitle: listingTitle,
		UserName:     v.String("name"),
		UserPhone:    v.String("phone"),
		Reason:       v.String("reason"),
		IsDealer:     v.String("isDealer"),
	}
}

// UpdateFields returns the full set of writable fields for a partial store
// update. Optional fields left empty are written as their zero value, which
// clears them on the stored record.
func UpdateFields(s Schema, v Values) map[string]interface{} {
	out := make(map[string]interface{}, len(s.Fields))
	for _, f := range s.Fields {
		if val, ok := v[f.Name]; ok {
			out[f.Name] = val
			continue
		}
		switch f.Kind {
		case KindNumber:
			out[f.Name] = float64(0)
		case KindInteger:
			out[f.Name] = 0
		case KindBool:
			out[f.Name] = false
		case KindList:
			out[f.Name] = []string{}
		default:
			out[f.Name] = ""
		}
	}
	if !v.Bool("isUnderConstruction") {
		if _, ok := out["possessionDate"]; ok {
			out["possessionDate"] = ""
		}
	}
	if _, ok := out["deposit"]; ok && v.String("listingType") != models.ListingRent {
		out["deposit"] = float64(0)
	}
	return out
}

// PropertyForm prefills the property edit form from a stored record.
func PropertyForm(p models.Property) Form {
	f := Form{
		"title":               p.Title,
		"description":         p.Description,
		"price":               strconv.FormatFloat(p.Price, 'f', -1, 64),
		"location":            p.Location,
		"locationUrl":         p.LocationURL,
		"area":                strconv.FormatFloat(p.Area, 'f', -1, 64),
		"type":                p.Type,
		"isFeatured":          strconv.FormatBool(p.IsFeatured),
		"facing":              p.Facing,
		"saleType":            p.SaleType,
		"images":              JoinList(p.Images),
		"features":            JoinList(p.Features),
		"isUnderConstruction": strconv.FormatBool(p.IsUnderConstruction),
		"possessionDate":      strings.TrimSpace(p.PossessionDate),
	}
	if p.Bedrooms > 0 {
		f["bedrooms"] = strconv.Itoa(p.Bedrooms)
	}
	if p.Bathrooms > 0 {
		f["bathrooms"] = strconv.Itoa(p.Bathrooms)
	}
	return f
}
