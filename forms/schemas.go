package forms

import (
	"strings"

	"github.com/dcode-github/realty_portal/models"
)

var PropertySchema = Schema{
	Name: "property",
	Fields: []Field{
		{Name: "title", MinLen: 5, Message: "Title must be at least 5 characters."},
		{Name: "description", MinLen: 10, Message: "Description must be at least 10 characters."},
		{Name: "price", Kind: KindNumber, Min: atLeast(1), Message: "Price is required."},
		{Name: "location", MinLen: 2, Message: "Location is required."},
		{Name: "locationUrl", Kind: KindURL, Optional: true, Message: "Please enter a valid URL."},
		{Name: "bedrooms", Kind: KindInteger, Optional: true, Min: atLeast(0), Message: "Bedrooms must be a whole number."},
		{Name: "bathrooms", Kind: KindInteger, Optional: true, Min: atLeast(0), Message: "Bathrooms must be a whole number."},
		{Name: "area", Kind: KindNumber, Min: atLeast(1), Message: "Area is required."},
		{Name: "type", Kind: KindEnum, Enum: models.PropertyTypes, Message: "Please select a property type."},
		{Name: "isFeatured", Kind: KindBool, Default: "false"},
		{Name: "facing", Kind: KindEnum, Enum: models.Facings, Optional: true, Message: "Please select a valid facing."},
		{Name: "images", Kind: KindList},
		{Name: "features", Kind: KindList},
		{Name: "saleType", Kind: KindEnum, Enum: models.SaleTypes, Optional: true, Message: "Please select a valid sale type."},
		{Name: "isUnderConstruction", Kind: KindBool, Default: "false"},
		{Name: "possessionDate", Optional: true, Transform: strings.TrimSpace},
	},
}

var CommunityListingSchema = Schema{
	Name: "community listing",
	Fields: []Field{
		{Name: "title", MinLen: 2, Message: "Title is required"},
		{Name: "description", MinLen: 10, Message: "Description is required"},
		{Name: "price", Kind: KindNumber, Min: atLeast(1), Message: "Price is required"},
		{Name: "deposit", Kind: KindNumber, Optional: true, Min: atLeast(0), Message: "Deposit cannot be negative"},
		{Name: "area", Kind: KindNumber, Min: atLeast(1), Message: "Area is required"},
		{Name: "location", MinLen: 2, Message: "Location is required"},
		{Name: "address", MinLen: 5, Message: "Address is required"},
		{Name: "ownerName", MinLen: 2, Message: "Owner name is required"},
		{Name: "ownerEmail", Kind: KindEmail, Message: "A valid email is required"},
		{Name: "ownerPhone", MinLen: 10, Message: "A valid phone number is required"},
		{Name: "images", Kind: KindList},
		{Name: "listingType", Kind: KindEnum, Enum: models.ListingTypes, Message: "Please select a listing type"},
		{Name: "propertyType", Kind: KindEnum, Enum: models.CommunityPropertyTypes, Message: "Please select a property type"},
		{Name: "bhk", Kind: KindEnum, Enum: models.BHKs, Message: "Please select a BHK configuration"},
		{Name: "bathrooms", Kind: KindInteger, Min: atLeast(1), Message: "At least one bathroom is required"},
		{Name: "furnishing", Kind: KindEnum, Enum: models.Furnishings, Message: "Please select furnishing"},
		{Name: "parking", Kind: KindEnum, Enum: models.Parkings, Message: "Please select parking"},
		{Name: "preferredTenants", Kind: KindEnum, Enum: models.PreferredTenants, Message: "Please select preferred tenants"},
		{Name: "facing", Kind: KindEnum, Enum: models.Facings, Message: "Please select facing"},
		{Name: "floor", MinLen: 1, Message: "Floor is required"},
		{Name: "waterSupply", Kind: KindEnum, Enum: models.WaterSupplies, Message: "Please select water supply"},
		{Name: "gatedSecurity", Kind: KindEnum, Enum: models.YesNo, Message: "Please select Yes or No"},
		{Name: "petAllowed", Kind: KindEnum, Enum: models.YesNo, Message: "Please select Yes or No"},
		{Name: "nonVegAllowed", Kind: KindEnum, Enum: models.YesNo, Message: "Please select Yes or No"},
	},
}

var ConsultationSchema = Schema{
	Name: "consultation",
	Fields: []Field{
		{Name: "transactionId", MinLen: 5, Transform: strings.TrimSpace, Message: "Please enter a valid transaction ID."},
		{Name: "name", MinLen: 2, Message: "Name must be at least 2 characters."},
		{Name: "email", Kind: KindEmail, Message: "Please enter a valid email address."},
		{Name: "phone", MinLen: 10, Message: "Phone number must be at least 10 digits."},
		{Name: "message", MinLen: 10, MaxLen: 500, Message: "Message must be at least 10 characters.", MaxMessage: "Message cannot exceed 500 characters."},
	},
}

var InquirySchema = Schema{
	Name: "inquiry",
	Fields: []Field{
		{Name: "reason", Kind: KindEnum, Enum: models.InquiryReasons, Message: "Please select a reason."},
		{Name: "isDealer", Kind: KindEnum, Enum: models.YesNo, Message: "Please specify if you are a dealer."},
		{Name: "name", MinLen: 2, Message: "Name must be at least 2 characters."},
		{Name: "phone", MinLen: 10, Message: "Please enter a valid 10-digit phone number."},
		{Name: "agreed", Kind: KindBool, MustBeTrue: true, Message: "You must agree to the terms to proceed."},
	},
}

// ContactSchema is the "contact us about this property" form.
var ContactSchema = Schema{
	Name: "contact",
	Fields: []Field{
		{Name: "name", MinLen: 2, Message: "Name must be at least 2 characters."},
		{Name: "email", Kind: KindEmail, Message: "Please enter a valid email address."},
		{Name: "phone", MinLen: 10, Message: "Please enter a valid phone number."},
		{Name: "message", MinLen: 10, Message: "Message must be at least 10 characters."},
		{Name: "propertyTitle", Message: "Property title is required."},
		{Name: "propertyUrl", Kind: KindURL, Message: "Invalid url"},
	},
}

var LoginSchema = Schema{
	Name: "login",
	Fields: []Field{
		{Name: "email", Kind: KindEmail, Transform: strings.TrimSpace, Message: "Please enter a valid email address."},
		{Name: "password", MinLen: 1, Message: "Password is required."},
	},
}

// EmailSchema guards the mail dispatch endpoint; every field is required.
var EmailSchema = Schema{
	Name: "email",
	Fields: []Field{
		{Name: "to", MinLen: 1, Message: "Missing required email fields."},
		{Name: "subject", MinLen: 1, Message: "Missing required email fields."},
		{Name: "text", MinLen: 1, Message: "Missing required email fields."},
		{Name: "html", MinLen: 1, Message: "Missing required email fields."},
	},
}
