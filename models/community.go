package models

// CommunityListing is an owner-submitted posting on the community board.
// OwnerEmail and OwnerPhone must not reach a browsing client before an
// inquiry has been recorded; use Public for anything rendered to visitors.
type CommunityListing struct {
	ID               string   `bson:"_id,omitempty" json:"id"`
	Title            string   `bson:"title" json:"title"`
	Description      string   `bson:"description" json:"description"`
	Price            float64  `bson:"price" json:"price"`
	Deposit          float64  `bson:"deposit" json:"deposit"`
	Area             float64  `bson:"area" json:"area"`
	Location         string   `bson:"location" json:"location"`
	Address          string   `bson:"address" json:"address"`
	OwnerName        string   `bson:"ownerName" json:"ownerName"`
	OwnerEmail       string   `bson:"ownerEmail" json:"ownerEmail,omitempty"`
	OwnerPhone       string   `bson:"ownerPhone" json:"ownerPhone,omitempty"`
	Images           []string `bson:"images" json:"images"`
	ListingType      string   `bson:"listingType" json:"listingType"`
	PropertyType     string   `bson:"propertyType" json:"propertyType"`
	BHK              string   `bson:"bhk" json:"bhk"`
	Bathrooms        int      `bson:"bathrooms" json:"bathrooms"`
	Furnishing       string   `bson:"furnishing" json:"furnishing"`
	Parking          string   `bson:"parking" json:"parking"`
	PreferredTenants string   `bson:"preferredTenants" json:"preferredTenants"`
	Facing           string   `bson:"facing" json:"facing"`
	Floor            string   `bson:"floor" json:"floor"`
	WaterSupply      string   `bson:"waterSupply" json:"waterSupply"`
	GatedSecurity    string   `bson:"gatedSecurity" json:"gatedSecurity"`
	PetAllowed       string   `bson:"petAllowed" json:"petAllowed"`
	NonVegAllowed    string   `bson:"nonVegAllowed" json:"nonVegAllowed"`
}

// Public returns a copy without the owner's contact details.
func (l CommunityListing) Public() CommunityListing {
	l.OwnerEmail = ""
	l.OwnerPhone = ""
	return l
}

// OwnerContact is what an inquiry unlocks.
type OwnerContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (l CommunityListing) Contact() OwnerContact {
	return OwnerContact{Name: l.OwnerName, Email: l.OwnerEmail, Phone: l.OwnerPhone}
}
