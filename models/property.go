package models

type FloorPlan struct {
	Name string `bson:"name" json:"name"`
	URL  string `bson:"url" json:"url"`
}

// Property is a curated listing managed by the brokerage.
type Property struct {
	ID                  string      `bson:"_id,omitempty" json:"id"`
	Title               string      `bson:"title" json:"title"`
	Description         string      `bson:"description" json:"description"`
	Price               float64     `bson:"price" json:"price"`
	Location            string      `bson:"location" json:"location"`
	LocationURL         string      `bson:"locationUrl,omitempty" json:"locationUrl,omitempty"`
	Bedrooms            int         `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms           int         `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Area                float64     `bson:"area" json:"area"`
	Type                string      `bson:"type" json:"type"`
	Images              []string    `bson:"images" json:"images"`
	IsFeatured          bool        `bson:"isFeatured" json:"isFeatured"`
	Facing              string      `bson:"facing,omitempty" json:"facing,omitempty"`
	SaleType            string      `bson:"saleType,omitempty" json:"saleType,omitempty"`
	Features            []string    `bson:"features" json:"features"`
	FloorPlans          []FloorPlan `bson:"floorPlans,omitempty" json:"floorPlans,omitempty"`
	IsUnderConstruction bool        `bson:"isUnderConstruction" json:"isUnderConstruction"`
	PossessionDate      string      `bson:"possessionDate,omitempty" json:"possessionDate,omitempty"`
}

func (p Property) IsResidential() bool {
	return OneOf(ResidentialTypes, p.Type)
}

func (p Property) IsCommercial() bool {
	return OneOf(CommercialTypes, p.Type)
}
