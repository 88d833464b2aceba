package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dcode-github/realty_portal/forms"
	"github.com/dcode-github/realty_portal/workflows"
)

var sampleProperties = []forms.Form{
	{
		"title": "Lakeview Villa", "description": "Four bedroom villa facing the Kokapet lake with a private garden.",
		"price": "32500000", "location": "Kokapet, Hyderabad", "area": "4200", "type": "Villa",
		"bedrooms": "4", "bathrooms": "5", "facing": "East", "saleType": "Fresh Sales", "isFeatured": "true",
		"images": "https://images.sudharealty.in/lakeview-1.jpg, https://images.sudharealty.in/lakeview-2.jpg",
		"features": "Clubhouse, Swimming Pool, Power Backup",
	},
	{
		"title": "Skyline Residency 3 BHK", "description": "Gated community apartment close to the financial district.",
		"price": "14500000", "location": "Gachibowli, Hyderabad", "area": "1850", "type": "Apartment",
		"bedrooms": "3", "bathrooms": "3", "facing": "North-East", "saleType": "Resales",
		"isUnderConstruction": "true", "possessionDate": "Dec 2026",
		"images": "https://images.sudharealty.in/skyline-1.jpg",
		"features": "Gym, Children's Play Area",
	},
	{
		"title": "Shadnagar Open Plot", "description": "HMDA approved open plot on a 40 ft road.",
		"price": "4500000", "location": "Shadnagar", "area": "2700", "type": "Open Plot", "facing": "West",
		"images": "https://images.sudharealty.in/shadnagar-plot.jpg",
	},
	{
		"title": "Hitech City Office Floor", "description": "Plug and play office floor with 120 workstations.",
		"price": "48000000", "location": "Hitech City, Hyderabad", "area": "9000", "type": "Office",
		"images": "https://images.sudharealty.in/hitech-office.jpg",
	},
}

var sampleCommunityListings = []forms.Form{
	{
		"title": "2 BHK near Botanical Garden", "description": "Bright semi-furnished flat with balcony and cross ventilation.",
		"price": "22000", "deposit": "60000", "area": "1150", "location": "Kondapur",
		"address": "Flat 302, Green Meadows, Kondapur", "ownerName": "Meera Rao", "ownerEmail": "meera.rao@example.com",
		"ownerPhone": "9123456780", "listingType": "rent", "propertyType": "Apartment/Gated Community",
		"bhk": "2 BHK", "bathrooms": "2", "furnishing": "Semi-Furnished", "parking": "Both",
		"preferredTenants": "Family", "facing": "East", "floor": "3", "waterSupply": "Both",
		"gatedSecurity": "Yes", "petAllowed": "No", "nonVegAllowed": "Yes",
	},
	{
		"title": "Independent house in Kukatpally", "description": "Two floor independent house with a terrace garden.",
		"price": "9500000", "area": "2200", "location": "Kukatpally",
		"address": "Plot 18, KPHB Colony", "ownerName": "Srinivas", "ownerEmail": "srinivas@example.com",
		"ownerPhone": "9988776655", "listingType": "sale", "propertyType": "Independent House",
		"bhk": "4+ BHK", "bathrooms": "4", "furnishing": "Unfurnished", "parking": "4-wheeler",
		"preferredTenants": "Any", "facing": "North", "floor": "G+1", "waterSupply": "Borewell",
		"gatedSecurity": "No", "petAllowed": "Yes", "nonVegAllowed": "Yes",
	},
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample listings for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap()
			if err != nil {
				return err
			}
			defer rt.close()

			svc := workflows.New(workflows.Deps{Store: rt.store, Logger: rt.log})
			defer svc.Wait()
			return seed(context.Background(), svc, rt.log)
		},
	}
}

func seed(ctx context.Context, svc *workflows.Service, log *zap.Logger) error {
	for _, form := range sampleProperties {
		p, err := svc.CreateProperty(ctx, form)
		if err != nil {
			return fmt.Errorf("seed property %q: %w", form["title"], err)
		}
		log.Info("Seeded property", zap.String("id", p.ID), zap.String("title", p.Title))
	}
	for _, form := range sampleCommunityListings {
		l, err := svc.CreateCommunityListing(ctx, form)
		if err != nil {
			return fmt.Errorf("seed community listing %q: %w", form["title"], err)
		}
		log.Info("Seeded community listing", zap.String("id", l.ID), zap.String("title", l.Title))
	}
	return nil
}
