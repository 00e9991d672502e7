package domain_test

import (
	"testing"

	"github.com/simbahq/nyumba/internal/domain"
)

func TestNewListing_StartsAvailable(t *testing.T) {
	l := domain.NewListing("lst-1", "acc-1", domain.ListingDetails{
		Title:      "Flat 1",
		City:       "Nairobi",
		RentAmount: 20000,
	})

	if l.Occupancy != domain.OccupancyAvailable {
		t.Errorf("Occupancy = %q, want %q", l.Occupancy, domain.OccupancyAvailable)
	}
	if l.OwnerID != "acc-1" {
		t.Errorf("OwnerID = %q, want %q", l.OwnerID, "acc-1")
	}
}

func TestListingPatch_Apply(t *testing.T) {
	l := domain.NewListing("lst-1", "acc-1", domain.ListingDetails{
		Title:      "Flat 1",
		City:       "Nairobi",
		RentAmount: 20000,
	})

	title := "Flat 1 Deluxe"
	rent := int64(25000)
	domain.ListingPatch{Title: &title, RentAmount: &rent}.Apply(&l)

	if l.Title != "Flat 1 Deluxe" {
		t.Errorf("Title = %q, want %q", l.Title, "Flat 1 Deluxe")
	}
	if l.RentAmount != 25000 {
		t.Errorf("RentAmount = %d, want 25000", l.RentAmount)
	}
	// Unpatched fields stay put.
	if l.City != "Nairobi" {
		t.Errorf("City = %q, want %q", l.City, "Nairobi")
	}
	if l.Occupancy != domain.OccupancyAvailable {
		t.Errorf("Occupancy = %q, want %q", l.Occupancy, domain.OccupancyAvailable)
	}
}

func TestSearchFilter_Matches(t *testing.T) {
	listing := domain.Listing{
		ID:           "lst-1",
		Title:        "Modern 2 Bedroom Apartment",
		Address:      "Waiyaki Way, Westlands",
		City:         "Nairobi",
		PropertyType: "2 Bedroom",
		RentAmount:   45000,
		Occupancy:    domain.OccupancyAvailable,
		Features:     []string{"Fast WiFi", "Parking"},
	}

	tests := []struct {
		name   string
		filter domain.SearchFilter
		want   bool
	}{
		{"empty filter", domain.SearchFilter{}, true},
		{"text matches city case-insensitively", domain.SearchFilter{Text: "nairobi"}, true},
		{"text matches address", domain.SearchFilter{Text: "westlands"}, true},
		{"text no match", domain.SearchFilter{Text: "mombasa"}, false},
		{"within price band", domain.SearchFilter{MinPrice: 10000, MaxPrice: 50000}, true},
		{"below min price", domain.SearchFilter{MinPrice: 50000}, false},
		{"above max price", domain.SearchFilter{MaxPrice: 30000}, false},
		{"zero max price is open bound", domain.SearchFilter{MinPrice: 10000}, true},
		{"property type equal", domain.SearchFilter{PropertyType: "2 Bedroom"}, true},
		{"property type differs", domain.SearchFilter{PropertyType: "Villa"}, false},
		{"feature substring case-insensitive", domain.SearchFilter{RequiredFeatures: []string{"wifi"}}, true},
		{"all features must match", domain.SearchFilter{RequiredFeatures: []string{"wifi", "pool"}}, false},
		{"combined", domain.SearchFilter{Text: "apartment", MinPrice: 10000, MaxPrice: 50000, RequiredFeatures: []string{"parking"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(listing); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
