package domain

import "strings"

// Occupancy is the derived availability state of a listing. The engine
// only ever writes AVAILABLE and OCCUPIED, tracking whether an active
// tenancy references the listing. MAINTENANCE is a manual override set
// outside the engine (seed data or operator tooling) and is never
// assigned or cleared by any engine operation.
type Occupancy string

const (
	OccupancyAvailable   Occupancy = "AVAILABLE"
	OccupancyOccupied    Occupancy = "OCCUPIED"
	OccupancyMaintenance Occupancy = "MAINTENANCE"
)

// Listing is a rental property offered by a landlord account.
type Listing struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"landlordId"`
	Title         string    `json:"title"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	PropertyType  string    `json:"propertyType"`
	RentAmount    int64     `json:"rentAmount"`
	DepositAmount int64     `json:"depositAmount"`
	Occupancy     Occupancy `json:"status"`
	ImageRef      string    `json:"imageUrl"`
	Features      []string  `json:"features"`
}

// ListingDetails carries the caller-supplied fields of a new listing.
// Occupancy is deliberately absent; it is engine-managed.
type ListingDetails struct {
	Title         string
	Address       string
	City          string
	PropertyType  string
	RentAmount    int64
	DepositAmount int64
	ImageRef      string
	Features      []string
}

// NewListing creates a listing in the AVAILABLE state.
func NewListing(id, ownerID string, d ListingDetails) Listing {
	return Listing{
		ID:            id,
		OwnerID:       ownerID,
		Title:         d.Title,
		Address:       d.Address,
		City:          d.City,
		PropertyType:  d.PropertyType,
		RentAmount:    d.RentAmount,
		DepositAmount: d.DepositAmount,
		Occupancy:     OccupancyAvailable,
		ImageRef:      d.ImageRef,
		Features:      d.Features,
	}
}

// ListingPatch holds optional replacement values for an in-place edit.
// Nil fields are left untouched. There is no occupancy field: that
// state only moves as a side effect of tenancy operations.
type ListingPatch struct {
	Title         *string
	Address       *string
	City          *string
	PropertyType  *string
	RentAmount    *int64
	DepositAmount *int64
	ImageRef      *string
	Features      *[]string
}

// Apply merges the patch into the listing.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	if p.City != nil {
		l.City = *p.City
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.RentAmount != nil {
		l.RentAmount = *p.RentAmount
	}
	if p.DepositAmount != nil {
		l.DepositAmount = *p.DepositAmount
	}
	if p.ImageRef != nil {
		l.ImageRef = *p.ImageRef
	}
	if p.Features != nil {
		l.Features = *p.Features
	}
}

// SearchFilter narrows a listing search. Zero values mean "no
// constraint": an empty text matches everything, MaxPrice of 0 is an
// open upper bound, and an empty feature list requires nothing.
type SearchFilter struct {
	Text             string
	MinPrice         int64
	MaxPrice         int64
	PropertyType     string
	RequiredFeatures []string
}

// Matches reports whether the listing satisfies every filter criterion.
// Text is matched case-insensitively against title, city, property type
// and address. Each required feature must be a case-insensitive
// substring of at least one listing feature.
func (f SearchFilter) Matches(l Listing) bool {
	if f.Text != "" {
		term := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(l.Title), term) &&
			!strings.Contains(strings.ToLower(l.City), term) &&
			!strings.Contains(strings.ToLower(l.PropertyType), term) &&
			!strings.Contains(strings.ToLower(l.Address), term) {
			return false
		}
	}
	if l.RentAmount < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && l.RentAmount > f.MaxPrice {
		return false
	}
	if f.PropertyType != "" && l.PropertyType != f.PropertyType {
		return false
	}
	for _, want := range f.RequiredFeatures {
		found := false
		for _, have := range l.Features {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
