// Package seed loads the demo fixture into an empty store so a fresh
// deployment is usable with no prior state.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"
)

// Accounts returns the fixture accounts: one admin, one approved
// landlord, one approved tenant.
func Accounts() []domain.Account {
	return []domain.Account{
		{
			ID:       "admin-1",
			Name:     "Admin Juma",
			Email:    "admin@simba.co.ke",
			Role:     domain.RoleAdmin,
			Status:   domain.AccountApproved,
			Phone:    "0700000000",
			JoinedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "landlord-1",
			Name:     "Mama Ngina Properties",
			Email:    "landlord@test.com",
			Role:     domain.RoleLandlord,
			Status:   domain.AccountApproved,
			Phone:    "0711223344",
			JoinedAt: time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "tenant-1",
			Name:     "John Kamau",
			Email:    "tenant@test.com",
			Role:     domain.RoleTenant,
			Status:   domain.AccountApproved,
			Phone:    "0722334455",
			JoinedAt: time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

// Listings returns the fixture listings. The occupied villa has no
// backing tenancy; it predates the engine and invariants only cover
// engine operations.
func Listings() []domain.Listing {
	return []domain.Listing{
		{
			ID:            "prop-1",
			OwnerID:       "landlord-1",
			Title:         "Modern 2 Bedroom Apartment",
			Address:       "Waiyaki Way, Westlands",
			City:          "Nairobi",
			PropertyType:  "2 Bedroom",
			RentAmount:    45000,
			DepositAmount: 45000,
			Occupancy:     domain.OccupancyAvailable,
			ImageRef:      "https://picsum.photos/800/600?random=1",
			Features:      []string{"Parking", "Security", "Water Backup"},
		},
		{
			ID:            "prop-2",
			OwnerID:       "landlord-1",
			Title:         "Beachfront Villa",
			Address:       "Nyali Beach Road",
			City:          "Mombasa",
			PropertyType:  "Villa",
			RentAmount:    120000,
			DepositAmount: 240000,
			Occupancy:     domain.OccupancyOccupied,
			ImageRef:      "https://picsum.photos/800/600?random=2",
			Features:      []string{"Pool", "Ocean View", "Furnished"},
		},
	}
}

// Apply writes the fixture iff the accounts collection is empty. It is
// safe to call on every startup.
func Apply(ctx context.Context, st store.Store) error {
	existing, err := st.Read(ctx, store.TableAccounts)
	if err != nil {
		return fmt.Errorf("checking for existing accounts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	accounts, err := encode(Accounts())
	if err != nil {
		return err
	}
	listings, err := encode(Listings())
	if err != nil {
		return err
	}

	if err := st.Write(ctx,
		store.TableWrite{Table: store.TableAccounts, Records: accounts},
		store.TableWrite{Table: store.TableListings, Records: listings},
	); err != nil {
		return fmt.Errorf("writing seed fixture: %w", err)
	}
	return nil
}

func encode[T any](records []T) ([]store.Record, error) {
	raw := make([]store.Record, len(records))
	for i, rec := range records {
		doc, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding seed record: %w", err)
		}
		raw[i] = doc
	}
	return raw, nil
}
