package app

import (
	"context"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/repo"
	"github.com/simbahq/nyumba/internal/store"
)

// Views exposes the read-only projections the presentation layer
// renders from. Every method composes repository reads; nothing here
// mutates.
type Views struct {
	listings     *repo.Listings
	tenancies    *repo.Tenancies
	transactions *repo.Transactions
}

// NewViews creates the projection layer over the given store.
func NewViews(st store.Store) *Views {
	return &Views{
		listings:     repo.NewListings(st),
		tenancies:    repo.NewTenancies(st),
		transactions: repo.NewTransactions(st),
	}
}

// ListingsOwnedBy returns every listing belonging to the account.
func (v *Views) ListingsOwnedBy(ctx context.Context, accountID string) ([]domain.Listing, error) {
	return v.listings.OwnedBy(ctx, accountID)
}

// ActiveTenancyFor returns the tenant's current active tenancy. If a
// caller bug has left more than one active, the first in insertion
// order is returned; this is deterministic but otherwise undefined.
func (v *Views) ActiveTenancyFor(ctx context.Context, tenantID string) (domain.Tenancy, error) {
	matches, err := v.tenancies.FindWhere(ctx, func(t domain.Tenancy) bool {
		return t.Active && t.TenantID == tenantID
	})
	if err != nil {
		return domain.Tenancy{}, err
	}
	if len(matches) == 0 {
		return domain.Tenancy{}, &domain.NotFoundError{Kind: domain.KindTenancy, ID: tenantID}
	}
	return matches[0], nil
}

// TenanciesForListing returns the listing's full tenancy history.
func (v *Views) TenanciesForListing(ctx context.Context, listingID string) ([]domain.Tenancy, error) {
	return v.tenancies.ForListing(ctx, listingID)
}

// TransactionsForTenancy returns every payment recorded against the
// tenancy, in insertion order.
func (v *Views) TransactionsForTenancy(ctx context.Context, tenancyID string) ([]domain.Transaction, error) {
	return v.transactions.ForTenancy(ctx, tenancyID)
}

// SearchAvailableListings returns AVAILABLE listings matching the
// filter.
func (v *Views) SearchAvailableListings(ctx context.Context, filter domain.SearchFilter) ([]domain.Listing, error) {
	return v.listings.FindWhere(ctx, func(l domain.Listing) bool {
		return l.Occupancy == domain.OccupancyAvailable && filter.Matches(l)
	})
}

// RevenueTotal sums transaction amounts for reporting.
func RevenueTotal(transactions []domain.Transaction) int64 {
	var total int64
	for _, t := range transactions {
		total += t.Amount
	}
	return total
}
