package repo

import (
	"context"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/store"
)

// Accounts is the typed repository for accounts.
type Accounts struct {
	*Collection[domain.Account]
}

// NewAccounts creates the accounts repository.
func NewAccounts(st store.Store) *Accounts {
	return &Accounts{NewCollection(st, store.TableAccounts, domain.KindAccount,
		func(a domain.Account) string { return a.ID })}
}

// FindByEmail returns the account registered under the given email, if
// any. Emails are compared exactly; registration enforces uniqueness.
func (r *Accounts) FindByEmail(ctx context.Context, email string) (domain.Account, bool, error) {
	matches, err := r.FindWhere(ctx, func(a domain.Account) bool { return a.Email == email })
	if err != nil || len(matches) == 0 {
		return domain.Account{}, false, err
	}
	return matches[0], true, nil
}

// Listings is the typed repository for listings.
type Listings struct {
	*Collection[domain.Listing]
}

// NewListings creates the listings repository.
func NewListings(st store.Store) *Listings {
	return &Listings{NewCollection(st, store.TableListings, domain.KindListing,
		func(l domain.Listing) string { return l.ID })}
}

// OwnedBy returns every listing belonging to the given account.
func (r *Listings) OwnedBy(ctx context.Context, accountID string) ([]domain.Listing, error) {
	return r.FindWhere(ctx, func(l domain.Listing) bool { return l.OwnerID == accountID })
}

// Tenancies is the typed repository for tenancies.
type Tenancies struct {
	*Collection[domain.Tenancy]
}

// NewTenancies creates the tenancies repository.
func NewTenancies(st store.Store) *Tenancies {
	return &Tenancies{NewCollection(st, store.TableTenancies, domain.KindTenancy,
		func(t domain.Tenancy) string { return t.ID })}
}

// ActiveForListing returns the active tenancy referencing the listing,
// if one exists. Should more than one exist (a caller bug), the first
// in insertion order wins.
func (r *Tenancies) ActiveForListing(ctx context.Context, listingID string) (domain.Tenancy, bool, error) {
	matches, err := r.FindWhere(ctx, func(t domain.Tenancy) bool {
		return t.Active && t.ListingID == listingID
	})
	if err != nil || len(matches) == 0 {
		return domain.Tenancy{}, false, err
	}
	return matches[0], true, nil
}

// ForListing returns every tenancy, active or not, referencing the
// listing.
func (r *Tenancies) ForListing(ctx context.Context, listingID string) ([]domain.Tenancy, error) {
	return r.FindWhere(ctx, func(t domain.Tenancy) bool { return t.ListingID == listingID })
}

// Transactions is the typed repository for the payment log.
type Transactions struct {
	*Collection[domain.Transaction]
}

// NewTransactions creates the transactions repository.
func NewTransactions(st store.Store) *Transactions {
	return &Transactions{NewCollection(st, store.TableTransactions, domain.KindTransaction,
		func(t domain.Transaction) string { return t.ID })}
}

// ForTenancy returns every payment recorded against the tenancy.
func (r *Transactions) ForTenancy(ctx context.Context, tenancyID string) ([]domain.Transaction, error) {
	return r.FindWhere(ctx, func(t domain.Transaction) bool { return t.TenancyID == tenancyID })
}

// Tickets is the typed repository for service tickets.
type Tickets struct {
	*Collection[domain.ServiceTicket]
}

// NewTickets creates the tickets repository.
func NewTickets(st store.Store) *Tickets {
	return &Tickets{NewCollection(st, store.TableServiceTickets, domain.KindServiceTicket,
		func(t domain.ServiceTicket) string { return t.ID })}
}
