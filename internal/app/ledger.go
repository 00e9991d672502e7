// Package app holds the consistency rules engine and the read-only
// projections. The Ledger is the only surface external callers mutate
// through; it keeps the five collections mutually consistent.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/simbahq/nyumba/internal/domain"
	"github.com/simbahq/nyumba/internal/repo"
	"github.com/simbahq/nyumba/internal/store"
)

// Ledger enforces the cross-entity invariants on every mutation:
// listing occupancy mirrors active tenancies, at most one active
// tenancy per listing, landlord registration starts pending, and the
// payment log is append-only. Each operation either commits all of its
// writes in one store transaction or commits nothing.
//
// The Ledger does not gate listing creation on the owner's approval
// status; that check belongs to the caller.
type Ledger struct {
	store        store.Store
	accounts     *repo.Accounts
	listings     *repo.Listings
	tenancies    *repo.Tenancies
	transactions *repo.Transactions
	tickets      *repo.Tickets
	publisher    domain.EventPublisher
	validator    domain.TransitionValidator
}

// NewLedger creates the engine over the given store and adapters.
func NewLedger(st store.Store, publisher domain.EventPublisher, validator domain.TransitionValidator) *Ledger {
	return &Ledger{
		store:        st,
		accounts:     repo.NewAccounts(st),
		listings:     repo.NewListings(st),
		tenancies:    repo.NewTenancies(st),
		transactions: repo.NewTransactions(st),
		tickets:      repo.NewTickets(st),
		publisher:    publisher,
		validator:    validator,
	}
}

// RegisterAccount creates an account. Landlords start PENDING, tenants
// and admins APPROVED. Fails with EmailConflictError when the email is
// already registered.
func (l *Ledger) RegisterAccount(ctx context.Context, name, email string, role domain.Role, phone string) (domain.Account, error) {
	if _, taken, err := l.accounts.FindByEmail(ctx, email); err != nil {
		return domain.Account{}, err
	} else if taken {
		return domain.Account{}, &domain.EmailConflictError{Email: email}
	}

	id, err := newID("acc")
	if err != nil {
		return domain.Account{}, fmt.Errorf("generating account id: %w", err)
	}

	account := domain.NewAccount(id, name, email, role, phone)

	if err := l.accounts.Insert(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("creating account: %w", err)
	}

	if err := l.publish(ctx, domain.EventAccountRegistered, domain.KindAccount, account.ID); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// SetAccountStatus overwrites an account's status. Any transition is
// permitted, including reversing a rejection; restricting this is a
// deliberate non-feature.
func (l *Ledger) SetAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus) (domain.Account, error) {
	account, err := l.accounts.FindByID(ctx, accountID)
	if err != nil {
		return domain.Account{}, err
	}

	account.Status = status

	if err := l.accounts.Replace(ctx, account.ID, account); err != nil {
		return domain.Account{}, fmt.Errorf("updating account status: %w", err)
	}

	if err := l.publish(ctx, domain.EventAccountStatusChanged, domain.KindAccount, account.ID); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// CreateListing creates an AVAILABLE listing owned by the given
// account. The owner must exist; its approval status is not checked
// here.
func (l *Ledger) CreateListing(ctx context.Context, ownerID string, details domain.ListingDetails) (domain.Listing, error) {
	if _, err := l.accounts.FindByID(ctx, ownerID); err != nil {
		return domain.Listing{}, err
	}

	id, err := newID("lst")
	if err != nil {
		return domain.Listing{}, fmt.Errorf("generating listing id: %w", err)
	}

	listing := domain.NewListing(id, ownerID, details)

	if err := l.listings.Insert(ctx, listing); err != nil {
		return domain.Listing{}, fmt.Errorf("creating listing: %w", err)
	}

	if err := l.publish(ctx, domain.EventListingCreated, domain.KindListing, listing.ID); err != nil {
		return domain.Listing{}, err
	}
	return listing, nil
}

// UpdateListing merges the patch into the listing. Occupancy cannot be
// patched; it only moves as a side effect of tenancy operations.
func (l *Ledger) UpdateListing(ctx context.Context, listingID string, patch domain.ListingPatch) (domain.Listing, error) {
	listing, err := l.listings.FindByID(ctx, listingID)
	if err != nil {
		return domain.Listing{}, err
	}

	patch.Apply(&listing)

	if err := l.listings.Replace(ctx, listing.ID, listing); err != nil {
		return domain.Listing{}, fmt.Errorf("updating listing: %w", err)
	}

	if err := l.publish(ctx, domain.EventListingUpdated, domain.KindListing, listing.ID); err != nil {
		return domain.Listing{}, err
	}
	return listing, nil
}

// CreateTenancy creates an active tenancy and flips the listing to
// OCCUPIED as one atomic step. Fails with OccupiedError when the
// listing already carries an active tenancy.
func (l *Ledger) CreateTenancy(ctx context.Context, listingID, tenantID, startDate, endDate string) (domain.Tenancy, error) {
	listing, err := l.listings.FindByID(ctx, listingID)
	if err != nil {
		return domain.Tenancy{}, err
	}
	if _, err := l.accounts.FindByID(ctx, tenantID); err != nil {
		return domain.Tenancy{}, err
	}
	if _, occupied, err := l.tenancies.ActiveForListing(ctx, listingID); err != nil {
		return domain.Tenancy{}, err
	} else if occupied {
		return domain.Tenancy{}, &domain.OccupiedError{ListingID: listingID}
	}

	id, err := newID("ten")
	if err != nil {
		return domain.Tenancy{}, fmt.Errorf("generating tenancy id: %w", err)
	}

	tenancy := domain.NewTenancy(id, listingID, tenantID, startDate, endDate)

	tenancyWrite, err := l.tenancies.StageInsert(ctx, tenancy)
	if err != nil {
		return domain.Tenancy{}, err
	}

	listing.Occupancy = domain.OccupancyOccupied
	listingWrite, err := l.listings.StageReplace(ctx, listing.ID, listing)
	if err != nil {
		return domain.Tenancy{}, err
	}

	if err := l.store.Write(ctx, tenancyWrite, listingWrite); err != nil {
		return domain.Tenancy{}, fmt.Errorf("creating tenancy: %w", err)
	}

	if err := l.publish(ctx, domain.EventTenancyCreated, domain.KindTenancy, tenancy.ID); err != nil {
		return domain.Tenancy{}, err
	}
	return tenancy, nil
}

// TerminateTenancy deactivates a tenancy and flips its listing back to
// AVAILABLE as one atomic step. A second termination fails with
// AlreadyTerminatedError.
func (l *Ledger) TerminateTenancy(ctx context.Context, tenancyID string) error {
	tenancy, err := l.tenancies.FindByID(ctx, tenancyID)
	if err != nil {
		return err
	}

	state, err := l.validator.Apply(ctx, tenancy.LifecycleState(), domain.TenancyEventTerminate)
	if err != nil {
		var trErr *domain.TransitionError
		if errors.As(err, &trErr) {
			return &domain.AlreadyTerminatedError{TenancyID: tenancyID}
		}
		return err
	}
	tenancy.Active = state == domain.TenancyActive

	tenancyWrite, err := l.tenancies.StageReplace(ctx, tenancy.ID, tenancy)
	if err != nil {
		return err
	}

	listing, err := l.listings.FindByID(ctx, tenancy.ListingID)
	if err != nil {
		return err
	}
	listing.Occupancy = domain.OccupancyAvailable
	listingWrite, err := l.listings.StageReplace(ctx, listing.ID, listing)
	if err != nil {
		return err
	}

	if err := l.store.Write(ctx, tenancyWrite, listingWrite); err != nil {
		return fmt.Errorf("terminating tenancy: %w", err)
	}

	return l.publish(ctx, domain.EventTenancyTerminated, domain.KindTenancy, tenancy.ID)
}

// RecordTransaction appends a payment to the log. The tenancy must
// exist but need not be active; late rent against a terminated tenancy
// is a legitimate record.
func (l *Ledger) RecordTransaction(ctx context.Context, tenancyID string, amount int64, kind domain.TransactionKind, method domain.PaymentMethod) (domain.Transaction, error) {
	if amount <= 0 {
		return domain.Transaction{}, &domain.InvalidAmountError{Amount: amount}
	}
	if _, err := l.tenancies.FindByID(ctx, tenancyID); err != nil {
		return domain.Transaction{}, err
	}

	id, err := newID("txn")
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("generating transaction id: %w", err)
	}

	transaction := domain.NewTransaction(id, tenancyID, amount, kind, method, newReferenceCode())

	if err := l.transactions.Insert(ctx, transaction); err != nil {
		return domain.Transaction{}, fmt.Errorf("recording transaction: %w", err)
	}

	if err := l.publish(ctx, domain.EventTransactionRecorded, domain.KindTransaction, transaction.ID); err != nil {
		return domain.Transaction{}, err
	}
	return transaction, nil
}

// FileServiceTicket creates a PENDING maintenance ticket. Both the
// listing and the reporting tenant must exist.
func (l *Ledger) FileServiceTicket(ctx context.Context, listingID, tenantID, description string, priority domain.TicketPriority) (domain.ServiceTicket, error) {
	if _, err := l.listings.FindByID(ctx, listingID); err != nil {
		return domain.ServiceTicket{}, err
	}
	if _, err := l.accounts.FindByID(ctx, tenantID); err != nil {
		return domain.ServiceTicket{}, err
	}

	id, err := newID("tkt")
	if err != nil {
		return domain.ServiceTicket{}, fmt.Errorf("generating ticket id: %w", err)
	}

	ticket := domain.NewServiceTicket(id, listingID, tenantID, description, priority)

	if err := l.tickets.Insert(ctx, ticket); err != nil {
		return domain.ServiceTicket{}, fmt.Errorf("filing ticket: %w", err)
	}

	if err := l.publish(ctx, domain.EventTicketFiled, domain.KindServiceTicket, ticket.ID); err != nil {
		return domain.ServiceTicket{}, err
	}
	return ticket, nil
}

func (l *Ledger) publish(ctx context.Context, event domain.Event, kind domain.Kind, id string) error {
	if err := l.publisher.Publish(ctx, event, domain.EntityRef{Kind: kind, ID: id}); err != nil {
		return fmt.Errorf("publishing %q: %w", event, err)
	}
	return nil
}
