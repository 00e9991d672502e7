package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/simbahq/nyumba/internal/app"
	"github.com/simbahq/nyumba/internal/domain"
)

const timeFormat = time.RFC3339

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	ID       string `json:"id" doc:"Unique identifier"`
	Name     string `json:"name" doc:"Display name"`
	Email    string `json:"email" doc:"Registration email"`
	Role     string `json:"role" doc:"ADMIN, LANDLORD or TENANT"`
	Status   string `json:"status" doc:"Approval state"`
	Phone    string `json:"phone,omitempty" doc:"Contact phone"`
	JoinedAt string `json:"joined_at" doc:"Registration timestamp (ISO 8601)"`
}

func toAccountResponse(a domain.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Role:     string(a.Role),
		Status:   string(a.Status),
		Phone:    a.Phone,
		JoinedAt: a.JoinedAt.Format(timeFormat),
	}
}

// ListingResponse is the API representation of a listing.
type ListingResponse struct {
	ID            string   `json:"id" doc:"Unique identifier"`
	OwnerID       string   `json:"owner_id" doc:"Owning account"`
	Title         string   `json:"title"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	PropertyType  string   `json:"property_type"`
	RentAmount    int64    `json:"rent_amount" doc:"Monthly rent in whole shillings"`
	DepositAmount int64    `json:"deposit_amount"`
	Occupancy     string   `json:"occupancy" doc:"AVAILABLE, OCCUPIED or MAINTENANCE (engine-managed)"`
	ImageRef      string   `json:"image_ref"`
	Features      []string `json:"features"`
}

func toListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		Title:         l.Title,
		Address:       l.Address,
		City:          l.City,
		PropertyType:  l.PropertyType,
		RentAmount:    l.RentAmount,
		DepositAmount: l.DepositAmount,
		Occupancy:     string(l.Occupancy),
		ImageRef:      l.ImageRef,
		Features:      l.Features,
	}
}

func toListingResponses(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = toListingResponse(l)
	}
	return out
}

// TenancyResponse is the API representation of a tenancy.
type TenancyResponse struct {
	ID        string `json:"id" doc:"Unique identifier"`
	ListingID string `json:"listing_id"`
	TenantID  string `json:"tenant_id"`
	StartDate string `json:"start_date" doc:"YYYY-MM-DD"`
	EndDate   string `json:"end_date" doc:"YYYY-MM-DD"`
	Active    bool   `json:"active"`
}

func toTenancyResponse(t domain.Tenancy) TenancyResponse {
	return TenancyResponse{
		ID:        t.ID,
		ListingID: t.ListingID,
		TenantID:  t.TenantID,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Active:    t.Active,
	}
}

// TransactionResponse is the API representation of a payment record.
type TransactionResponse struct {
	ID            string `json:"id" doc:"Unique identifier"`
	TenancyID     string `json:"tenancy_id"`
	Amount        int64  `json:"amount" doc:"Whole shillings, always positive"`
	OccurredAt    string `json:"occurred_at" doc:"Payment timestamp (ISO 8601)"`
	Kind          string `json:"kind" doc:"RENT or DEPOSIT"`
	Method        string `json:"method"`
	Status        string `json:"status"`
	ReferenceCode string `json:"reference_code" doc:"Opaque display code"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		TenancyID:     t.TenancyID,
		Amount:        t.Amount,
		OccurredAt:    t.OccurredAt.Format(timeFormat),
		Kind:          string(t.Kind),
		Method:        string(t.Method),
		Status:        string(t.Status),
		ReferenceCode: t.ReferenceCode,
	}
}

// TicketResponse is the API representation of a service ticket.
type TicketResponse struct {
	ID          string `json:"id" doc:"Unique identifier"`
	ListingID   string `json:"listing_id"`
	TenantID    string `json:"tenant_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	ReportedAt  string `json:"reported_at" doc:"ISO 8601"`
}

func toTicketResponse(t domain.ServiceTicket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		ListingID:   t.ListingID,
		TenantID:    t.TenantID,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		ReportedAt:  t.ReportedAt.Format(timeFormat),
	}
}

// --- Inputs ---

type RegisterAccountInput struct {
	Body struct {
		Name  string `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Email string `json:"email" format:"email" doc:"Registration email (unique)"`
		Role  string `json:"role" enum:"ADMIN,LANDLORD,TENANT" doc:"Account role"`
		Phone string `json:"phone,omitempty" doc:"Contact phone"`
	}
}

type SetAccountStatusInput struct {
	ID   string `path:"id" doc:"Account ID"`
	Body struct {
		Status string `json:"status" enum:"PENDING,APPROVED,REJECTED" doc:"New status"`
	}
}

type CreateListingInput struct {
	Body struct {
		OwnerID       string   `json:"owner_id" minLength:"1" doc:"Owning account ID"`
		Title         string   `json:"title" minLength:"1" maxLength:"255"`
		Address       string   `json:"address,omitempty"`
		City          string   `json:"city,omitempty"`
		PropertyType  string   `json:"property_type,omitempty"`
		RentAmount    int64    `json:"rent_amount" minimum:"1" doc:"Monthly rent in whole shillings"`
		DepositAmount int64    `json:"deposit_amount,omitempty" minimum:"0"`
		ImageRef      string   `json:"image_ref,omitempty"`
		Features      []string `json:"features,omitempty"`
	}
}

type UpdateListingInput struct {
	ID   string `path:"id" doc:"Listing ID"`
	Body struct {
		Title         *string   `json:"title,omitempty"`
		Address       *string   `json:"address,omitempty"`
		City          *string   `json:"city,omitempty"`
		PropertyType  *string   `json:"property_type,omitempty"`
		RentAmount    *int64    `json:"rent_amount,omitempty" minimum:"1"`
		DepositAmount *int64    `json:"deposit_amount,omitempty" minimum:"0"`
		ImageRef      *string   `json:"image_ref,omitempty"`
		Features      *[]string `json:"features,omitempty"`
	}
}

type SearchListingsInput struct {
	Text         string   `query:"text" required:"false" doc:"Case-insensitive match on title/city/type/address"`
	MinPrice     int64    `query:"min_price" required:"false" doc:"Lower rent bound"`
	MaxPrice     int64    `query:"max_price" required:"false" doc:"Upper rent bound (0 = open)"`
	PropertyType string   `query:"property_type" required:"false" doc:"Exact property type"`
	Features     []string `query:"feature" required:"false" doc:"Required features (all must match)"`
}

type CreateTenancyInput struct {
	Body struct {
		ListingID string `json:"listing_id" minLength:"1"`
		TenantID  string `json:"tenant_id" minLength:"1"`
		StartDate string `json:"start_date" doc:"YYYY-MM-DD"`
		EndDate   string `json:"end_date" doc:"YYYY-MM-DD"`
	}
}

type RecordTransactionInput struct {
	Body struct {
		TenancyID string `json:"tenancy_id" minLength:"1"`
		Amount    int64  `json:"amount" doc:"Whole shillings, must be positive"`
		Kind      string `json:"kind" enum:"RENT,DEPOSIT"`
		Method    string `json:"method" enum:"MPESA,BANK_TRANSFER,CASH"`
	}
}

type FileTicketInput struct {
	Body struct {
		ListingID   string `json:"listing_id" minLength:"1"`
		TenantID    string `json:"tenant_id" minLength:"1"`
		Description string `json:"description" minLength:"1"`
		Priority    string `json:"priority" enum:"LOW,MEDIUM,HIGH"`
	}
}

type idInput struct {
	ID string `path:"id"`
}

// --- Outputs ---

type accountOutput struct {
	Body AccountResponse
}

type listingOutput struct {
	Body ListingResponse
}

type listingsOutput struct {
	Body []ListingResponse
}

type tenancyOutput struct {
	Body TenancyResponse
}

type tenanciesOutput struct {
	Body []TenancyResponse
}

type transactionOutput struct {
	Body TransactionResponse
}

// TenancyTransactionsResponse lists a tenancy's payments with their
// aggregate total.
type TenancyTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	RevenueTotal int64                 `json:"revenue_total" doc:"Sum of amounts"`
}

type tenancyTransactionsOutput struct {
	Body TenancyTransactionsResponse
}

type ticketOutput struct {
	Body TicketResponse
}

// Register adds all ledger API routes to the Huma API.
func Register(api huma.API, ledger *app.Ledger, views *app.Views) {
	huma.Register(api, huma.Operation{
		OperationID: "register-account",
		Method:      http.MethodPost,
		Path:        "/api/v1/accounts",
		Summary:     "Register an account",
		Description: "Landlords are created PENDING and need admin approval; tenants and admins are APPROVED immediately.",
		Tags:        []string{"Accounts"},
	}, func(ctx context.Context, input *RegisterAccountInput) (*accountOutput, error) {
		account, err := ledger.RegisterAccount(ctx, input.Body.Name, input.Body.Email, domain.Role(input.Body.Role), input.Body.Phone)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &accountOutput{Body: toAccountResponse(account)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-account-status",
		Method:      http.MethodPut,
		Path:        "/api/v1/accounts/{id}/status",
		Summary:     "Set an account's approval status",
		Tags:        []string{"Accounts"},
	}, func(ctx context.Context, input *SetAccountStatusInput) (*accountOutput, error) {
		account, err := ledger.SetAccountStatus(ctx, input.ID, domain.AccountStatus(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &accountOutput{Body: toAccountResponse(account)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "listings-owned-by",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{id}/listings",
		Summary:     "List an account's listings",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *idInput) (*listingsOutput, error) {
		listings, err := views.ListingsOwnedBy(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &listingsOutput{Body: toListingResponses(listings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "active-tenancy-for-tenant",
		Method:      http.MethodGet,
		Path:        "/api/v1/accounts/{id}/tenancy",
		Summary:     "Get a tenant's active tenancy",
		Tags:        []string{"Tenancies"},
	}, func(ctx context.Context, input *idInput) (*tenancyOutput, error) {
		tenancy, err := views.ActiveTenancyFor(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &tenancyOutput{Body: toTenancyResponse(tenancy)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-listing",
		Method:      http.MethodPost,
		Path:        "/api/v1/listings",
		Summary:     "Create a listing",
		Description: "The owner account must exist. Owner approval is not checked here; callers gate on it.",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *CreateListingInput) (*listingOutput, error) {
		listing, err := ledger.CreateListing(ctx, input.Body.OwnerID, domain.ListingDetails{
			Title:         input.Body.Title,
			Address:       input.Body.Address,
			City:          input.Body.City,
			PropertyType:  input.Body.PropertyType,
			RentAmount:    input.Body.RentAmount,
			DepositAmount: input.Body.DepositAmount,
			ImageRef:      input.Body.ImageRef,
			Features:      input.Body.Features,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &listingOutput{Body: toListingResponse(listing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-listing",
		Method:      http.MethodPatch,
		Path:        "/api/v1/listings/{id}",
		Summary:     "Edit a listing in place",
		Description: "Occupancy cannot be edited; it moves only with tenancy operations.",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *UpdateListingInput) (*listingOutput, error) {
		listing, err := ledger.UpdateListing(ctx, input.ID, domain.ListingPatch{
			Title:         input.Body.Title,
			Address:       input.Body.Address,
			City:          input.Body.City,
			PropertyType:  input.Body.PropertyType,
			RentAmount:    input.Body.RentAmount,
			DepositAmount: input.Body.DepositAmount,
			ImageRef:      input.Body.ImageRef,
			Features:      input.Body.Features,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &listingOutput{Body: toListingResponse(listing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-listings",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings",
		Summary:     "Search available listings",
		Tags:        []string{"Listings"},
	}, func(ctx context.Context, input *SearchListingsInput) (*listingsOutput, error) {
		listings, err := views.SearchAvailableListings(ctx, domain.SearchFilter{
			Text:             input.Text,
			MinPrice:         input.MinPrice,
			MaxPrice:         input.MaxPrice,
			PropertyType:     input.PropertyType,
			RequiredFeatures: input.Features,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &listingsOutput{Body: toListingResponses(listings)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "tenancies-for-listing",
		Method:      http.MethodGet,
		Path:        "/api/v1/listings/{id}/tenancies",
		Summary:     "List a listing's tenancy history",
		Tags:        []string{"Tenancies"},
	}, func(ctx context.Context, input *idInput) (*tenanciesOutput, error) {
		tenancies, err := views.TenanciesForListing(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := make([]TenancyResponse, len(tenancies))
		for i, t := range tenancies {
			out[i] = toTenancyResponse(t)
		}
		return &tenanciesOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-tenancy",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenancies",
		Summary:     "Create a tenancy",
		Description: "Marks the listing OCCUPIED in the same atomic step. Fails if the listing already has an active tenancy.",
		Tags:        []string{"Tenancies"},
	}, func(ctx context.Context, input *CreateTenancyInput) (*tenancyOutput, error) {
		tenancy, err := ledger.CreateTenancy(ctx, input.Body.ListingID, input.Body.TenantID, input.Body.StartDate, input.Body.EndDate)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &tenancyOutput{Body: toTenancyResponse(tenancy)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "terminate-tenancy",
		Method:      http.MethodPost,
		Path:        "/api/v1/tenancies/{id}/terminate",
		Summary:     "Terminate a tenancy",
		Description: "Marks the listing AVAILABLE in the same atomic step. Terminating twice fails.",
		Tags:        []string{"Tenancies"},
	}, func(ctx context.Context, input *idInput) (*struct{}, error) {
		if err := ledger.TerminateTenancy(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transactions-for-tenancy",
		Method:      http.MethodGet,
		Path:        "/api/v1/tenancies/{id}/transactions",
		Summary:     "List a tenancy's payments",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *idInput) (*tenancyTransactionsOutput, error) {
		transactions, err := views.TransactionsForTenancy(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := TenancyTransactionsResponse{
			Transactions: make([]TransactionResponse, len(transactions)),
			RevenueTotal: app.RevenueTotal(transactions),
		}
		for i, t := range transactions {
			out.Transactions[i] = toTransactionResponse(t)
		}
		return &tenancyTransactionsOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "record-transaction",
		Method:      http.MethodPost,
		Path:        "/api/v1/transactions",
		Summary:     "Record a payment",
		Description: "Appends to the immutable payment log. The tenancy must exist but may be terminated.",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *RecordTransactionInput) (*transactionOutput, error) {
		transaction, err := ledger.RecordTransaction(ctx, input.Body.TenancyID, input.Body.Amount,
			domain.TransactionKind(input.Body.Kind), domain.PaymentMethod(input.Body.Method))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &transactionOutput{Body: toTransactionResponse(transaction)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "file-ticket",
		Method:      http.MethodPost,
		Path:        "/api/v1/tickets",
		Summary:     "File a maintenance ticket",
		Tags:        []string{"Tickets"},
	}, func(ctx context.Context, input *FileTicketInput) (*ticketOutput, error) {
		ticket, err := ledger.FileServiceTicket(ctx, input.Body.ListingID, input.Body.TenantID,
			input.Body.Description, domain.TicketPriority(input.Body.Priority))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ticketOutput{Body: toTicketResponse(ticket)}, nil
	})
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return huma.Error404NotFound(notFound.Error())
	}

	var emailErr *domain.EmailConflictError
	if errors.As(err, &emailErr) {
		return huma.Error409Conflict(emailErr.Error())
	}

	var occupiedErr *domain.OccupiedError
	if errors.As(err, &occupiedErr) {
		return huma.Error409Conflict(occupiedErr.Error())
	}

	var terminatedErr *domain.AlreadyTerminatedError
	if errors.As(err, &terminatedErr) {
		return huma.Error422UnprocessableEntity(terminatedErr.Error())
	}

	var amountErr *domain.InvalidAmountError
	if errors.As(err, &amountErr) {
		return huma.Error422UnprocessableEntity(amountErr.Error())
	}

	if errors.Is(err, domain.ErrStorageUnavailable) {
		return huma.Error503ServiceUnavailable("storage unavailable")
	}

	return huma.Error500InternalServerError("internal server error")
}
