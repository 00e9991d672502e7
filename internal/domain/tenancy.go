package domain

// TenancyState is the lifecycle state of a tenancy. The persisted form
// is the Active boolean; these states exist for the transition
// validator.
type TenancyState string

const (
	TenancyActive     TenancyState = "active"
	TenancyTerminated TenancyState = "terminated"
)

// TenancyEvent is an action that moves a tenancy through its lifecycle.
type TenancyEvent string

// TenancyEventTerminate ends a tenancy. There is no reverse event: a
// terminated tenancy is never re-activated.
const TenancyEventTerminate TenancyEvent = "terminate"

// TenancyTransition defines a valid lifecycle change.
type TenancyTransition struct {
	Event TenancyEvent
	Src   TenancyState
	Dst   TenancyState
}

// TenancyTransitions lists every valid tenancy lifecycle change. This
// is domain knowledge consumed by the FSM adapter.
var TenancyTransitions = []TenancyTransition{
	{Event: TenancyEventTerminate, Src: TenancyActive, Dst: TenancyTerminated},
}

// Tenancy links a tenant account to a listing for a date range. At most
// one active tenancy may reference a listing at any time.
//
// Start and end dates are opaque YYYY-MM-DD display strings supplied by
// the caller; the engine never computes with them.
type Tenancy struct {
	ID        string `json:"id"`
	ListingID string `json:"propertyId"`
	TenantID  string `json:"tenantId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Active    bool   `json:"isActive"`
}

// NewTenancy creates an active tenancy.
func NewTenancy(id, listingID, tenantID, startDate, endDate string) Tenancy {
	return Tenancy{
		ID:        id,
		ListingID: listingID,
		TenantID:  tenantID,
		StartDate: startDate,
		EndDate:   endDate,
		Active:    true,
	}
}

// LifecycleState maps the persisted Active flag to a validator state.
func (t Tenancy) LifecycleState() TenancyState {
	if t.Active {
		return TenancyActive
	}
	return TenancyTerminated
}
