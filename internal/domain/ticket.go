package domain

import "time"

// TicketStatus tracks a maintenance request. The engine only ever
// creates tickets in the PENDING state; moving them onward is the job
// of whatever workflow tooling sits in front of the ledger.
type TicketStatus string

const (
	TicketPending    TicketStatus = "PENDING"
	TicketInProgress TicketStatus = "IN_PROGRESS"
	TicketResolved   TicketStatus = "RESOLVED"
)

// TicketPriority is the urgency a tenant assigned to their request.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "LOW"
	PriorityMedium TicketPriority = "MEDIUM"
	PriorityHigh   TicketPriority = "HIGH"
)

// ServiceTicket is a maintenance request a tenant filed against a
// listing.
type ServiceTicket struct {
	ID          string         `json:"id"`
	ListingID   string         `json:"propertyId"`
	TenantID    string         `json:"tenantId"`
	Description string         `json:"description"`
	Status      TicketStatus   `json:"status"`
	Priority    TicketPriority `json:"priority"`
	ReportedAt  time.Time      `json:"dateReported"`
}

// NewServiceTicket creates a pending ticket stamped with the current time.
func NewServiceTicket(id, listingID, tenantID, description string, priority TicketPriority) ServiceTicket {
	return ServiceTicket{
		ID:          id,
		ListingID:   listingID,
		TenantID:    tenantID,
		Description: description,
		Status:      TicketPending,
		Priority:    priority,
		ReportedAt:  time.Now().UTC(),
	}
}
