package domain

import "time"

// Role identifies what an account holder can do in the system.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
)

// AccountStatus represents the approval state of an account.
// Landlords start PENDING and need an admin decision; tenants and
// admins are usable immediately.
type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

// Account is a registered user of the platform. Accounts are never
// deleted; Status carries logical removal.
type Account struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Role     Role          `json:"role"`
	Status   AccountStatus `json:"status"`
	Phone    string        `json:"phone,omitempty"`
	JoinedAt time.Time     `json:"joinedDate"`
}

// NewAccount creates an account with the initial status implied by its
// role: landlords await approval, everyone else is approved on the spot.
func NewAccount(id, name, email string, role Role, phone string) Account {
	status := AccountApproved
	if role == RoleLandlord {
		status = AccountPending
	}
	return Account{
		ID:       id,
		Name:     name,
		Email:    email,
		Role:     role,
		Status:   status,
		Phone:    phone,
		JoinedAt: time.Now().UTC(),
	}
}
