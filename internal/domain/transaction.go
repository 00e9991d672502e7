package domain

import "time"

// TransactionKind distinguishes rent from deposit payments.
type TransactionKind string

const (
	KindRent    TransactionKind = "RENT"
	KindDeposit TransactionKind = "DEPOSIT"
)

// PaymentMethod is how a payment was made.
type PaymentMethod string

const (
	MethodMpesa        PaymentMethod = "MPESA"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCash         PaymentMethod = "CASH"
)

// TransactionStatus is the settlement state of a payment.
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionPending   TransactionStatus = "PENDING"
)

// Transaction is one payment against a tenancy. Transactions form an
// append-only log: once recorded they are never mutated or removed.
// Amounts are whole shillings and always strictly positive.
type Transaction struct {
	ID            string            `json:"id"`
	TenancyID     string            `json:"leaseId"`
	Amount        int64             `json:"amount"`
	OccurredAt    time.Time         `json:"date"`
	Kind          TransactionKind   `json:"type"`
	Method        PaymentMethod     `json:"method"`
	Status        TransactionStatus `json:"status"`
	ReferenceCode string            `json:"transactionCode"`
}

// NewTransaction creates a completed payment record stamped with the
// current time. ReferenceCode is an opaque display string; nothing
// validates or parses it.
func NewTransaction(id, tenancyID string, amount int64, kind TransactionKind, method PaymentMethod, referenceCode string) Transaction {
	return Transaction{
		ID:            id,
		TenancyID:     tenancyID,
		Amount:        amount,
		OccurredAt:    time.Now().UTC(),
		Kind:          kind,
		Method:        method,
		Status:        TransactionCompleted,
		ReferenceCode: referenceCode,
	}
}
