package loan

import (
	"time"

	loanDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/loan"
)

// Borrow request lifecycle statuses. A request in an active status counts
// against the borrower's quota and holds the product out of the catalog.
const (
	StatusPending             = "pending"
	StatusConfirmationPending = "confirmation_pending"
	StatusApproved            = "approved"
	StatusRejected            = "rejected"
	StatusReturned            = "returned"
)

// Extension request statuses form an independent sub-lifecycle anchored to an
// approved loan.
const (
	ExtensionStatusPending  = "extension_pending"
	ExtensionStatusApproved = "extension_approved"
	ExtensionStatusRejected = "extension_rejected"
)

// ActiveStatuses are the borrow-request states that count against the
// per-user quota and keep the product locked.
var ActiveStatuses = []string{StatusPending, StatusConfirmationPending, StatusApproved}

type BorrowRequest struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"`
	ProductID    int64      `json:"product_id"`
	ReturnedDate *time.Time `json:"returned_date,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ExtensionRequest struct {
	ID              int64     `json:"id"`
	BorrowRequestID int64     `json:"borrow_request_id"`
	NewReturnedDate time.Time `json:"new_returned_date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromDataModel(r *loanDatamodel.BorrowRequest) *BorrowRequest {
	return &BorrowRequest{
		ID:           r.ID,
		UserID:       r.UserID,
		ProductID:    r.ProductID,
		ReturnedDate: r.ReturnedDate,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*loanDatamodel.BorrowRequest) []*BorrowRequest {
	result := make([]*BorrowRequest, len(rows))
	for i, r := range rows {
		result[i] = FromDataModel(r)
	}
	return result
}

func ExtensionFromDataModel(e *loanDatamodel.ExtensionRequest) *ExtensionRequest {
	return &ExtensionRequest{
		ID:              e.ID,
		BorrowRequestID: e.BorrowRequestID,
		NewReturnedDate: e.NewReturnedDate,
		Status:          e.Status,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ExtensionFromDataModelSlice(rows []*loanDatamodel.ExtensionRequest) []*ExtensionRequest {
	result := make([]*ExtensionRequest, len(rows))
	for i, e := range rows {
		result[i] = ExtensionFromDataModel(e)
	}
	return result
}
