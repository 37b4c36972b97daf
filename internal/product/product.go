package product

import (
	"time"

	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
)

// Product lifecycle statuses. Status is the single source of truth for
// whether an item is loanable right now; only the loan engine and staff
// edits may change it.
const (
	StatusAvailable           = "available"
	StatusConfirmationPending = "confirmation_pending"
	StatusBorrowed            = "borrowed"
	StatusUnavailable         = "unavailable"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusConfirmationPending, StatusBorrowed, StatusUnavailable:
		return true
	}
	return false
}

type Product struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	DonorContact string    `json:"donor_contact,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Product) IsLoanable() bool {
	return p.Status == StatusAvailable
}

func ToDataModel(p *Product) *productDatamodel.Product {
	return &productDatamodel.Product{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		DonorContact: p.DonorContact,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModel(p *productDatamodel.Product) *Product {
	return &Product{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		DonorContact: p.DonorContact,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromDataModelSlice(products []*productDatamodel.Product) []*Product {
	result := make([]*Product, len(products))
	for i, p := range products {
		result[i] = FromDataModel(p)
	}
	return result
}
