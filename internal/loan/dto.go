package loan

import (
	"time"

	"github.com/levkatan/lending-management/internal"
)

const dateLayout = "2006-01-02"

type CreateBorrowDTO struct {
	ProductID    int64  `json:"product_id"`
	ReturnedDate string `json:"returned_date"`
}

func (d CreateBorrowDTO) Validate() error {
	if d.ProductID <= 0 {
		return internal.NewValidationError("product_id is required", internal.ErrCodeMissingFields)
	}
	if d.ReturnedDate == "" {
		return internal.NewValidationError("returned_date is required", internal.ErrCodeMissingFields)
	}
	if _, err := time.Parse(dateLayout, d.ReturnedDate); err != nil {
		return internal.NewValidationError("returned_date must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

// ParsedDate must only be called after Validate.
func (d CreateBorrowDTO) ParsedDate() time.Time {
	t, _ := time.Parse(dateLayout, d.ReturnedDate)
	return t
}

type ExtensionDTO struct {
	NewReturnedDate string `json:"new_returned_date"`
}

func (d ExtensionDTO) Validate() error {
	if d.NewReturnedDate == "" {
		return internal.NewValidationError("new_returned_date is required", internal.ErrCodeMissingFields)
	}
	if _, err := time.Parse(dateLayout, d.NewReturnedDate); err != nil {
		return internal.NewValidationError("new_returned_date must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d ExtensionDTO) ParsedDate() time.Time {
	t, _ := time.Parse(dateLayout, d.NewReturnedDate)
	return t
}
