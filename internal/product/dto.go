package product

import (
	"fmt"

	"github.com/levkatan/lending-management/internal"
)

type CreateProductDTO struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DonorContact string `json:"donor_contact"`
}

func (d CreateProductDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeMissingFields)
	}
	return nil
}

// UpdateProductDTO updates product fields; empty strings leave a field
// untouched except Status, which is validated when present. Status here is
// the staff override path.
type UpdateProductDTO struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DonorContact string `json:"donor_contact"`
	Status       string `json:"status"`
}

func (d UpdateProductDTO) Validate() error {
	if d.Status != "" && !ValidStatus(d.Status) {
		return internal.NewValidationError(fmt.Sprintf("invalid status %q", d.Status), internal.ErrCodeInvalidStatus)
	}
	return nil
}

// ListFilter narrows the catalog listing.
type ListFilter struct {
	Status   string
	Category string
}

func (f ListFilter) Validate() error {
	if f.Status != "" && !ValidStatus(f.Status) {
		return internal.NewValidationError(fmt.Sprintf("invalid status %q", f.Status), internal.ErrCodeInvalidStatus)
	}
	return nil
}
