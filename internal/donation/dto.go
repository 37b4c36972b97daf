package donation

import "github.com/levkatan/lending-management/internal"

type CreateDonationDTO struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DonorContact string `json:"donor_contact"`
}

func (d CreateDonationDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeMissingFields)
	}
	return nil
}
