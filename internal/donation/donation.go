package donation

import (
	"time"

	donationDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/donation"
)

const (
	StatusPending  = "donation_pending"
	StatusApproved = "approved"
)

// DonationRequest is a user's offer of an item. Approval converts it into a
// catalog product; staff may also discard it outright.
type DonationRequest struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	DonorContact string    `json:"donor_contact,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(d *donationDatamodel.DonationRequest) *DonationRequest {
	return &DonationRequest{
		ID:           d.ID,
		UserID:       d.UserID,
		Name:         d.Name,
		Category:     d.Category,
		Description:  d.Description,
		DonorContact: d.DonorContact,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*donationDatamodel.DonationRequest) []*DonationRequest {
	result := make([]*DonationRequest, len(rows))
	for i, d := range rows {
		result[i] = FromDataModel(d)
	}
	return result
}
