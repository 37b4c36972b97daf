package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	donationDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/donation"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/donation"
	"github.com/levkatan/lending-management/internal/product"
)

type DonationRepository struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) donation.RepositoryAPI {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Create(d *donationDatamodel.DonationRequest) error {
	return r.db.Create(d).Error
}

func (r *DonationRepository) GetByID(id int64) (*donationDatamodel.DonationRequest, error) {
	var row donationDatamodel.DonationRequest
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDonationNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *DonationRepository) ListByStatus(status string) ([]*donationDatamodel.DonationRequest, error) {
	var rows []*donationDatamodel.DonationRequest
	err := r.db.Where("status = ?", status).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func (r *DonationRepository) ListByUser(userID int64) ([]*donationDatamodel.DonationRequest, error) {
	var rows []*donationDatamodel.DonationRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Approve flips the donation to approved and creates the catalog product in
// the same transaction; a racing decision loses on the status guard.
func (r *DonationRepository) Approve(id int64) (*donationDatamodel.DonationRequest, *productDatamodel.Product, error) {
	var donationRow donationDatamodel.DonationRequest
	var productRow productDatamodel.Product

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).First(&donationRow).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal.ErrDonationNotFound
			}
			return err
		}

		res := tx.Model(&donationDatamodel.DonationRequest{}).
			Where("id = ? AND status = ?", id, donation.StatusPending).
			Update("status", donation.StatusApproved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidStatus
		}

		now := time.Now()
		productRow = productDatamodel.Product{
			Name:         donationRow.Name,
			Category:     donationRow.Category,
			Description:  donationRow.Description,
			DonorContact: donationRow.DonorContact,
			Status:       product.StatusAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&productRow).Error; err != nil {
			return err
		}

		donationRow.Status = donation.StatusApproved
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &donationRow, &productRow, nil
}

func (r *DonationRepository) Delete(id int64) error {
	return r.db.Delete(&donationDatamodel.DonationRequest{}, id).Error
}
