package donation

import (
	"log/slog"
	"time"

	donationDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/donation"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
	"github.com/levkatan/lending-management/internal/product"
)

type RepositoryAPI interface {
	Create(d *donationDatamodel.DonationRequest) error
	GetByID(id int64) (*donationDatamodel.DonationRequest, error)
	ListByStatus(status string) ([]*donationDatamodel.DonationRequest, error)
	ListByUser(userID int64) ([]*donationDatamodel.DonationRequest, error)
	Approve(id int64) (*donationDatamodel.DonationRequest, *productDatamodel.Product, error)
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(userID int64, dto CreateDonationDTO) (*DonationRequest, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &donationDatamodel.DonationRequest{
		UserID:       userID,
		Name:         dto.Name,
		Category:     dto.Category,
		Description:  dto.Description,
		DonorContact: dto.DonorContact,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create donation request", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("donation request created", "donation_id", row.ID, "user_id", userID)
	return FromDataModel(row), nil
}

func (s *Service) ListMine(userID int64) ([]*DonationRequest, error) {
	rows, err := s.repo.ListByUser(userID)
	if err != nil {
		s.logger.Error("failed to list donation requests", "error", err, "user_id", userID)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) ListPending() ([]*DonationRequest, error) {
	rows, err := s.repo.ListByStatus(StatusPending)
	if err != nil {
		s.logger.Error("failed to list pending donations", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

// Approve converts the donation into a catalog product. The status flip and
// the product insert happen in one transaction.
func (s *Service) Approve(id int64) (*DonationRequest, *product.Product, error) {
	donationRow, productRow, err := s.repo.Approve(id)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("donation approved",
		"donation_id", id,
		"product_id", productRow.ID,
	)
	return FromDataModel(donationRow), product.FromDataModel(productRow), nil
}

// Reject discards the donation request entirely.
func (s *Service) Reject(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete donation request", "error", err, "donation_id", id)
		return err
	}

	s.logger.Info("donation rejected", "donation_id", id)
	return nil
}
