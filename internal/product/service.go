package product

import (
	"log/slog"
	"time"

	"github.com/levkatan/lending-management/internal"
	productDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/product"
)

type RepositoryAPI interface {
	Create(p *productDatamodel.Product) error
	GetByID(id int64) (*productDatamodel.Product, error)
	List(filter ListFilter) ([]*productDatamodel.Product, error)
	Update(p *productDatamodel.Product) error
	Delete(id int64) error
}

// Service covers catalog listing and the staff-facing inventory CRUD.
// Lifecycle-driven status changes go through the loan engine, not here.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &productDatamodel.Product{
		Name:         dto.Name,
		Category:     dto.Category,
		Description:  dto.Description,
		DonorContact: dto.DonorContact,
		Status:       StatusAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create product", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("product created", "product_id", row.ID, "name", row.Name)
	return FromDataModel(row), nil
}

func (s *Service) GetByID(id int64) (*Product, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) List(filter ListFilter) ([]*Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(filter)
	if err != nil {
		s.logger.Error("failed to list products", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) Update(id int64, dto UpdateProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Name != "" {
		row.Name = dto.Name
	}
	if dto.Category != "" {
		row.Category = dto.Category
	}
	if dto.Description != "" {
		row.Description = dto.Description
	}
	if dto.DonorContact != "" {
		row.DonorContact = dto.DonorContact
	}
	if dto.Status != "" {
		row.Status = dto.Status
	}
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update product", "error", err, "product_id", id)
		return nil, err
	}

	s.logger.Info("product updated", "product_id", id)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete product", "error", err, "product_id", id)
		return internal.NewInternalError("failed to delete product", err)
	}

	s.logger.Info("product deleted", "product_id", id)
	return nil
}
