package user

import (
	"log/slog"
	"time"

	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	List() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
}

// Service is the admin surface over accounts: listing, role changes and
// removal. Registration lives in the auth package.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List() ([]*User, error) {
	rows, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return FromDataModelSlice(rows), nil
}

func (s *Service) UpdateRole(id int64, dto UpdateRoleDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	row.Role = dto.Role
	row.UpdatedAt = time.Now()

	if err := s.repo.Update(row); err != nil {
		s.logger.Error("failed to update user role", "error", err, "user_id", id)
		return nil, err
	}

	s.logger.Info("user role updated", "user_id", id, "role", dto.Role)
	return FromDataModel(row), nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return err
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}
