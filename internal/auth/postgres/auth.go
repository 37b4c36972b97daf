package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
)

// Repository persists user credentials via GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(u *userDatamodel.User) error {
	if err := r.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrDuplicateIdentity
		}
		return err
	}
	return nil
}

func (r *Repository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
