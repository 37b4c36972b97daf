package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/levkatan/lending-management/internal"
	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
	"github.com/levkatan/lending-management/internal/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]*userDatamodel.User, error) {
	var rows []*userDatamodel.User
	err := r.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) Delete(id int64) error {
	return r.db.Delete(&userDatamodel.User{}, id).Error
}
