package user

import (
	"time"

	userDatamodel "github.com/levkatan/lending-management/internal/core/datamodel/user"
)

// User is the admin-facing view of an account. The credential hash never
// leaves the repository layer.
type User struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Username    string    `json:"username"`
	PhoneNumber string    `json:"phone,omitempty"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:          u.ID,
		FullName:    u.FullName,
		Username:    u.Username,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*userDatamodel.User) []*User {
	result := make([]*User, len(rows))
	for i, u := range rows {
		result[i] = FromDataModel(u)
	}
	return result
}
