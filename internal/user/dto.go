package user

import (
	"fmt"

	"github.com/levkatan/lending-management/internal"
	"github.com/levkatan/lending-management/internal/auth"
)

type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d UpdateRoleDTO) Validate() error {
	if d.Role == "" {
		return internal.NewValidationError("role is required", internal.ErrCodeMissingFields)
	}
	if !auth.ValidRole(d.Role) {
		return internal.NewValidationError(fmt.Sprintf("invalid role %q", d.Role), internal.ErrCodeInvalidRole)
	}
	return nil
}
