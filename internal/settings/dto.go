package settings

import (
	"fmt"

	"github.com/levkatan/lending-management/internal"
)

// UpdateSettingDTO is the admin payload for changing a single limit.
type UpdateSettingDTO struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

func (d UpdateSettingDTO) Validate() error {
	if d.Key == "" {
		return internal.NewValidationError("key is required", internal.ErrCodeMissingFields)
	}
	if !KnownKey(d.Key) {
		return internal.NewValidationError(fmt.Sprintf("unknown setting %q", d.Key), internal.ErrCodeInvalidSetting)
	}
	if d.Value < 1 {
		return internal.NewValidationError("value must be a positive integer", internal.ErrCodeInvalidSetting)
	}
	return nil
}
