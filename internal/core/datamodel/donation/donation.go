package donation

import "time"

type DonationRequest struct {
	ID           int64     `gorm:"primaryKey"`
	UserID       int64     `gorm:"column:user_id;not null"`
	Name         string    `gorm:"column:name;not null"`
	Category     string    `gorm:"column:category"`
	Description  string    `gorm:"column:description"`
	DonorContact string    `gorm:"column:donor_contact"`
	Status       string    `gorm:"column:status;not null;default:donation_pending"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (DonationRequest) TableName() string {
	return "donation_requests"
}
