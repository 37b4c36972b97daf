package product

import "time"

type Product struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Category     string    `gorm:"column:category"`
	Description  string    `gorm:"column:description"`
	DonorContact string    `gorm:"column:donor_contact"`
	Status       string    `gorm:"column:status;not null;default:available"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}
