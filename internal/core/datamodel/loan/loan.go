package loan

import "time"

type BorrowRequest struct {
	ID           int64      `gorm:"primaryKey"`
	UserID       int64      `gorm:"column:user_id;not null"`
	ProductID    int64      `gorm:"column:product_id;not null"`
	ReturnedDate *time.Time `gorm:"column:returned_date;type:date"`
	Status       string     `gorm:"column:status;not null;default:pending"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (BorrowRequest) TableName() string {
	return "borrow_requests"
}

type ExtensionRequest struct {
	ID              int64     `gorm:"primaryKey"`
	BorrowRequestID int64     `gorm:"column:borrow_request_id;not null"`
	NewReturnedDate time.Time `gorm:"column:new_returned_date;type:date;not null"`
	Status          string    `gorm:"column:status;not null;default:extension_pending"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (ExtensionRequest) TableName() string {
	return "extension_requests"
}
