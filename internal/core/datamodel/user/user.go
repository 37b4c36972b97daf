package user

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey"`
	FullName     string    `gorm:"column:full_name;not null"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	PhoneNumber  string    `gorm:"column:phone_number"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Role         string    `gorm:"column:role;not null;default:user"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
