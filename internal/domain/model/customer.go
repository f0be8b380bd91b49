package model

import "time"

// Customer is an authenticated storefront account (user directory).
type Customer struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(64);not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(150)" json:"last_name"`
	PhoneNumber  *string    `gorm:"type:varchar(32)" json:"phone_number"`
	Address      *string    `gorm:"type:varchar(255)" json:"address"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (c Customer) FullName() string {
	switch {
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	default:
		return c.FirstName
	}
}
