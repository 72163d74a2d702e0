package domain

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string  `gorm:"primaryKey;column:id" json:"id"`
	FullName  string  `gorm:"column:full_name;not null" json:"fullName"`
	Email     string  `gorm:"column:email;unique;not null" json:"email"`
	Password  string  `gorm:"column:password;not null" json:"-"`
	Role      string  `gorm:"column:role;default:customer" json:"role"`
	Phone     string  `gorm:"column:phone" json:"phone,omitempty"`
	Address   string  `gorm:"column:address" json:"address,omitempty"`
	City      string  `gorm:"column:city" json:"city,omitempty"`
	Country   string  `gorm:"column:country" json:"country,omitempty"`
	Wallet    float64 `gorm:"column:wallet;default:0" json:"wallet"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
