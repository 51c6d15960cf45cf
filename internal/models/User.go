package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	UserNumber  string  `json:"userNumber" gorm:"unique"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       *string `json:"email" gorm:"unique"` // optional for patients; NULL keeps the unique index happy
	Password    string  `json:"-"`
	Phone       string  `json:"phone"`
	DateOfBirth string  `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      string  `json:"gender"`      // "male", "female", "other"
	Address     string  `json:"address,omitempty"`
	Role        string  `json:"role"` // "admin", "personnel", "patient"
	// No default tag: gorm would drop an explicit false on insert.
	// Every create path sets this flag itself.
	IsActive    bool    `json:"isActive"`

	// Provenance only: which admin/personnel registered this user.
	CreatedBy *uint `json:"createdBy,omitempty"`
	Creator   *User `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
