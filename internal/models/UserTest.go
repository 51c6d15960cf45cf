// internal/models/user_test_order.go
package models

import (
	"gorm.io/gorm"
)

// UserTest is one ordered instance of a catalog test for a patient.
// The catalog row it references is never hard-deleted, so historical
// orders keep resolving even after the entry is deactivated.
type UserTest struct {
	gorm.Model
	UserID        uint   `json:"userId" gorm:"index"`
	TestCatalogID uint   `json:"testCatalogId" gorm:"index"`
	User          User   `gorm:"foreignKey:UserID" json:"-"`

	TestResult string `json:"testResult"`
	TestDate   string `json:"testDate"`
	Notes      string `json:"notes"`
	Status     string `json:"status" gorm:"default:pending"` // "pending", "in-progress", "completed", "cancelled"
}

func (UserTest) TableName() string {
	return "user_tests"
}
