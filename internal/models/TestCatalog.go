// internal/models/test_catalog.go
package models

import (
	"gorm.io/gorm"
)

// TestCatalog is a reusable kind of lab test with pricing and
// preparation metadata. Individual orders reference it via UserTest.
type TestCatalog struct {
	gorm.Model

	Name                    string  `json:"name" binding:"required"`
	Category                string  `json:"category"` // "microbiology", "vitamin", "biochemistry", "hematology", "immunology"
	Description             string  `json:"description"`
	PreparationInstructions string  `json:"preparationInstructions"`
	NormalRange             string  `json:"normalRange"`
	Price                   float64 `json:"price"`
	EstimatedDuration       int     `json:"estimatedDuration"` // hours
	IsActive                bool    `json:"isActive" gorm:"default:true"`
}

func (TestCatalog) TableName() string {
	return "test_catalog"
}
