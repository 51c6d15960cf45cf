package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lab_manager/internal/config"
	"lab_manager/internal/models"
	"lab_manager/internal/policy"
)

type createCatalogInput struct {
	Name                    string  `json:"name" binding:"required"`
	Category                string  `json:"category" binding:"required"`
	Description             string  `json:"description" binding:"required"`
	PreparationInstructions string  `json:"preparationInstructions" binding:"required"`
	NormalRange             string  `json:"normalRange" binding:"required"`
	Price                   float64 `json:"price" binding:"required"`
	EstimatedDuration       int     `json:"estimatedDuration" binding:"required"`
}

// updateCatalogInput carries one optional slot per mutable attribute;
// absent fields are left untouched.
type updateCatalogInput struct {
	Name                    *string  `json:"name"`
	Category                *string  `json:"category"`
	Description             *string  `json:"description"`
	PreparationInstructions *string  `json:"preparationInstructions"`
	NormalRange             *string  `json:"normalRange"`
	Price                   *float64 `json:"price"`
	EstimatedDuration       *int     `json:"estimatedDuration"`
}

// ListCatalog lists active catalog entries, optionally filtered by
// category. Deactivated entries never appear here.
func ListCatalog(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.ReadCatalog); err != nil {
		forbidden(c)
		return
	}

	query := config.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category).Order("name")
	} else {
		query = query.Order("category, name")
	}

	var tests []models.TestCatalog
	if err := query.Find(&tests).Error; err != nil {
		serverError(c, err, "could not list test catalog")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

// CreateCatalogEntry adds a new test type to the catalog.
func CreateCatalogEntry(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.CreateCatalogEntry); err != nil {
		forbidden(c)
		return
	}

	var input createCatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !validCategories[input.Category] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		return
	}

	entry := models.TestCatalog{
		Name:                    input.Name,
		Category:                input.Category,
		Description:             input.Description,
		PreparationInstructions: input.PreparationInstructions,
		NormalRange:             input.NormalRange,
		Price:                   input.Price,
		EstimatedDuration:       input.EstimatedDuration,
		IsActive:                true,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		serverError(c, err, "could not create catalog entry")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Test added to catalog successfully",
		"test":    entry,
	})
}

// UpdateCatalogEntry applies a partial patch to a catalog entry.
func UpdateCatalogEntry(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.UpdateCatalogEntry); err != nil {
		forbidden(c)
		return
	}

	var entry models.TestCatalog
	if err := config.DB.First(&entry, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Test not found in catalog"})
			return
		}
		serverError(c, err, "could not fetch catalog entry")
		return
	}

	var input updateCatalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.Category != nil && !validCategories[*input.Category] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		return
	}

	if input.Name != nil {
		entry.Name = *input.Name
	}
	if input.Category != nil {
		entry.Category = *input.Category
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.PreparationInstructions != nil {
		entry.PreparationInstructions = *input.PreparationInstructions
	}
	if input.NormalRange != nil {
		entry.NormalRange = *input.NormalRange
	}
	if input.Price != nil {
		entry.Price = *input.Price
	}
	if input.EstimatedDuration != nil {
		entry.EstimatedDuration = *input.EstimatedDuration
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		serverError(c, err, "could not update catalog entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"test": entry})
}

// DeleteCatalogEntry deactivates a catalog entry. The row stays so
// historical user tests keep referencing it; it just stops listing.
func DeleteCatalogEntry(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.DeleteCatalogEntry); err != nil {
		forbidden(c)
		return
	}

	var entry models.TestCatalog
	if err := config.DB.First(&entry, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Test not found in catalog"})
			return
		}
		serverError(c, err, "could not fetch catalog entry")
		return
	}

	entry.IsActive = false
	if err := config.DB.Save(&entry).Error; err != nil {
		serverError(c, err, "could not deactivate catalog entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test removed from catalog"})
}
