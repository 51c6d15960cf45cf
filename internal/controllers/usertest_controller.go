package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lab_manager/internal/config"
	"lab_manager/internal/models"
	"lab_manager/internal/policy"
)

type createUserTestInput struct {
	UserID        uint   `json:"userId" binding:"required"`
	TestCatalogID uint   `json:"testCatalogId" binding:"required"`
	TestResult    string `json:"testResult"`
	TestDate      string `json:"testDate"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
}

// updateUserTestInput patches only the fields present in the request;
// absent fields stay untouched.
type updateUserTestInput struct {
	TestResult *string `json:"testResult"`
	TestDate   *string `json:"testDate"`
	Notes      *string `json:"notes"`
	Status     *string `json:"status"`
}

// userTestRow is a user test joined with its catalog metadata.
type userTestRow struct {
	models.UserTest
	TestName    string  `json:"testName"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	NormalRange string  `json:"normalRange"`
	Price       float64 `json:"price"`
}

// ListUserTests returns the orders for the user named by the required
// userId parameter. A patient is only ever allowed to ask about its
// own id; the check runs before any lookup so a denied caller learns
// nothing about other ids.
func ListUserTests(c *gin.Context) {
	callerID, role := identity(c)

	userIDStr := c.Query("userId")
	if userIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "userId parameter is required"})
		return
	}
	userID, err := strconv.ParseUint(userIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId"})
		return
	}

	if err := policy.AuthorizeOwner(role, policy.ReadUserTests, callerID, uint(userID)); err != nil {
		forbidden(c)
		return
	}

	// Initialized so an empty listing serializes as [] rather than null
	rows := []userTestRow{}
	err = config.DB.Table("user_tests").
		Select("user_tests.*, tc.name AS test_name, tc.category, tc.description, tc.normal_range, tc.price").
		Joins("LEFT JOIN test_catalog tc ON user_tests.test_catalog_id = tc.id").
		Where("user_tests.user_id = ? AND user_tests.deleted_at IS NULL", uint(userID)).
		Order("user_tests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		serverError(c, err, "could not list user tests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tests": rows})
}

// CreateUserTest orders a catalog test for a user.
func CreateUserTest(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.CreateUserTest); err != nil {
		forbidden(c)
		return
	}

	var input createUserTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	status := input.Status
	if status == "" {
		status = "pending"
	}
	if !validOrderStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, input.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		serverError(c, err, "could not verify user")
		return
	}

	var entry models.TestCatalog
	if err := config.DB.Where("is_active = ?", true).First(&entry, input.TestCatalogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Test not found in catalog"})
			return
		}
		serverError(c, err, "could not verify catalog entry")
		return
	}

	order := models.UserTest{
		UserID:        input.UserID,
		TestCatalogID: input.TestCatalogID,
		TestResult:    input.TestResult,
		TestDate:      input.TestDate,
		Notes:         input.Notes,
		Status:        status,
	}
	if err := config.DB.Create(&order).Error; err != nil {
		serverError(c, err, "could not create user test")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Test created successfully",
		"test":    order,
	})
}

// UpdateUserTest applies a partial patch over result, date, notes and
// status. An empty patch is rejected.
func UpdateUserTest(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.UpdateUserTest); err != nil {
		forbidden(c)
		return
	}

	var order models.UserTest
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Test not found"})
			return
		}
		serverError(c, err, "could not fetch user test")
		return
	}

	var input updateUserTestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.TestResult == nil && input.TestDate == nil && input.Notes == nil && input.Status == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}
	if input.Status != nil && !validOrderStatuses[*input.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	if input.TestResult != nil {
		order.TestResult = *input.TestResult
	}
	if input.TestDate != nil {
		order.TestDate = *input.TestDate
	}
	if input.Notes != nil {
		order.Notes = *input.Notes
	}
	if input.Status != nil {
		order.Status = *input.Status
	}

	if err := config.DB.Save(&order).Error; err != nil {
		serverError(c, err, "could not update user test")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Test updated successfully",
		"test":    order,
	})
}

// DeleteUserTest removes an order.
func DeleteUserTest(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.DeleteUserTest); err != nil {
		forbidden(c)
		return
	}

	result := config.DB.Delete(&models.UserTest{}, c.Param("id"))
	if result.Error != nil {
		serverError(c, result.Error, "could not delete user test")
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Test not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}
