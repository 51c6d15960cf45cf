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

// ListUsers returns user records, optionally filtered by role and by a
// search term over name/email.
func ListUsers(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.ReadUsers); err != nil {
		forbidden(c)
		return
	}

	query := config.DB.Model(&models.User{})
	if r := c.Query("role"); r != "" {
		query = query.Where("role = ?", r)
	}
	if search := c.Query("search"); search != "" {
		term := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", term, term, term)
	}

	var users []models.User
	if err := query.Order("last_name, first_name").Find(&users).Error; err != nil {
		serverError(c, err, "could not list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// GetUser fetches a single user record by internal id.
func GetUser(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.ReadUsers); err != nil {
		forbidden(c)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		serverError(c, err, "could not fetch user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
