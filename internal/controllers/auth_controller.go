package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lab_manager/internal/auth"
	"lab_manager/internal/config"
	"lab_manager/internal/identifier"
	"lab_manager/internal/middleware"
	"lab_manager/internal/models"
	"lab_manager/internal/policy"
)

type loginInput struct {
	Type       string `json:"type"` // "userNumber" (default) or "email"
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type registerPersonnelInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Gender      string `json:"gender" binding:"required"`
	Address     string `json:"address"`
}

type registerPatientInput struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Gender      string `json:"gender" binding:"required"`
	Address     string `json:"address"`
}

// Login authenticates by userNumber or email and returns a session
// token. An unknown identifier and a wrong password produce the same
// response.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Identifier and password are required"})
		return
	}

	user, err := auth.Authenticate(config.DB, input.Type, input.Identifier, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
			return
		}
		serverError(c, err, "login lookup failed")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		serverError(c, err, "could not generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":         user.ID,
			"userNumber": user.UserNumber,
			"firstName":  user.FirstName,
			"lastName":   user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
		},
	})
}

// RegisterPersonnel creates a personnel account. Admin only.
func RegisterPersonnel(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.RegisterPersonnel); err != nil {
		forbidden(c)
		return
	}

	var input registerPersonnelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}
	if !validGenders[input.Gender] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid gender"})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists with this email"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err, "email uniqueness check failed")
		return
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		serverError(c, err, "could not hash password")
		return
	}

	user, err := createNumberedUser(callerID, "personnel", models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       &input.Email,
		Password:    hashed,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Address:     input.Address,
	})
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists with this email"})
			return
		}
		serverError(c, err, "could not create personnel")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Personnel registered successfully",
		"user": gin.H{
			"id":         user.ID,
			"userNumber": user.UserNumber,
			"firstName":  user.FirstName,
			"lastName":   user.LastName,
			"email":      user.Email,
			"role":       user.Role,
		},
	})
}

// RegisterPatient creates a patient account. Personnel or admin.
// Email and password are optional; a patient without a password can
// never log in.
func RegisterPatient(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.RegisterPatient); err != nil {
		forbidden(c)
		return
	}

	var input registerPatientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !validGenders[input.Gender] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid gender"})
		return
	}
	if input.Password != "" && len(input.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters"})
		return
	}

	var existing models.User
	if err := config.DB.Where("phone = ?", input.Phone).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "User already exists with this phone number"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serverError(c, err, "phone uniqueness check failed")
		return
	}

	patient := models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Phone:       input.Phone,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Address:     input.Address,
	}
	if input.Email != "" {
		patient.Email = &input.Email
	}
	if input.Password != "" {
		hashed, err := auth.HashPassword(input.Password)
		if err != nil {
			serverError(c, err, "could not hash password")
			return
		}
		patient.Password = hashed
	}

	user, err := createNumberedUser(callerID, "patient", patient)
	if err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists with this phone number"})
			return
		}
		serverError(c, err, "could not create patient")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Patient registered successfully",
		"user": gin.H{
			"id":         user.ID,
			"userNumber": user.UserNumber,
			"firstName":  user.FirstName,
			"lastName":   user.LastName,
			"email":      user.Email,
			"phone":      user.Phone,
			"role":       user.Role,
		},
	})
}

// Me returns the caller's own profile.
func Me(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.ReadSelf); err != nil {
		forbidden(c)
		return
	}

	var user models.User
	if err := config.DB.First(&user, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		serverError(c, err, "could not load current user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// createNumberedUser assigns the next role-prefixed user number and
// inserts the record in one transaction. The per-role lock is held
// until commit so concurrent registrations never share a number.
func createNumberedUser(creatorID uint, role string, user models.User) (models.User, error) {
	release, err := identifier.Acquire(role)
	if err != nil {
		return models.User{}, err
	}
	defer release()

	tx := config.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	number, err := identifier.Next(tx, role)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	user.UserNumber = number
	user.Role = role
	user.IsActive = true
	user.CreatedBy = &creatorID
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
