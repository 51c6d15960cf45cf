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

type appointmentTestInput struct {
	TestCatalogID uint   `json:"testId" binding:"required"`
	Notes         string `json:"notes"`
}

type createAppointmentInput struct {
	PatientID     uint                   `json:"patientId" binding:"required"`
	ScheduledDate string                 `json:"scheduledDate" binding:"required"`
	ScheduledTime string                 `json:"scheduledTime" binding:"required"`
	Tests         []appointmentTestInput `json:"tests" binding:"required,min=1"`
	Notes         string                 `json:"notes"`
}

type updateAppointmentInput struct {
	ScheduledDate *string `json:"scheduledDate"`
	ScheduledTime *string `json:"scheduledTime"`
	Notes         *string `json:"notes"`
}

// ListAppointments returns appointments filtered by status, patientId
// and personnelId. Patients only ever see their own.
func ListAppointments(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.ReadAppointments); err != nil {
		forbidden(c)
		return
	}

	query := config.DB.Model(&models.Appointment{})

	if role == "patient" {
		// A patient asking for someone else's appointments is a policy
		// deny, whether or not that patient exists.
		if pid := c.Query("patientId"); pid != "" {
			id, err := strconv.ParseUint(pid, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid patientId"})
				return
			}
			if authErr := policy.AuthorizeOwner(role, policy.ReadAppointments, callerID, uint(id)); authErr != nil {
				forbidden(c)
				return
			}
		}
		query = query.Where("patient_id = ?", callerID)
	} else if pid := c.Query("patientId"); pid != "" {
		query = query.Where("patient_id = ?", pid)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if perID := c.Query("personnelId"); perID != "" {
		query = query.Where("personnel_id = ?", perID)
	}

	var appointments []models.Appointment
	if err := query.Order("scheduled_date DESC, scheduled_time DESC").Find(&appointments).Error; err != nil {
		serverError(c, err, "could not list appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

// GetAppointment fetches one appointment with its tests.
func GetAppointment(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.ReadAppointments); err != nil {
		forbidden(c)
		return
	}

	var appointment models.Appointment
	if err := config.DB.Preload("Tests").First(&appointment, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		serverError(c, err, "could not fetch appointment")
		return
	}

	if role == "patient" && appointment.PatientID != callerID {
		forbidden(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appointment})
}

// CreateAppointment books a visit bundling at least one catalog test.
// The total is the sum of the selected entries' prices; the booking
// personnel is the caller.
func CreateAppointment(c *gin.Context) {
	callerID, role := identity(c)
	if err := policy.Authorize(role, policy.CreateAppointment); err != nil {
		forbidden(c)
		return
	}

	var input createAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var patient models.User
	if err := config.DB.Where("role = ?", "patient").First(&patient, input.PatientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		serverError(c, err, "could not verify patient")
		return
	}

	var total float64
	for _, t := range input.Tests {
		var entry models.TestCatalog
		if err := config.DB.Where("is_active = ?", true).First(&entry, t.TestCatalogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Test not found in catalog"})
				return
			}
			serverError(c, err, "could not verify catalog entry")
			return
		}
		total += entry.Price
	}

	appointment := models.Appointment{
		PatientID:     input.PatientID,
		PersonnelID:   callerID,
		ScheduledDate: input.ScheduledDate,
		ScheduledTime: input.ScheduledTime,
		Status:        "scheduled",
		TotalAmount:   total,
		Notes:         input.Notes,
	}
	for _, t := range input.Tests {
		appointment.Tests = append(appointment.Tests, models.AppointmentTest{
			TestCatalogID: t.TestCatalogID,
			Status:        "pending",
			Notes:         t.Notes,
		})
	}

	if err := config.DB.Create(&appointment).Error; err != nil {
		serverError(c, err, "could not create appointment")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment created successfully",
		"appointment": appointment,
	})
}

// UpdateAppointment patches schedule fields and notes.
func UpdateAppointment(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.UpdateAppointment); err != nil {
		forbidden(c)
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		serverError(c, err, "could not fetch appointment")
		return
	}

	var input updateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.ScheduledDate == nil && input.ScheduledTime == nil && input.Notes == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	if input.ScheduledDate != nil {
		appointment.ScheduledDate = *input.ScheduledDate
	}
	if input.ScheduledTime != nil {
		appointment.ScheduledTime = *input.ScheduledTime
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if err := config.DB.Save(&appointment).Error; err != nil {
		serverError(c, err, "could not update appointment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully", "appointment": appointment})
}

// UpdateAppointmentStatus moves an appointment through its lifecycle.
func UpdateAppointmentStatus(c *gin.Context) {
	_, role := identity(c)
	if err := policy.Authorize(role, policy.UpdateAppointment); err != nil {
		forbidden(c)
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !validAppointmentStatuses[body.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	var appointment models.Appointment
	if err := config.DB.First(&appointment, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
			return
		}
		serverError(c, err, "could not fetch appointment")
		return
	}

	appointment.Status = body.Status
	if err := config.DB.Save(&appointment).Error; err != nil {
		serverError(c, err, "could not update appointment status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment status updated successfully"})
}
