package models

import (
	"gorm.io/gorm"
)

// Appointment is a scheduled lab visit bundling one or more catalog
// tests for a patient, booked by a personnel user.
type Appointment struct {
	gorm.Model

	PatientID   uint `json:"patientId" gorm:"index"`
	PersonnelID uint `json:"personnelId" gorm:"index"`

	ScheduledDate string  `json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string  `json:"scheduledTime"`
	Status        string  `json:"status" gorm:"default:scheduled"` // "scheduled", "in-progress", "completed", "cancelled"
	TotalAmount   float64 `json:"totalAmount"`
	Notes         string  `json:"notes"`

	Tests []AppointmentTest `gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"tests,omitempty"`
}

// AppointmentTest links an appointment to one catalog test.
type AppointmentTest struct {
	gorm.Model
	AppointmentID uint   `json:"appointmentId" gorm:"index"`
	TestCatalogID uint   `json:"testCatalogId"`
	Status        string `json:"status" gorm:"default:pending"` // "pending", "in-progress", "completed"
	Notes         string `json:"notes"`
}
