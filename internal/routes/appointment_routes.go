package routes

import (
	"lab_manager/internal/controllers"
	"lab_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AppointmentRoutes(r *gin.Engine) {
	appointments := r.Group("/api/appointments")
	appointments.Use(middleware.RequireAuth())
	{
		appointments.GET("", controllers.ListAppointments)
		appointments.GET("/:id", controllers.GetAppointment)
		appointments.POST("", controllers.CreateAppointment)
		appointments.PUT("/:id", controllers.UpdateAppointment)
		appointments.PUT("/:id/status", controllers.UpdateAppointmentStatus)
	}
}
