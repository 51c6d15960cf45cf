package routes

import (
	"lab_manager/internal/controllers"
	"lab_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.POST("/register-personnel", middleware.RequireAuth(), controllers.RegisterPersonnel)
		auth.POST("/register-patient", middleware.RequireAuth(), controllers.RegisterPatient)
		auth.GET("/me", middleware.RequireAuth(), controllers.Me)
	}
}
