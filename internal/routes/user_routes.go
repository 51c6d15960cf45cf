package routes

import (
	"lab_manager/internal/controllers"
	"lab_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine) {
	users := r.Group("/api/users")
	users.Use(middleware.RequireAuth())
	{
		users.GET("", controllers.ListUsers)
		users.GET("/:id", controllers.GetUser)
	}
}
