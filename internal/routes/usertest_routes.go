package routes

import (
	"lab_manager/internal/controllers"
	"lab_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func UserTestRoutes(r *gin.Engine) {
	tests := r.Group("/api/user-tests")
	tests.Use(middleware.RequireAuth())
	{
		tests.GET("", controllers.ListUserTests)
		tests.POST("", controllers.CreateUserTest)
		tests.PUT("/:id", controllers.UpdateUserTest)
		tests.DELETE("/:id", controllers.DeleteUserTest)
	}
}
