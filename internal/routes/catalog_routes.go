package routes

import (
	"lab_manager/internal/controllers"
	"lab_manager/internal/middleware"

	"github.com/gin-gonic/gin"
)

func CatalogRoutes(r *gin.Engine) {
	catalog := r.Group("/api/test-catalog")
	catalog.Use(middleware.RequireAuth())
	{
		catalog.GET("", controllers.ListCatalog)
		catalog.POST("", controllers.CreateCatalogEntry)
		catalog.PUT("/:id", controllers.UpdateCatalogEntry)
		catalog.DELETE("/:id", controllers.DeleteCatalogEntry)
	}
}
