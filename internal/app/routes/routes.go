package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidb/internal/app/controllers"
	"github.com/yigit/unidb/internal/app/models"
	"github.com/yigit/unidb/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	modules []models.Module,
	pageController *controllers.PageController,
	moduleController *controllers.ModuleController,
) {
	// --- Navigation shell ---
	router.GET("/", pageController.Welcome)

	for _, m := range modules {
		page := router.Group(m.Path)
		{
			page.GET("", pageController.Show(m))
			page.POST("", pageController.Submit(m))
			page.POST("/:id/edit", pageController.Edit(m))
			page.POST("/:id/delete", pageController.Delete(m))
		}
	}

	router.NoRoute(pageController.NotFound)

	// API version group
	v1 := router.Group("/api/v1")

	apiModules := v1.Group("/modules")
	{
		apiModules.GET("", moduleController.ListModules)
		apiModules.GET("/:module", moduleController.GetRegistry)
		apiModules.PUT("/:module/draft", moduleController.UpdateField)
		apiModules.POST("/:module/submit", moduleController.Submit)
		apiModules.POST("/:module/records/:id/edit", moduleController.BeginEdit)
		apiModules.DELETE("/:module/records/:id", moduleController.DeleteRecord)
	}

	// Health check endpoint (public)
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}, ""))
	}
	router.GET("/health", health)
	v1.GET("/health", health)
}
