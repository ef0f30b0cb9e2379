package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wiki-summary/api/handlers"
	"wiki-summary/api/middleware"
	_ "wiki-summary/docs"
	"wiki-summary/dto"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wikipedia", dto.ValidateWikipediaURL)
	}
}

func New(svc handlers.SummaryService) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	r.GET("/health", handlers.HealthHandler(svc))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.GET("/healthcheck", handlers.HealthHandler(svc))
		api.GET("/summary", handlers.GetSummaryHandler(svc))
		api.POST("/summary", handlers.CreateSummaryHandler(svc))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "not_found"})
	})
	return r
}
