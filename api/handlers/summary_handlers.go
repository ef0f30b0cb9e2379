package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wiki-summary/config"
	"wiki-summary/dto"
	"wiki-summary/models"
	"wiki-summary/quota"
	"wiki-summary/repositories"
	"wiki-summary/services"
	"wiki-summary/trace"
)

// SummaryService is what the summary handlers need from services.SummaryService.
type SummaryService interface {
	GetByURL(ctx context.Context, url string) (*models.Summary, error)
	CreateOrGet(ctx context.Context, url string, wordLimit int) (*models.Summary, error)
	Ping(ctx context.Context) error
}

// GetSummaryHandler godoc
// @Summary      Get stored summary
// @Description  Look up the stored summary of a Wikipedia article. Never generates one.
// @Tags         summary
// @Param        url2search  query  string  true  "Wikipedia article URL"
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /summary [get]
func GetSummaryHandler(svc SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.GetSummaryQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_url", Message: err.Error()})
			return
		}
		url, err := dto.NormalizeWikipediaURL(q.URL)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_url", Message: err.Error()})
			return
		}

		rec, err := svc.GetByURL(c.Request.Context(), url)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSummaryDTO(*rec))
	}
}

// CreateSummaryHandler godoc
// @Summary      Create or get summary
// @Description  Return the cached summary of a Wikipedia article, generating and storing it on a cache miss.
// @Tags         summary
// @Accept       json
// @Param        body  body  dto.CreateSummaryRequest  true  "Article URL and target word count (default 100)"
// @Produce      json
// @Success      201  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      422  {object}  dto.ErrorResponseDTO
// @Failure      502  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /summary [post]
func CreateSummaryHandler(svc SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateSummaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_request", Message: err.Error()})
			return
		}
		url, err := dto.NormalizeWikipediaURL(req.URL)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid_url", Message: err.Error()})
			return
		}
		wordLimit := 0
		if req.WordsLimit != nil {
			wordLimit = *req.WordsLimit
		}

		rec, err := svc.CreateOrGet(c.Request.Context(), url, wordLimit)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.NewSummaryDTO(*rec))
	}
}

// HealthHandler godoc
// @Summary      Health check
// @Description  Report service status and storage reachability
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthDTO
// @Failure      503  {object}  dto.HealthDTO
// @Router       /healthcheck [get]
func HealthHandler(svc SummaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthDTO{Status: "degraded", Storage: "down", Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.HealthDTO{Status: "ok", Storage: "up"})
	}
}

// writeServiceError maps pipeline errors to HTTP statuses.
func writeServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	status, code := http.StatusInternalServerError, "internal_error"
	var stageErr *services.StageError
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		status, code = http.StatusBadRequest, "invalid_url"
	case errors.Is(err, services.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, quota.ErrDailyQuotaExceeded):
		status, code = http.StatusServiceUnavailable, "quota_exceeded"
	case errors.As(err, &stageErr):
		switch stageErr.Stage {
		case services.StageFetch:
			status, code = http.StatusBadGateway, "fetch_failed"
		case services.StageExtract:
			status, code = http.StatusUnprocessableEntity, "no_content"
		case services.StageSummarize:
			status, code = http.StatusBadGateway, "summarization_failed"
		case services.StageStore:
			if errors.Is(err, repositories.ErrStorageUnavailable) {
				status, code = http.StatusServiceUnavailable, "storage_unavailable"
			}
		}
	}

	if status >= http.StatusInternalServerError {
		config.ErrorWithFields("summary request failed", config.Fields{
			"status":     status,
			"error":      err.Error(),
			"request_id": trace.RequestIDFromContext(c.Request.Context()),
		})
	}
	c.JSON(status, dto.ErrorResponseDTO{Error: code, Message: err.Error()})
}
