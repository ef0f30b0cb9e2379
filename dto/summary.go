package dto

import (
	"time"

	"wiki-summary/models"
)

// SummaryDTO is the response body of both summary endpoints.
type SummaryDTO struct {
	ID        string    `json:"id" example:"495b690f1384a17f"`
	URL       string    `json:"url" example:"https://en.wikipedia.org/wiki/Cat"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

func NewSummaryDTO(s models.Summary) SummaryDTO {
	return SummaryDTO{
		ID:        s.ID,
		URL:       s.URL,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt,
	}
}

// CreateSummaryRequest 는 POST /summary 요청 바디이다.
// words_limit 을 생략하면 서버 기본값(100)을 사용한다.
type CreateSummaryRequest struct {
	URL        string `json:"url" binding:"required,wikipedia" example:"https://en.wikipedia.org/wiki/Cat"`
	WordsLimit *int   `json:"words_limit,omitempty" binding:"omitempty,min=10,max=1000" example:"100"`
}

// GetSummaryQuery 는 GET /summary 쿼리 파라미터이다.
type GetSummaryQuery struct {
	URL string `form:"url2search" binding:"required,wikipedia"`
}

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"not_found"`
	// Message 는 사람이 읽을 수 있는 상세 설명이다.
	Message string `json:"message,omitempty" example:"no summary stored for this url"`
}

// HealthDTO 는 헬스체크 응답이다.
type HealthDTO struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"up"`
	Error   string `json:"error,omitempty"`
}
