package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"wiki-summary/config"
	"wiki-summary/models"
	"wiki-summary/repositories"
	"wiki-summary/trace"
)

// SummaryStore is the persistence contract of the pipeline.
// Create must fail with repositories.ErrConflict when id already exists.
type SummaryStore interface {
	GetByID(ctx context.Context, id string) (*models.Summary, error)
	Create(ctx context.Context, id, url, summary string) (*models.Summary, error)
	Ping(ctx context.Context) error
}

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Extractor interface {
	Extract(htmlStr string) string
}

type TextSummarizer interface {
	Summarize(ctx context.Context, text string, wordLimit int) (string, error)
}

// DeriveID returns the first 16 hex characters of sha256(url).
// The url is hashed byte for byte, callers normalize beforehand.
func DeriveID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// SummaryService decides between the cache and a fresh fetch -> extract -> summarize run.
type SummaryService struct {
	store      SummaryStore
	fetcher    Fetcher
	extractor  Extractor
	summarizer TextSummarizer
}

func NewSummaryService(store SummaryStore, fetcher Fetcher, extractor Extractor, summarizer TextSummarizer) *SummaryService {
	return &SummaryService{
		store:      store,
		fetcher:    fetcher,
		extractor:  extractor,
		summarizer: summarizer,
	}
}

// GetByURL returns the stored summary for url without generating one.
func (s *SummaryService) GetByURL(ctx context.Context, url string) (*models.Summary, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrInvalidInput
	}
	rec, err := s.store.GetByID(ctx, DeriveID(url))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, stageErr(StageStore, err)
	}
	return rec, nil
}

// CreateOrGet returns the cached summary for url or generates and stores a new one.
// Two concurrent calls for the same url may both generate; only one record is stored
// and both callers receive it.
func (s *SummaryService) CreateOrGet(ctx context.Context, url string, wordLimit int) (*models.Summary, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrInvalidInput
	}
	id := DeriveID(url)
	fields := config.Fields{
		"url":        url,
		"id":         id,
		"request_id": trace.RequestIDFromContext(ctx),
	}

	cached, err := s.store.GetByID(ctx, id)
	switch {
	case err == nil && cached.Summary != "":
		config.DebugWithFields("summary cache hit", fields)
		return cached, nil
	case err != nil && !errors.Is(err, repositories.ErrNotFound):
		return nil, stageErr(StageStore, err)
	}

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		fields["error"] = err.Error()
		config.ErrorWithFields("page fetch failed", fields)
		return nil, stageErr(StageFetch, err)
	}

	text := s.extractor.Extract(string(body))
	if text == "" {
		config.WarnWithFields("no article text extracted", fields)
		return nil, stageErr(StageExtract, ErrNoContent)
	}

	summary, err := s.summarizer.Summarize(ctx, text, wordLimit)
	if err != nil {
		fields["error"] = err.Error()
		config.ErrorWithFields("summarization failed", fields)
		return nil, stageErr(StageSummarize, err)
	}
	if strings.TrimSpace(summary) == "" {
		return nil, stageErr(StageSummarize, ErrEmptySummary)
	}

	rec, err := s.store.Create(ctx, id, url, summary)
	if errors.Is(err, repositories.ErrConflict) {
		// 동시에 생성한 다른 요청이 먼저 저장했다
		config.InfoWithFields("summary already stored by a concurrent request", fields)
		rec, err = s.store.GetByID(ctx, id)
	}
	if err != nil {
		return nil, stageErr(StageStore, fmt.Errorf("persist summary: %w", err))
	}

	fields["duration"] = time.Since(start).String()
	fields["words"] = len(strings.Fields(rec.Summary))
	config.InfoWithFields("summary generated", fields)
	return rec, nil
}

// Ping reports whether the store is reachable.
func (s *SummaryService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
