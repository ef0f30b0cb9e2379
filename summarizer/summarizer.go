package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"wiki-summary/config"
)

var (
	// ErrEmptyText is returned when there is nothing to summarize.
	ErrEmptyText = errors.New("summarizer: empty text")
	// ErrLengthNotMet is returned in strict mode when refinement stops above the word limit.
	ErrLengthNotMet = errors.New("summarizer: word limit not met")
)

// Backend is a single call to an inference provider.
// hint is a short instruction such as a target length; "" means plain summarization.
type Backend interface {
	Summarize(ctx context.Context, text, hint string) (string, error)
}

// Summarizer splits long text into chunks, summarizes them concurrently and
// compresses the combined result until it fits the requested word count.
type Summarizer struct {
	backend Backend
	cfg     config.SummarizerConfig
}

func New(backend Backend, cfg config.SummarizerConfig) *Summarizer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 10
	}
	if cfg.MaxChunks <= 0 {
		cfg.MaxChunks = 10
	}
	if cfg.MaxRefinements <= 0 {
		cfg.MaxRefinements = 5
	}
	if cfg.DefaultWordLimit <= 0 {
		cfg.DefaultWordLimit = 100
	}
	return &Summarizer{backend: backend, cfg: cfg}
}

func LengthHint(wordLimit int) string {
	return fmt.Sprintf("Write a concise summary in approximately %d words", wordLimit)
}

func CompressHint(wordLimit int) string {
	return fmt.Sprintf("Shorten this summary to at most %d words", wordLimit)
}

// Summarize returns a summary of text aiming at wordLimit words.
// A wordLimit <= 0 uses the configured default.
func (s *Summarizer) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	if wordLimit <= 0 {
		wordLimit = s.cfg.DefaultWordLimit
	}

	chunks := SplitText(text, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return "", ErrEmptyText
	}

	// 짧은 문서는 한 번의 호출 결과를 그대로 사용한다
	if len(chunks) == 1 {
		out, err := s.backend.Summarize(ctx, chunks[0].Text, LengthHint(wordLimit))
		if err != nil {
			return "", fmt.Errorf("summarize: %w", err)
		}
		return out, nil
	}

	if len(chunks) > s.cfg.MaxChunks {
		config.WarnWithFields("summarizer dropping trailing chunks", config.Fields{
			"chunks":     len(chunks),
			"max_chunks": s.cfg.MaxChunks,
		})
		chunks = chunks[:s.cfg.MaxChunks]
	}

	partials, err := s.summarizeChunks(ctx, chunks)
	if err != nil {
		return "", err
	}

	candidate, err := s.backend.Summarize(ctx, strings.Join(partials, "\n\n"), LengthHint(wordLimit))
	if err != nil {
		return "", fmt.Errorf("summarize combined: %w", err)
	}
	return s.enforceLength(ctx, candidate, wordLimit)
}

// summarizeChunks runs one backend call per chunk and returns the results in chunk order.
// The first failure cancels the calls still in flight.
func (s *Summarizer) summarizeChunks(ctx context.Context, chunks []Chunk) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]string, len(chunks))
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for i, c := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.backend.Summarize(ctx, c.Text, "")
			if err != nil {
				once.Do(func() {
					firstErr = fmt.Errorf("summarize chunk %d: %w", c.Index, err)
					cancel()
				})
				return
			}
			results[i] = out
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// enforceLength re-summarizes candidate until it fits wordLimit or MaxRefinements calls were made.
func (s *Summarizer) enforceLength(ctx context.Context, candidate string, wordLimit int) (string, error) {
	for attempt := 1; CountWords(candidate) > wordLimit; attempt++ {
		if attempt > s.cfg.MaxRefinements {
			fields := config.Fields{
				"words":       CountWords(candidate),
				"words_limit": wordLimit,
				"refinements": s.cfg.MaxRefinements,
			}
			if s.cfg.StrictLength {
				config.ErrorWithFields("summary still above word limit", fields)
				return "", fmt.Errorf("%w: %d words after %d refinements, limit %d",
					ErrLengthNotMet, CountWords(candidate), s.cfg.MaxRefinements, wordLimit)
			}
			config.WarnWithFields("summary still above word limit, returning best effort", fields)
			return candidate, nil
		}

		config.DebugWithFields("summary too long, re-summarizing", config.Fields{
			"attempt":     attempt,
			"words":       CountWords(candidate),
			"words_limit": wordLimit,
		})
		out, err := s.backend.Summarize(ctx, candidate, CompressHint(wordLimit))
		if err != nil {
			return "", fmt.Errorf("refine summary: %w", err)
		}
		candidate = out
	}
	return candidate, nil
}
