package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiki-summary/config"
)

type call struct {
	text string
	hint string
}

// stubBackend records every call and delegates the answer to fn.
type stubBackend struct {
	mu    sync.Mutex
	calls []call
	fn    func(ctx context.Context, text, hint string) (string, error)
}

func (s *stubBackend) Summarize(ctx context.Context, text, hint string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{text: text, hint: hint})
	s.mu.Unlock()
	return s.fn(ctx, text, hint)
}

func (s *stubBackend) callsWithHint(pred func(hint string) bool) []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []call
	for _, c := range s.calls {
		if pred(c.hint) {
			out = append(out, c)
		}
	}
	return out
}

func isChunkCall(hint string) bool   { return hint == "" }
func isCombineCall(hint string) bool { return strings.HasPrefix(hint, "Write a concise summary") }
func isRefineCall(hint string) bool  { return strings.HasPrefix(hint, "Shorten this summary") }

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

// nineLetterWords builds text that splits into exactly n chunks with chunk size 10 and no overlap.
func nineLetterWords(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("chunk%04d", i)
	}
	return strings.Join(parts, " ")
}

func smallChunks() config.SummarizerConfig {
	return config.SummarizerConfig{ChunkSize: 10, ChunkOverlap: 0, MaxChunks: 10, MaxRefinements: 5}
}

func TestSummarizeSingleChunkReturnsVerbatim(t *testing.T) {
	long := words(80)
	backend := &stubBackend{fn: func(context.Context, string, string) (string, error) {
		return long, nil
	}}
	s := New(backend, config.SummarizerConfig{})

	out, err := s.Summarize(context.Background(), "The cat is a small domesticated carnivorous mammal.", 30)

	require.NoError(t, err)
	assert.Equal(t, long, out)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, "Write a concise summary in approximately 30 words", backend.calls[0].hint)
}

func TestSummarizeDefaultWordLimit(t *testing.T) {
	backend := &stubBackend{fn: func(context.Context, string, string) (string, error) {
		return "ok", nil
	}}
	s := New(backend, config.SummarizerConfig{DefaultWordLimit: 100})

	_, err := s.Summarize(context.Background(), "short text", 0)

	require.NoError(t, err)
	assert.Equal(t, LengthHint(100), backend.calls[0].hint)
}

func TestSummarizeEmptyText(t *testing.T) {
	backend := &stubBackend{fn: func(context.Context, string, string) (string, error) {
		return "unused", nil
	}}
	s := New(backend, config.SummarizerConfig{})

	_, err := s.Summarize(context.Background(), "   ", 100)

	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, backend.calls)
}

func TestSummarizeCapsChunkCalls(t *testing.T) {
	backend := &stubBackend{fn: func(_ context.Context, text, _ string) (string, error) {
		return "s-" + text, nil
	}}
	s := New(backend, config.SummarizerConfig{ChunkSize: 1000, ChunkOverlap: 100})

	// 13000 자 -> 15 청크
	_, err := s.Summarize(context.Background(), strings.Repeat("x", 13000), 100)

	require.NoError(t, err)
	assert.Len(t, backend.callsWithHint(isChunkCall), 10)
	assert.Len(t, backend.callsWithHint(isCombineCall), 1)
}

func TestSummarizeKeepsChunkOrder(t *testing.T) {
	const n = 8
	backend := &stubBackend{fn: func(_ context.Context, text, hint string) (string, error) {
		if isChunkCall(hint) {
			var idx int
			_, _ = fmt.Sscanf(text, "chunk%04d", &idx)
			// 앞선 청크일수록 늦게 끝난다
			time.Sleep(time.Duration(n-idx) * 5 * time.Millisecond)
			return fmt.Sprintf("[%d]", idx), nil
		}
		return "done", nil
	}}
	s := New(backend, smallChunks())

	out, err := s.Summarize(context.Background(), nineLetterWords(n), 100)

	require.NoError(t, err)
	assert.Equal(t, "done", out)
	combine := backend.callsWithHint(isCombineCall)
	require.Len(t, combine, 1)
	assert.Equal(t, "[0]\n\n[1]\n\n[2]\n\n[3]\n\n[4]\n\n[5]\n\n[6]\n\n[7]", combine[0].text)
}

func TestSummarizeLengthBound(t *testing.T) {
	backend := &stubBackend{fn: func(_ context.Context, text, hint string) (string, error) {
		switch {
		case isChunkCall(hint):
			return "partial", nil
		case isCombineCall(hint):
			return words(50), nil
		default:
			// 호출마다 10 단어씩 줄어든다
			return words(CountWords(text) - 10), nil
		}
	}}
	s := New(backend, smallChunks())

	out, err := s.Summarize(context.Background(), nineLetterWords(3), 20)

	require.NoError(t, err)
	assert.LessOrEqual(t, CountWords(out), 20)
	refines := backend.callsWithHint(isRefineCall)
	assert.Len(t, refines, 3)
	combines := backend.callsWithHint(isCombineCall)
	assert.LessOrEqual(t, len(refines)+len(combines), 5+1)
}

func TestSummarizeRefinementCeilingBestEffort(t *testing.T) {
	backend := &stubBackend{fn: func(_ context.Context, _ string, hint string) (string, error) {
		if isChunkCall(hint) {
			return "partial", nil
		}
		return words(40), nil
	}}
	s := New(backend, smallChunks())

	out, err := s.Summarize(context.Background(), nineLetterWords(3), 20)

	require.NoError(t, err)
	assert.Equal(t, 40, CountWords(out))
	assert.Len(t, backend.callsWithHint(isRefineCall), 5)
}

func TestSummarizeRefinementCeilingStrict(t *testing.T) {
	backend := &stubBackend{fn: func(_ context.Context, _ string, hint string) (string, error) {
		if isChunkCall(hint) {
			return "partial", nil
		}
		return words(40), nil
	}}
	cfg := smallChunks()
	cfg.StrictLength = true
	s := New(backend, cfg)

	_, err := s.Summarize(context.Background(), nineLetterWords(3), 20)

	assert.ErrorIs(t, err, ErrLengthNotMet)
	assert.Len(t, backend.callsWithHint(isRefineCall), 5)
}

func TestSummarizeChunkFailureCancelsOthers(t *testing.T) {
	boom := errors.New("provider down")
	backend := &stubBackend{fn: func(ctx context.Context, text, hint string) (string, error) {
		if !isChunkCall(hint) {
			return "unused", nil
		}
		if strings.HasPrefix(text, "chunk0002") {
			return "", boom
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(5 * time.Second):
			return "late", nil
		}
	}}
	s := New(backend, smallChunks())

	start := time.Now()
	_, err := s.Summarize(context.Background(), nineLetterWords(5), 100)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Empty(t, backend.callsWithHint(isCombineCall))
}

func TestSummarizeCombineFailure(t *testing.T) {
	boom := errors.New("timeout")
	backend := &stubBackend{fn: func(_ context.Context, _ string, hint string) (string, error) {
		if isCombineCall(hint) {
			return "", boom
		}
		return "partial", nil
	}}
	s := New(backend, smallChunks())

	_, err := s.Summarize(context.Background(), nineLetterWords(3), 100)

	assert.ErrorIs(t, err, boom)
}
