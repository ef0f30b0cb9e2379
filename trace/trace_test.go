package trace

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextSpanIDIncrementsWithinRequest(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-1", 0)

	reqID, span := NextSpanID(ctx)
	assert.Equal(t, "req-1", reqID)
	assert.Equal(t, "1", span)

	_, span = NextSpanID(ctx)
	assert.Equal(t, "2", span)
	assert.Equal(t, "2", CurrentSpanID(ctx))
}

func TestNextSpanIDConcurrent(t *testing.T) {
	ctx := WithRequestAndSpan(context.Background(), "req-2", 0)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			NextSpanID(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, "10", CurrentSpanID(ctx))
}

func TestWithoutTraceInfo(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestIDFromContext(ctx))
	assert.Equal(t, "0", CurrentSpanID(ctx))

	reqID, span := NextSpanID(ctx)
	assert.NotEmpty(t, reqID)
	assert.Equal(t, "1", span)
}
