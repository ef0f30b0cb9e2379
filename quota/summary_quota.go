package quota

import (
	"context"
	"errors"
	"sync"
	"time"

	"wiki-summary/config"
)

// ErrDailyQuotaExceeded 는 오늘 허용된 LLM 호출을 모두 소진했을 때 반환된다.
var ErrDailyQuotaExceeded = errors.New("daily summary quota exceeded")

// SummaryQuotaLimiter 는 요약용 LLM 호출에 대한 분당/일일 한도를 관리한다.
// API 인스턴스 하나를 전제로 인메모리로 동작하며, 재시작되면 카운터가 초기화된다.
// 청크 단위 병렬 호출도 모두 같은 limiter 를 거친다.
type SummaryQuotaLimiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewSummaryQuotaLimiter 는 설정 값이 0 이하인 방향에 대해서는 제한을 두지 않는다.
func NewSummaryQuotaLimiter(cfg config.SummaryQuotaConfig) *SummaryQuotaLimiter {
	requestsPerDay := max(cfg.RequestsPerDay, 0)
	requestsPerMinute := max(cfg.RequestsPerMinute, 0)

	var interval time.Duration
	if requestsPerMinute > 0 {
		interval = time.Minute / time.Duration(requestsPerMinute)
	}

	return &SummaryQuotaLimiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
		now:        time.Now,
	}
}

// Enabled 는 분당 혹은 일일 한도 중 하나라도 설정되어 있는지 알려준다.
func (l *SummaryQuotaLimiter) Enabled() bool {
	return l.dailyLimit > 0 || l.interval > 0
}

// Used 는 오늘 예약된 호출 수를 반환한다.
func (l *SummaryQuotaLimiter) Used() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollDay(l.now().UTC())
	return l.usedToday
}

// Reserve 는 LLM 호출 직전에 분당/일일 한도를 적용한다.
// - 일일 한도 초과: ErrDailyQuotaExceeded
// - 분당 한도: 다음 허용 시점까지 대기한다. 대기 중 ctx 가 취소되면 ctx.Err() 를 반환한다.
func (l *SummaryQuotaLimiter) Reserve(ctx context.Context) error {
	for {
		l.mu.Lock()

		now := l.now().UTC()
		l.rollDay(now)

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return ErrDailyQuotaExceeded
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return nil
		}

		// 락을 풀고 대기한 뒤 상태를 다시 평가한다.
		l.mu.Unlock()
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

func (l *SummaryQuotaLimiter) rollDay(now time.Time) {
	todayKey := now.Format("2006-01-02")
	if l.dayKey != todayKey {
		l.dayKey = todayKey
		l.usedToday = 0
	}
}
