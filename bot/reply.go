package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RussellLuo/slidingwindow"

	"github.com/wortwert/wortwert/mastodon"
)

// Poster is the outbound side of the Mastodon client.
type Poster interface {
	PostStatus(ctx context.Context, toot mastodon.Toot) (*mastodon.Status, error)
}

// errBudgetExhausted marks replies dropped by the global posting guard.
var errBudgetExhausted = errors.New("outbound post budget exhausted")

const (
	maxPostAttempts   = 3
	throttledBaseWait = 10 * time.Second
	networkRetryWait  = 2 * time.Second

	defaultMaxPostsHour = 30
	defaultMaxPostsDay  = 300
)

func windowFunc() (slidingwindow.Window, slidingwindow.StopFunc) {
	return slidingwindow.NewLocalWindow()
}

// replySender posts replies with a retry policy and a global hourly/daily
// budget that caps runaway output regardless of per-requester limits.
type replySender struct {
	poster Poster
	logger *slog.Logger
	hourly *slidingwindow.Limiter
	daily  *slidingwindow.Limiter
	sleep  func(ctx context.Context, d time.Duration) error
}

func newReplySender(poster Poster, logger *slog.Logger, maxHour, maxDay int64) *replySender {
	if maxHour <= 0 {
		maxHour = defaultMaxPostsHour
	}
	if maxDay <= 0 {
		maxDay = defaultMaxPostsDay
	}
	hourly, _ := slidingwindow.NewLimiter(time.Hour, maxHour, windowFunc)
	daily, _ := slidingwindow.NewLimiter(24*time.Hour, maxDay, windowFunc)
	return &replySender{
		poster: poster,
		logger: logger,
		hourly: hourly,
		daily:  daily,
		sleep:  sleepCtx,
	}
}

// Send posts the toot, retrying transient failures. Throttled responses wait
// with a doubling delay, network errors wait a short fixed delay, and any
// other API error aborts immediately.
func (rs *replySender) Send(ctx context.Context, toot mastodon.Toot) (*mastodon.Status, error) {
	// Budget slots are taken before the attempt, so a send that later
	// fails still counts against the caps. Under sustained trouble the bot
	// posts less, never more.
	if !rs.hourly.Allow() || !rs.daily.Allow() {
		repliesDropped.Inc()
		return nil, errBudgetExhausted
	}

	wait := throttledBaseWait
	var lastErr error
	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		st, err := rs.poster.PostStatus(ctx, toot)
		if err == nil {
			repliesSent.Inc()
			return st, nil
		}
		lastErr = err

		var me *mastodon.Error
		if errors.As(err, &me) && !me.IsThrottled() {
			// Permanent API failure (validation, auth). Retrying won't help.
			repliesFailed.Inc()
			return nil, err
		}
		if attempt == maxPostAttempts {
			break
		}
		if me != nil {
			rs.logger.Warn("server throttled posting, waiting", "attempt", attempt, "wait", wait, "err", err)
			if err := rs.sleep(ctx, wait); err != nil {
				return nil, err
			}
			wait *= 2
		} else {
			rs.logger.Warn("posting failed, retrying", "attempt", attempt, "err", err)
			if err := rs.sleep(ctx, networkRetryWait); err != nil {
				return nil, err
			}
		}
	}
	repliesFailed.Inc()
	return nil, fmt.Errorf("giving up after %d attempts: %w", maxPostAttempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
