// Package cache keeps the calendar view fast. Day-with-entries lookups are
// read-heavy and cheap to invalidate wholesale per user, so the cache is
// best-effort: every operation degrades to a no-op when redis is disabled.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/ashdowne/daybook/pkg/redis"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const calendarTTL = 10 * time.Minute

type CalendarCache struct {
	client *redis.Client
}

// NewCalendarCache accepts a nil client; all operations then become no-ops.
func NewCalendarCache(client *redis.Client) *CalendarCache {
	return &CalendarCache{client: client}
}

func (c *CalendarCache) Enabled() bool {
	return c != nil && c.client != nil
}

func calendarKey(userID uuid.UUID, start, end string) string {
	return fmt.Sprintf("calendar:%s:%s:%s", userID, start, end)
}

// GetDays returns the cached day list for a user's date range, or false on a
// miss. Cache failures are logged and treated as misses.
func (c *CalendarCache) GetDays(ctx context.Context, userID uuid.UUID, start, end string) ([]string, bool) {
	if !c.Enabled() {
		return nil, false
	}

	var days []string
	found, err := c.client.GetJSON(ctx, calendarKey(userID, start, end), &days)
	if err != nil {
		logger.GetLogger().Warn("calendar cache read failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, false
	}
	return days, found
}

// SetDays stores the day list for a user's date range.
func (c *CalendarCache) SetDays(ctx context.Context, userID uuid.UUID, start, end string, days []string) {
	if !c.Enabled() {
		return
	}

	if err := c.client.SetJSON(ctx, calendarKey(userID, start, end), days, calendarTTL); err != nil {
		logger.GetLogger().Warn("calendar cache write failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}

// InvalidateUser drops every cached range for a user. Called whenever the
// user's entries or threads change.
func (c *CalendarCache) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	if !c.Enabled() {
		return
	}

	if err := c.client.DeleteByPattern(ctx, fmt.Sprintf("calendar:%s:*", userID)); err != nil {
		logger.GetLogger().Warn("calendar cache invalidation failed",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}
}
