package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestCalendarCacheDisabled(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	c := NewCalendarCache(nil)
	if c.Enabled() {
		t.Error("Expected cache with nil client to be disabled")
	}

	// Every operation is a safe no-op without redis.
	if days, found := c.GetDays(ctx, userID, "2024-03-01", "2024-03-31"); found || days != nil {
		t.Errorf("Expected miss from disabled cache, got %v found=%v", days, found)
	}
	c.SetDays(ctx, userID, "2024-03-01", "2024-03-31", []string{"2024-03-15"})
	c.InvalidateUser(ctx, userID)

	var nilCache *CalendarCache
	if nilCache.Enabled() {
		t.Error("Expected nil cache to report disabled")
	}
}

func TestCalendarKey(t *testing.T) {
	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	got := calendarKey(userID, "2024-03-01", "2024-03-31")
	want := "calendar:11111111-2222-3333-4444-555555555555:2024-03-01:2024-03-31"
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}
