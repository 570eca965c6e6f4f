package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	StatsKey        = "stats:dashboard"
	UserKeyPrefix   = "user:%d"
	ApprovedListKey = "outcomes:approved"
	RejectedListKey = "outcomes:rejected"
)

const (
	StatsTTL       = 30 * time.Second
	UserTTL        = 5 * time.Minute
	OutcomeListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil {
		client.Del(ctx, keys...)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID), StatsKey)
}

// InvalidateModeration drops every key derived from the moderation stores.
// Called after any submission or outcome mutation.
func InvalidateModeration(ctx context.Context) {
	Invalidate(ctx, StatsKey, ApprovedListKey, RejectedListKey)
}
