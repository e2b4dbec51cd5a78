package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%s"
	ThreadKeyPrefix = "thread:%d"
	// ViewKeyPrefix namespaces externally-cached view paths. The path is
	// an opaque invalidation key handed in by the caller, never parsed.
	ViewKeyPrefix = "view:%s"
)

const (
	UserTTL   = 5 * time.Minute
	ThreadTTL = 10 * time.Minute
)

func UserKey(authID string) string {
	return fmt.Sprintf(UserKeyPrefix, authID)
}

func ThreadKey(threadID uint) string {
	return fmt.Sprintf(ThreadKeyPrefix, threadID)
}

func ViewKey(path string) string {
	return fmt.Sprintf(ViewKeyPrefix, path)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateView drops the cached rendering of the given view path after a
// successful mutation. Best-effort; a missing client is a no-op.
func InvalidateView(ctx context.Context, path string) {
	if path == "" {
		return
	}
	Invalidate(ctx, ViewKey(path))
}

func InvalidateUser(ctx context.Context, authID string) {
	Invalidate(ctx, UserKey(authID))
}

func InvalidateThread(ctx context.Context, threadID uint) {
	Invalidate(ctx, ThreadKey(threadID))
}
