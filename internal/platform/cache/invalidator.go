package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// listInvalidator drops a user's cached recipe lists. It is shared by every
// decorator whose writes can change what those lists contain: recipe writes,
// but also tag and ingredient renames and deletions, since label names are
// embedded in the cached recipe payloads.
type listInvalidator struct {
	rdb       *redis.Client
	namespace string
}

// userPrefix is the prefix all of the user's list keys share.
func (i listInvalidator) userPrefix(userID uint) string {
	return fmt.Sprintf("%s:user:%d:", i.namespace, userID)
}

// invalidate drops every cached list for the user. Best effort: a failed
// deletion only means a stale read until the TTL expires.
func (i listInvalidator) invalidate(ctx context.Context, userID uint) {
	if i.rdb == nil {
		return
	}
	_ = i.deleteByPattern(ctx, i.userPrefix(userID)+"*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (i listInvalidator) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := i.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
