package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const feedKeyPrefix = "oracle:feed:"

// RedisFeedReader reads the latest update from the key the external oracle
// writer publishes into (oracle:feed:<feed_id>, JSON PriceUpdate).
type RedisFeedReader struct {
	rdb *redis.Client
}

func NewRedisFeedReader(rdb *redis.Client) *RedisFeedReader {
	return &RedisFeedReader{rdb: rdb}
}

func (r *RedisFeedReader) LatestUpdate(ctx context.Context, feedID string) (PriceUpdate, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	raw, err := r.rdb.Get(ctx, feedKeyPrefix+feedID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return PriceUpdate{}, fmt.Errorf("no update published for feed %s", feedID)
		}
		return PriceUpdate{}, err
	}
	var u PriceUpdate
	if err := json.Unmarshal(raw, &u); err != nil {
		return PriceUpdate{}, fmt.Errorf("malformed update for feed %s: %w", feedID, err)
	}
	return u, nil
}

// PublishUpdate writes an update where LatestUpdate will find it. The
// production writer is a separate process; this is here for ops tooling and
// tests.
func PublishUpdate(ctx context.Context, rdb *redis.Client, u PriceUpdate, ttl time.Duration) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, feedKeyPrefix+u.FeedID, payload, ttl).Err()
}
