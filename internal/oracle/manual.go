package oracle

import (
	"context"
	"fmt"
	"sync"
)

// ManualFeedReader serves updates set directly on it. Used in tests and as a
// fallback when no feed transport is configured.
type ManualFeedReader struct {
	mu      sync.RWMutex
	updates map[string]PriceUpdate
}

func NewManualFeedReader() *ManualFeedReader {
	return &ManualFeedReader{updates: make(map[string]PriceUpdate)}
}

func (m *ManualFeedReader) Set(u PriceUpdate) {
	m.mu.Lock()
	m.updates[u.FeedID] = u
	m.mu.Unlock()
}

func (m *ManualFeedReader) LatestUpdate(_ context.Context, feedID string) (PriceUpdate, error) {
	m.mu.RLock()
	u, ok := m.updates[feedID]
	m.mu.RUnlock()
	if !ok {
		return PriceUpdate{}, fmt.Errorf("no update for feed %s", feedID)
	}
	return u, nil
}
