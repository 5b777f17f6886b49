package llm

import (
	"context"
	"sync"
	"time"
)

// modelCache caches the inference server's model list for a fixed TTL.
// The fetch function is injected so the cache itself stays testable.
type modelCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	fetch   func(ctx context.Context) ([]string, error)
	now     func() time.Time
	models  []string
	fetched time.Time
}

func newModelCache(ttl time.Duration, fetch func(ctx context.Context) ([]string, error)) *modelCache {
	return &modelCache{
		ttl:   ttl,
		fetch: fetch,
		now:   time.Now,
	}
}

// get returns the cached model list, refreshing it when expired. A failed
// refresh does not evict a previously cached list mid-TTL; it simply
// surfaces the error when nothing is cached.
func (m *modelCache) get(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.models != nil && m.now().Sub(m.fetched) < m.ttl {
		return m.models, nil
	}

	models, err := m.fetch(ctx)
	if err != nil {
		if m.models != nil {
			// Stale data beats no data for a listing endpoint.
			return m.models, nil
		}
		return nil, err
	}

	m.models = models
	m.fetched = m.now()
	return m.models, nil
}

// invalidate drops the cached list.
func (m *modelCache) invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models = nil
	m.fetched = time.Time{}
}
