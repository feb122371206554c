package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := newFakeClock()
	l.now = clock.Now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("127.0.0.1", "/jobs", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 9-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/jobs", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
	assert.True(t, info.ResetTime.After(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestLimiter_Refill(t *testing.T) {
	// 60 per minute refills one token per second.
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})

	for i := 0; i < 60; i++ {
		allowed, _ := l.Allow("c", "/jobs", "GET")
		require.True(t, allowed)
	}
	allowed, info := l.Allow("c", "/jobs", "GET")
	require.False(t, allowed)
	assert.Equal(t, time.Second, info.RetryAfter)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("c", "/jobs", "GET")
	assert.True(t, allowed)

	allowed, _ = l.Allow("c", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Whitelist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"127.0.0.1": true},
	})

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/jobs", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Blacklist:     map[string]bool{"192.168.1.1": true},
	})

	allowed, _ := l.Allow("192.168.1.1", "/jobs", "GET")
	assert.False(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("127.0.0.1", "/jobs", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/auth/register", Method: "POST", Limit: 5, Window: time.Hour, Burst: 5},
		},
	})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/auth/register", "POST")
		require.True(t, allowed)
		assert.Equal(t, 5, info.Limit)
	}

	allowed, info := l.Allow("127.0.0.1", "/auth/register", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 5, info.Limit)

	allowed, info = l.Allow("127.0.0.1", "/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_Burst(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  10,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/applications", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("c", "/applications", "POST")
		require.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/applications", "POST")
	assert.False(t, allowed)
}

func TestLimiter_PatternSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/jobs/{id}/status", Method: "PATCH", Limit: 2, Window: time.Hour, Burst: 2},
		},
	})

	allowed, _ := l.Allow("c", "/jobs/a/status", "PATCH")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/jobs/b/status", "PATCH")
	require.True(t, allowed)

	allowed, info := l.Allow("c", "/jobs/c/status", "PATCH")
	assert.False(t, allowed, "different posting IDs draw from the same bucket")
	assert.Equal(t, 2, info.Limit)
	assert.Equal(t, 1, l.size())
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})

	for i := 0; i < 50; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
	}
	assert.Equal(t, 0, l.size())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Minute})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if allowed, _ := l.Allow("127.0.0.1", "/jobs", "GET"); allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowedCount)
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow(fmt.Sprintf("10.0.0.%d", i+1), "/jobs", "GET")
		require.True(t, allowed)
	}
	require.Equal(t, 10, l.size())

	clock.Advance(idleBucketTTL - time.Minute)
	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i+1), "/jobs", "GET")
	}

	clock.Advance(2 * time.Minute)
	l.cleanupBuckets()
	assert.Equal(t, 5, l.size())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l, _ := newTestLimiter(t, nil)

	allowed, info := l.Allow("127.0.0.1", "/jobs", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 1000, info.Limit)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Second, CleanupInterval: time.Hour})
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestLoadConfigFrom(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := LoadConfigFrom(viper.New())
		assert.True(t, cfg.Enabled)
		assert.Equal(t, 1000, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)
		assert.Equal(t, 5*time.Minute, cfg.CleanupInterval)
		assert.NotEmpty(t, cfg.EndpointConfigs)
	})

	t.Run("overrides", func(t *testing.T) {
		v := viper.New()
		v.Set(envDefaultLimit, "25")
		v.Set(envDefaultWindow, "30s")
		v.Set(envWhitelist, "10.0.0.1, 10.0.0.2")
		v.Set(envBlacklist, "1.2.3.4")
		cfg := LoadConfigFrom(v)
		assert.Equal(t, 25, cfg.DefaultLimit)
		assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
		assert.True(t, cfg.Whitelist["10.0.0.2"])
		assert.True(t, cfg.Blacklist["1.2.3.4"])
	})

	t.Run("invalid numbers fall back", func(t *testing.T) {
		v := viper.New()
		v.Set(envDefaultLimit, "lots")
		v.Set(envDefaultWindow, "soon")
		cfg := LoadConfigFrom(v)
		assert.Equal(t, 1000, cfg.DefaultLimit)
		assert.Equal(t, time.Minute, cfg.DefaultWindow)
	})

	t.Run("disabled", func(t *testing.T) {
		v := viper.New()
		v.Set(envEnabled, "false")
		assert.False(t, LoadConfigFrom(v).Enabled)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv(envDefaultLimit, "7")
		assert.Equal(t, 7, LoadConfig().DefaultLimit)
	})
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		path, method string
		wantPath     string
		wantNil      bool
	}{
		{path: "/auth/login", method: "POST", wantPath: "/auth/login"},
		{path: "/jobs", method: "POST", wantPath: "/jobs"},
		{path: "/jobs/123/status", method: "PATCH", wantPath: "/jobs/{id}/status"},
		{path: "/applications/abc/status/", method: "PATCH", wantPath: "/applications/{id}/status"},
		{path: "/profile/job-seeker", method: "POST", wantPath: "/profile/"},
		{path: "/jobs", method: "GET", wantNil: true},
		{path: "/jobs/123", method: "PATCH", wantNil: true},
		{path: "/jobs/123/status/extra", method: "PATCH", wantNil: true},
		{path: "/jobs//status", method: "PATCH", wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}

	health := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, health)
	assert.Equal(t, 0, health.Limit)
}
