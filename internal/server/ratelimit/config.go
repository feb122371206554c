package ratelimit

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Route pattern ("/jobs/{id}/status") or prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Environment keys read by LoadConfig.
const (
	envEnabled         = "RATE_LIMIT_ENABLED"
	envDefaultLimit    = "RATE_LIMIT_DEFAULT_LIMIT"
	envDefaultWindow   = "RATE_LIMIT_DEFAULT_WINDOW"
	envCleanupInterval = "RATE_LIMIT_CLEANUP_INTERVAL"
	envWhitelist       = "RATE_LIMIT_WHITELIST"
	envBlacklist       = "RATE_LIMIT_BLACKLIST"
)

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	return LoadConfigFrom(v)
}

// LoadConfigFrom reads rate limiting configuration from v. Non-positive or
// unparsable numbers fall back to the defaults.
func LoadConfigFrom(v *viper.Viper) *Config {
	v.SetDefault(envEnabled, true)
	v.SetDefault(envDefaultLimit, 1000)
	v.SetDefault(envDefaultWindow, time.Minute)
	v.SetDefault(envCleanupInterval, 5*time.Minute)

	if !v.GetBool(envEnabled) {
		return &Config{Enabled: false}
	}

	defaultLimit := v.GetInt(envDefaultLimit)
	if defaultLimit <= 0 {
		defaultLimit = 1000
	}
	defaultWindow := v.GetDuration(envDefaultWindow)
	if defaultWindow <= 0 {
		defaultWindow = time.Minute
	}
	cleanupInterval := v.GetDuration(envCleanupInterval)
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       parseIPList(v.GetString(envWhitelist)),
		Blacklist:       parseIPList(v.GetString(envBlacklist)),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Credential endpoints are the strictest.
		{Path: "/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/auth/password", Method: "PUT", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/uploads/resume", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		// Writes.
		{Path: "/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs/{id}/status", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/applications", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/applications/{id}/status", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/profile/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},

		// Scoring runs per request.
		{Path: "/recommendations", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},

		// Other reads fall back to the default limit; GET /health is unlimited.
	}
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}

