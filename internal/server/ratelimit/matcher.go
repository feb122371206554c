package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for GET /health.
var unlimited = EndpointConfig{}

// MatchEndpoint picks the endpoint configuration for a request, or nil when
// none applies and the default limit should be used.
//
// A config path is either a route pattern whose {name} segments match any
// single path segment ("/jobs/{id}/status"), or a prefix ending in "/"
// ("/profile/"). Patterns win over prefixes; among patterns the first listed wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == http.MethodGet {
		u := unlimited
		return &u
	}

	segments := splitPath(path)
	for i := range configs {
		c := &configs[i]
		if c.Method == method && !strings.HasSuffix(c.Path, "/") && matchPattern(splitPath(c.Path), segments) {
			return c
		}
	}
	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

func matchPattern(pattern, segments []string) bool {
	if len(pattern) != len(segments) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			if segments[i] == "" {
				return false
			}
			continue
		}
		if p != segments[i] {
			return false
		}
	}
	return true
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}
