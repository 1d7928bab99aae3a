package app

import (
	"net/url"
	"strings"
)

// originChecker builds the AllowOriginFunc for a pattern list. Patterns match
// against the origin's host[:port]: exact, "*.example.com" for subdomains, or
// "localhost:*" for any port.
func originChecker(patterns []string) func(origin string) bool {
	return func(origin string) bool {
		host := origin
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			host = u.Host
		}
		for _, pattern := range patterns {
			if hostMatches(pattern, host) {
				return true
			}
		}
		return false
	}
}

func hostMatches(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, strings.TrimSuffix(pattern, "*"))
	default:
		return false
	}
}
