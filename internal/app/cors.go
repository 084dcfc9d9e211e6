package app

import (
	"net/url"
	"strings"

	"github.com/formify/core/internal/config"
	"github.com/formify/core/internal/middleware"
	"github.com/gin-contrib/cors"
)

// corsConfig allows any origin in development. In production only origins
// whose host matches an allowed_origins entry pass. Entries may be a bare
// host, a full origin, "*.example.com" for subdomains, "localhost:*" for any
// port, or "*" for everything.
func corsConfig(cfg *config.AppConfig) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.IdempotenceHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}

	patterns := make([]string, 0, len(cfg.AllowedOrigins))
	for _, raw := range cfg.AllowedOrigins {
		if p := originHost(raw); p != "" {
			patterns = append(patterns, p)
		}
	}
	if cfg.IsDev() || len(patterns) == 0 {
		c.AllowOriginFunc = func(string) bool { return true }
		return c
	}

	c.AllowOriginFunc = func(origin string) bool {
		host := originHost(origin)
		for _, p := range patterns {
			switch {
			case p == "*", p == host:
				return true
			case strings.HasPrefix(p, "*.") && strings.HasSuffix(host, p[1:]):
				return true
			case strings.HasSuffix(p, ":*") && strings.HasPrefix(host, p[:len(p)-1]):
				return true
			}
		}
		return false
	}
	return c
}

// originHost lowercases an origin or pattern and drops its scheme.
func originHost(origin string) string {
	origin = strings.ToLower(strings.TrimSpace(origin))
	if !strings.Contains(origin, "://") {
		return strings.TrimRight(origin, "/")
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return origin
	}
	return u.Host
}
