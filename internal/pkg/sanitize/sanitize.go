// Package sanitize strips markup from user-supplied display text.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// maxPasses bounds decoding of nested entity encodings such as "&amp;lt;".
const maxPasses = 8

// Text removes every HTML element from s and trims surrounding space.
// Entities are decoded and the result sanitized again until it is stable, so
// entity-encoded markup cannot survive as a live tag. Input that never
// settles is returned in its escaped form.
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	p := policy()
	for i := 0; i < maxPasses; i++ {
		clean := strings.TrimSpace(html.UnescapeString(p.Sanitize(s)))
		if clean == s {
			return clean
		}
		s = clean
	}
	return strings.TrimSpace(p.Sanitize(s))
}

// Texts applies Text to each element and drops entries that end up empty.
func Texts(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if clean := Text(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
