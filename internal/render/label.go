package render

import (
	"html"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

func policy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

// Label strips any markup from a service-provided label and collapses
// whitespace. An empty result becomes fallback.
func Label(raw, fallback string) string {
	clean := html.UnescapeString(policy().Sanitize(raw))
	clean = strings.Join(strings.Fields(clean), " ")
	if clean == "" {
		return fallback
	}
	return clean
}

// Slug turns a label into a lowercase file-name fragment.
func Slug(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
