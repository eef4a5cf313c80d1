// Package slug derives URL slugs from titles.
package slug

import "strings"

// Make lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and strips leading/trailing hyphens.
// It is idempotent: Make(Make(s)) == Make(s).
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
