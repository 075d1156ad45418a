package catalog

import "strings"

// Slugify lowercases s, collapses every run of characters outside
// [a-z0-9] into a single dash, and strips leading/trailing dashes.
// Slugify is idempotent.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	lastDash := true // suppress a leading dash
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// DeriveSlug decides the slug for a write. An explicit non-empty
// override always wins. Otherwise the slug is re-derived from source
// exactly when the source field changed in this write or no slug exists
// yet; an unchanged source keeps the current slug. An empty-trimmed
// override counts as no override.
func DeriveSlug(current, source string, sourceChanged bool, override *string) string {
	if override != nil {
		if o := strings.TrimSpace(*override); o != "" {
			return Slugify(o)
		}
	}
	if sourceChanged || current == "" {
		return Slugify(source)
	}
	return current
}
