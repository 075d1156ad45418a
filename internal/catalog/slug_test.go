package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Color", "color"},
		{"Re-Chargeable!!", "re-chargeable"},
		{"  Wireless  Headphones  ", "wireless-headphones"},
		{"ALL CAPS 2024", "all-caps-2024"},
		{"---", ""},
		{"", ""},
		{"café au lait", "caf-au-lait"},
		{"a!!!b", "a-b"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	for _, s := range []string{"Re-Chargeable!!", "Wireless Headphones", "x-1-2", "", "贈り物"} {
		once := Slugify(s)
		assert.Equal(t, once, Slugify(once))
	}
}

func TestDeriveSlug_OverrideWins(t *testing.T) {
	override := "My Custom Slug"
	got := DeriveSlug("old-slug", "New Title", true, &override)
	assert.Equal(t, "my-custom-slug", got)
}

func TestDeriveSlug_EmptyOverrideFallsBack(t *testing.T) {
	override := "   "
	got := DeriveSlug("old-slug", "New Title", true, &override)
	assert.Equal(t, "new-title", got)
}

func TestDeriveSlug_SourceChanged(t *testing.T) {
	assert.Equal(t, "new-title", DeriveSlug("old-slug", "New Title", true, nil))
}

func TestDeriveSlug_SourceUnchangedKeepsCurrent(t *testing.T) {
	assert.Equal(t, "old-slug", DeriveSlug("old-slug", "Same Title", false, nil))
}

func TestDeriveSlug_NoCurrentDerives(t *testing.T) {
	assert.Equal(t, "first-title", DeriveSlug("", "First Title", false, nil))
}
