package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation runs collapse", "Fashion Forward! 2024", "fashion-forward-2024"},
		{"leading and trailing junk", "  --Launch!!  ", "launch"},
		{"already a slug", "fashion-forward-2024", "fashion-forward-2024"},
		{"mixed case with symbols", "E-Commerce @ Scale (v2)", "e-commerce-scale-v2"},
		{"unicode stripped", "Café & Crème", "caf-cr-me"},
		{"empty", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	titles := []string{
		"Fashion Forward! 2024",
		"Hello, World",
		"A   B   C",
		"--already-slugged--",
	}
	for _, title := range titles {
		once := Make(title)
		assert.Equal(t, once, Make(once), "Make must be idempotent for %q", title)
	}
}
