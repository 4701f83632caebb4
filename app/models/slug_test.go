package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Hello World":             "hello-world",
		"  Who was Django?  ":     "who-was-django",
		"Crème brûlée -- recipe":  "creme-brulee-recipe",
		"Go 1.23 release_notes":   "go-123-release_notes",
		"---":                     "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Slugify(in))
		})
	}
}
