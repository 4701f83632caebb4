package forms

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	form := Empty[EmailPost]()
	assert.False(t, form.Bound)
	assert.False(t, form.Valid())
	assert.Empty(t, form.Errors)
}

func TestBindEmailPost(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		form := Bind[EmailPost](url.Values{
			"name":    {"  Alice "},
			"email":   {"alice@example.com"},
			"to":      {"bob@x.com"},
			"comment": {"hi"},
		})
		assert.True(t, form.Valid())
		assert.Equal(t, "Alice", form.Data.Name)
		assert.Equal(t, "bob@x.com", form.Data.To)
		assert.Equal(t, "hi", form.Data.Comment)
	})

	t.Run("comment is optional", func(t *testing.T) {
		form := Bind[EmailPost](url.Values{
			"name":  {"Alice"},
			"email": {"alice@example.com"},
			"to":    {"bob@x.com"},
		})
		assert.True(t, form.Valid())
	})

	t.Run("field errors", func(t *testing.T) {
		form := Bind[EmailPost](url.Values{
			"name":  {strings.Repeat("a", 26)},
			"email": {"nope"},
		})
		assert.True(t, form.Bound)
		assert.False(t, form.Valid())
		assert.Equal(t, "Enter a valid email address.", form.Error("email"))
		assert.Equal(t, "This field is required.", form.Error("to"))
		assert.Contains(t, form.Error("name"), "at most 25 characters (it has 26)")
		assert.Empty(t, form.Error("comment"))
	})
}

func TestBindComment(t *testing.T) {
	t.Run("markup is stripped", func(t *testing.T) {
		form := Bind[Comment](url.Values{
			"name":  {"Bob"},
			"email": {"bob@example.com"},
			"body":  {"Nice <script>alert(1)</script><b>post</b> & thanks"},
		})
		assert.True(t, form.Valid())
		assert.Equal(t, "Nice post & thanks", form.Data.Body)

		comment := form.Data.Model()
		assert.True(t, comment.Active)
		assert.Equal(t, "Bob", comment.Name)
	})

	t.Run("markup only body is empty", func(t *testing.T) {
		form := Bind[Comment](url.Values{
			"name":  {"Bob"},
			"email": {"bob@example.com"},
			"body":  {"<script></script>"},
		})
		assert.False(t, form.Valid())
		assert.Equal(t, "This field is required.", form.Error("body"))
	})
}
