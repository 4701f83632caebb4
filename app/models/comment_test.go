package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCommentValidation(t *testing.T) {
	tests := []struct {
		name    string
		comment *Comment
		wantErr bool
	}{
		{
			name: "valid comment",
			comment: &Comment{
				PostID:  1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "This is a valid comment",
				Created: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "bad email",
			comment: &Comment{
				PostID:  1,
				Name:    "John Doe",
				Email:   "not-an-email",
				Body:    "This is a valid comment",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "empty body",
			comment: &Comment{
				PostID:  1,
				Name:    "John Doe",
				Email:   "john@example.com",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "missing post",
			comment: &Comment{
				Name:    "John Doe",
				Email:   "john@example.com",
				Body:    "Valid content",
				Created: time.Now(),
			},
			wantErr: true,
		},
		{
			name: "zero creation time",
			comment: &Comment{
				PostID: 1,
				Name:   "John Doe",
				Email:  "john@example.com",
				Body:   "Valid content",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCommentIsActive(t *testing.T) {
	comment := NewComment("John Doe", "john@example.com", "Hi")
	assert.True(t, comment.Active)

	assert.True(t, comment.Created.IsZero())
	comment.BeforeCreate()
	assert.False(t, comment.Created.IsZero())
}

func TestCommentSetPost(t *testing.T) {
	comment := NewComment("John Doe", "john@example.com", "Test Comment")

	t.Run("set valid post", func(t *testing.T) {
		post := &Post{ID: 1, Title: "Test Post"}
		err := comment.SetPost(post)
		assert.NoError(t, err)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, post, comment.Post)
	})

	t.Run("set nil post", func(t *testing.T) {
		assert.Error(t, comment.SetPost(nil))
	})
}
