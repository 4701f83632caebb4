package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status is the publication state of a post.
type Status string

const (
	StatusDraft     Status = "DF"
	StatusPublished Status = "PB"
)

// Post represents a blog post with comments.
type Post struct {
	ID       int        `json:"id" gorm:"primaryKey" validate:"gte=0"`
	Title    string     `json:"title" gorm:"size:250;not null" validate:"required,max=250"`
	Slug     string     `json:"slug" gorm:"size:250;not null;index:idx_posts_slug" validate:"required,max=250"`
	Author   string     `json:"author" gorm:"size:150" validate:"max=150"`
	Body     string     `json:"body" gorm:"type:text;not null" validate:"required"`
	Publish  time.Time  `json:"publish" gorm:"index:idx_posts_publish,sort:desc" validate:"required"`
	Created  time.Time  `json:"created"`
	Updated  time.Time  `json:"updated"`
	Status   Status     `json:"status" gorm:"size:2;not null;index" validate:"required,oneof=DF PB"`
	Comments []*Comment `json:"-" gorm:"-" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID      int       `json:"id" gorm:"primaryKey" validate:"gte=0"`
	PostID  int       `json:"post_id" gorm:"not null;index" validate:"required,gt=0"`
	Name    string    `json:"name" gorm:"size:80;not null" validate:"required,max=80"`
	Email   string    `json:"email" gorm:"size:254;not null" validate:"required,email"`
	Body    string    `json:"body" gorm:"type:text;not null" validate:"required"`
	Created time.Time `json:"created" gorm:"index"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active" gorm:"not null;index"`
	Post    *Post     `json:"-" gorm:"-" validate:"-"`
}
