package models

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.Created.IsZero() {
		return errors.New("created cannot be zero")
	}

	return nil
}

// BeforeCreate fills the fields a new post gets when it is first stored.
func (p *Post) BeforeCreate() {
	now := time.Now().UTC()
	if p.Created.IsZero() {
		p.Created = now
	}
	p.Updated = now
	if p.Publish.IsZero() {
		p.Publish = now
	}
	p.Publish = p.Publish.UTC()
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
}

// IsPublished reports whether the post is visible to readers.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// AbsoluteURL returns the canonical detail path of the post.
func (p *Post) AbsoluteURL() string {
	pub := p.Publish.UTC()
	return fmt.Sprintf("/%d/%d/%d/%s/", pub.Year(), int(pub.Month()), pub.Day(), p.Slug)
}

// AddComment adds a comment to the post
func (p *Post) AddComment(comment *Comment) error {
	if comment == nil {
		return errors.New("comment cannot be nil")
	}

	comment.PostID = p.ID
	comment.Post = p
	p.Comments = append(p.Comments, comment)
	return nil
}
