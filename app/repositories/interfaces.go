package repositories

import (
	"errors"
	"time"

	"blog/app/models"
)

var (
	ErrNotFound = errors.New("record not found")
)

// PostKey identifies a post by its UTC publish date and slug. Every field
// takes part in a lookup; a key naming a date that does not exist matches
// nothing.
type PostKey struct {
	Year  int
	Month int
	Day   int
	Slug  string
}

// DayRange returns the UTC half-open interval covering the key's publish
// date. ok is false when the date does not exist.
func (k PostKey) DayRange() (start, end time.Time, ok bool) {
	if k.Year < 1 || k.Month < 1 || k.Day < 1 {
		return time.Time{}, time.Time{}, false
	}
	start = time.Date(k.Year, time.Month(k.Month), k.Day, 0, 0, 0, 0, time.UTC)
	if start.Year() != k.Year || int(start.Month()) != k.Month || start.Day() != k.Day {
		return time.Time{}, time.Time{}, false
	}
	return start, start.AddDate(0, 0, 1), true
}

// Matches reports whether post was published on the key's date under the
// key's slug.
func (k PostKey) Matches(post *models.Post) bool {
	start, end, ok := k.DayRange()
	if !ok || k.Slug == "" || post.Slug != k.Slug {
		return false
	}
	pub := post.Publish.UTC()
	return !pub.Before(start) && pub.Before(end)
}

// HasStatus reports whether post is in status. The empty status matches
// every post.
func HasStatus(post *models.Post, status models.Status) bool {
	return status == "" || post.Status == status
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(post *models.Post) error
	// GetByID returns the post with id, or ErrNotFound. Ids start at 1.
	GetByID(id int) (*models.Post, error)
	// FindByKey returns the post matching key in status, or ErrNotFound.
	// An empty status matches any post.
	FindByKey(key PostKey, status models.Status) (*models.Post, error)
	// ListByStatus returns posts with status, newest publish date first.
	ListByStatus(status models.Status) ([]*models.Post, error)
	Update(post *models.Post) error
	Delete(id int) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	// ListByPost returns a post's comments, oldest first.
	ListByPost(postID int, activeOnly bool) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id int) error
}
