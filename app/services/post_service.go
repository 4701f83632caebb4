package services

import (
	"errors"
	"fmt"

	"blog/app/forms"
	"blog/app/mail"
	"blog/app/models"
	"blog/app/pagination"
	"blog/app/repositories"

	"go.uber.org/zap"
)

// Settings carries the tunables the services read from configuration.
type Settings struct {
	PageSize int
	MailFrom string
}

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
	mailer      mail.Mailer
	settings    Settings
	log         *zap.Logger
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, mailer mail.Mailer, settings Settings, log *zap.Logger) *PostService {
	if settings.PageSize < 1 {
		settings.PageSize = 2
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		mailer:      mailer,
		settings:    settings,
		log:         log,
	}
}

// CreatePost validates and stores a new post
func (s *PostService) CreatePost(post *models.Post) error {
	post.BeforeCreate()
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	// Slugs identify a post only together with its publish date
	pub := post.Publish.UTC()
	_, err := s.postRepo.FindByKey(repositories.PostKey{
		Year:  pub.Year(),
		Month: int(pub.Month()),
		Day:   pub.Day(),
		Slug:  post.Slug,
	}, "")
	if err == nil {
		return fmt.Errorf("invalid post: slug %q already used on %s", post.Slug, pub.Format("2006-01-02"))
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return err
	}

	return s.postRepo.Create(post)
}

// ListPublished returns the requested page of published posts. The page
// value is taken verbatim from the request and clamped, never rejected.
func (s *PostService) ListPublished(page string) (pagination.Page[*models.Post], error) {
	posts, err := s.postRepo.ListByStatus(models.StatusPublished)
	if err != nil {
		return pagination.Page[*models.Post]{}, fmt.Errorf("failed to list posts: %w", err)
	}
	return pagination.Paginate(posts, s.settings.PageSize, page), nil
}

// GetPublished returns the published post with id, or ErrNotFound.
func (s *PostService) GetPublished(id int) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

// Detail resolves a published post by publish date and slug. The post's
// Comments hold its active comments, oldest first.
func (s *PostService) Detail(year, month, day int, slug string) (*models.Post, error) {
	post, err := s.postRepo.FindByKey(repositories.PostKey{
		Year:  year,
		Month: month,
		Day:   day,
		Slug:  slug,
	}, models.StatusPublished)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(post.ID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}
	for _, c := range comments {
		if err := post.AddComment(c); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// Share emails a recommendation of post to form.To. postURL is the absolute
// link included in the message.
func (s *PostService) Share(post *models.Post, form forms.EmailPost, postURL string) error {
	msg := mail.Message{
		Subject: fmt.Sprintf(`"%s" recommends you to read "%s"`, form.Name, post.Title),
		Body: fmt.Sprintf("Read \"%s\" at %s\n\n\"%s's comment: %s\"",
			post.Title, postURL, form.Name, form.Comment),
		From: s.settings.MailFrom,
		To:   []string{form.To},
	}
	if err := s.mailer.Send(msg); err != nil {
		return fmt.Errorf("failed to send share email: %w", err)
	}
	s.log.Info("post shared", zap.Int("post_id", post.ID), zap.String("to", form.To))
	return nil
}
