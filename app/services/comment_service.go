package services

import (
	"fmt"
	"time"

	"blog/app/forms"
	"blog/app/models"
	"blog/app/repositories"

	"go.uber.org/zap"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	log         *zap.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, log *zap.Logger) *CommentService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CommentService{
		commentRepo: commentRepo,
		log:         log,
	}
}

// AddComment stores a new comment on post from validated form values. The
// comment is active, and therefore listed, as soon as it is saved.
func (s *CommentService) AddComment(post *models.Post, form forms.Comment) (*models.Comment, error) {
	comment := form.Model()
	if err := comment.SetPost(post); err != nil {
		return nil, err
	}
	comment.BeforeCreate()
	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	s.log.Info("comment added", zap.Int("post_id", post.ID), zap.Int("comment_id", comment.ID))
	return comment, nil
}

// SetActive shows or hides a comment.
func (s *CommentService) SetActive(id int, active bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	comment.Active = active
	comment.Updated = time.Now().UTC()
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}
