package repositories

import (
	"errors"

	"blog/app/models"

	"gorm.io/gorm"
)

// GormPostRepository implements PostRepository on a SQL database through GORM
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *GormPostRepository) GetByID(id int) (*models.Post, error) {
	if id < 1 {
		return nil, ErrNotFound
	}
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *GormPostRepository) FindByKey(key PostKey, status models.Status) (*models.Post, error) {
	start, end, ok := key.DayRange()
	if !ok || key.Slug == "" {
		return nil, ErrNotFound
	}
	q := r.db.Model(&models.Post{}).
		Where("publish >= ? AND publish < ?", start, end).
		Where("slug = ?", key.Slug)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var post models.Post
	if err := q.Order("publish DESC").Order("id DESC").First(&post).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *GormPostRepository) ListByStatus(status models.Status) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Where("status = ?", status).
		Order("publish DESC").Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormPostRepository) Update(post *models.Post) error {
	if _, err := r.GetByID(post.ID); err != nil {
		return err
	}
	return r.db.Model(post).Select("*").Updates(post).Error
}

// Delete removes a post together with its comments.
func (r *GormPostRepository) Delete(id int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GormCommentRepository implements CommentRepository on a SQL database through GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	var n int64
	if err := r.db.Model(&models.Post{}).Where("id = ?", comment.PostID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return r.db.Create(comment).Error
}

func (r *GormCommentRepository) GetByID(id int) (*models.Comment, error) {
	if id < 1 {
		return nil, ErrNotFound
	}
	var comment models.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, notFound(err)
	}
	return &comment, nil
}

func (r *GormCommentRepository) ListByPost(postID int, activeOnly bool) ([]*models.Comment, error) {
	q := r.db.Where("post_id = ?", postID)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var comments []*models.Comment
	if err := q.Order("created ASC").Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormCommentRepository) Update(comment *models.Comment) error {
	existing, err := r.GetByID(comment.ID)
	if err != nil {
		return err
	}
	comment.PostID = existing.PostID
	return r.db.Model(comment).Select("*").Updates(comment).Error
}

func (r *GormCommentRepository) Delete(id int) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
