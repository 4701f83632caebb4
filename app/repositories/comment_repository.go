package repositories

import (
	"fmt"

	"blog/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		// A comment cannot outlive its post
		if _, err := txn.Get(postKey(comment.PostID)); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}

		id, err := getNextID(txn, CommentSeqKey)
		if err != nil {
			return err
		}
		comment.ID = id

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		// Save comment with post ID in key for efficient listing
		return txn.Set(commentKey(comment.PostID, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id int) (*models.Comment, error) {
	if id < 1 {
		return nil, ErrNotFound
	}
	var found *models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		_, c, err := findComment(txn, id)
		found = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// findComment walks the comment keyspace for id, since keys are grouped by post.
func findComment(txn *badger.Txn, id int) ([]byte, *models.Comment, error) {
	opts := badger.DefaultIteratorOptions
	it := txn.NewIterator(opts)
	defer it.Close()

	prefix := []byte(CommentKeyPrefix)
	suffix := fmt.Sprintf(":%d", id)
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		key := string(item.Key())
		if len(key) < len(suffix) || key[len(key)-len(suffix):] != suffix {
			continue
		}
		var comment models.Comment
		err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &comment)
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal comment: %w", err)
		}
		if comment.ID == id {
			return item.KeyCopy(nil), &comment, nil
		}
	}
	return nil, nil, ErrNotFound
}

// ListByPost retrieves the comments for a post
func (r *BadgerCommentRepository) ListByPost(postID int, activeOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%d:", CommentKeyPrefix, postID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %w", err)
			}
			if activeOnly && !comment.Active {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortComments(comments)
	return comments, nil
}

// Update updates an existing comment
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, existing, err := findComment(txn, comment.ID)
		if err != nil {
			return err
		}
		// The owning post is part of the key and never changes
		comment.PostID = existing.PostID

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key, _, err := findComment(txn, id)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
