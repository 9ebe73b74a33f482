package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/models"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindByPost returns every comment on a post, oldest first.
func (r *CommentRepo) FindByPost(postID uuid.UUID) ([]*models.Comment, error) {
	comments := []*models.Comment{}
	err := r.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at").
		Order("id").
		Find(&comments).Error
	return comments, err
}

// FindByIDForPost returns a comment only when it belongs to the given
// post, so a comment ID cannot be addressed through another post's URL.
func (r *CommentRepo) FindByIDForPost(commentID, postID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Preload("Author").
		First(&comment, "id = ? AND post_id = ?", commentID, postID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// CountForPost returns the live number of comments on a post.
func (r *CommentRepo) CountForPost(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update persists a comment's text
func (r *CommentRepo) Update(comment *models.Comment) error {
	return r.db.Model(comment).Select("Text").Updates(comment).Error
}

// Delete removes a comment from the database by id
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}
