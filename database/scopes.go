package database

import (
	"time"

	"gorm.io/gorm"
)

// VisibleAt returns a scope restricting a post query to posts that are
// publicly visible at the given instant: published, with a pub date in
// the past, and either uncategorized or filed under a published
// category. The scope only narrows the query, so callers can keep
// chaining filters, annotation and pagination on the result.
func VisibleAt(now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date < ?", now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
}

// WithCommentCounts annotates each post with the live number of
// comments referencing it and fixes the ordering to newest-first by pub
// date. The count is computed at query time, never stored.
func WithCommentCounts(db *gorm.DB) *gorm.DB {
	return db.
		Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Order("posts.pub_date DESC").
		Order("posts.id")
}
