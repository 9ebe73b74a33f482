package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/models"
)

type PostRepo struct {
	db       *gorm.DB
	pageSize int
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db, pageSize: DefaultPostsPerPage}
}

// SetPageSize overrides the configured posts-per-page constant.
func (r *PostRepo) SetPageSize(size int) {
	if size > 0 {
		r.pageSize = size
	}
}

// FindByID returns a post regardless of its visibility state.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindVisibleByID returns a post only if it passes the visibility
// predicate at the given instant.
func (r *PostRepo) FindVisibleByID(id uuid.UUID, now time.Time) (*models.Post, error) {
	var post models.Post
	err := r.db.Model(&models.Post{}).
		Select("posts.*").
		Scopes(VisibleAt(now)).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, "posts.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// VisiblePage returns one page of all publicly visible posts, annotated
// with comment counts.
func (r *PostRepo) VisiblePage(now time.Time, page int) (*Page, error) {
	base := r.db.Model(&models.Post{}).Scopes(VisibleAt(now))
	return paginate(base, page, r.pageSize)
}

// CategoryPage returns one page of the visible posts filed under a
// category.
func (r *PostRepo) CategoryPage(categoryID uuid.UUID, now time.Time, page int) (*Page, error) {
	base := r.db.Model(&models.Post{}).
		Scopes(VisibleAt(now)).
		Where("posts.category_id = ?", categoryID)
	return paginate(base, page, r.pageSize)
}

// AuthorPage returns one page of a user's posts. When includeHidden is
// set (the viewer is that user) the visibility filter is skipped and
// unpublished or future-dated posts show up too.
func (r *PostRepo) AuthorPage(authorID uuid.UUID, includeHidden bool, now time.Time, page int) (*Page, error) {
	base := r.db.Model(&models.Post{}).Where("posts.author_id = ?", authorID)
	if !includeHidden {
		base = base.Scopes(VisibleAt(now))
	}
	return paginate(base, page, r.pageSize)
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update persists an edit to a post. Publication state and the image
// path are managed separately and never touched here.
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Model(post).
		Select("Title", "Text", "PubDate", "CategoryID", "LocationID").
		Updates(post).Error
}

// SetImage records the stored path of a post's uploaded image.
func (r *PostRepo) SetImage(id uuid.UUID, path string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Update("image", path).Error
}

// Delete removes a post; its comments cascade with it.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Post{}, "id = ?", id).Error
}
