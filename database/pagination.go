package database

import (
	"strconv"

	"github.com/rpupo63/blogicum-backend/models"
	"gorm.io/gorm"
)

// DefaultPostsPerPage is the page size used unless configured otherwise.
const DefaultPostsPerPage = 10

// Page is one slice of an ordered post listing plus the metadata needed
// to render navigation controls.
type Page struct {
	Posts       []*models.Post `json:"posts"`
	Number      int            `json:"number"`
	TotalPages  int            `json:"totalPages"`
	TotalCount  int64          `json:"totalCount"`
	HasNext     bool           `json:"hasNext"`
	HasPrevious bool           `json:"hasPrevious"`
}

// ParsePage turns a raw ?page= query value into a page number,
// defaulting to 1 when the value is absent or not a number. Range
// clamping happens later, once the total is known.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// paginate counts the base query, clamps the requested page into
// [1, totalPages], then fetches exactly that page with comment counts
// attached. Out-of-range pages never error: too large clamps to the
// last page, zero or negative to the first.
func paginate(base *gorm.DB, pageNum, pageSize int) (*Page, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if pageNum < 1 {
		pageNum = 1
	}
	if pageNum > totalPages {
		pageNum = totalPages
	}

	posts := []*models.Post{}
	err := base.Session(&gorm.Session{}).
		Scopes(WithCommentCounts).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Offset((pageNum - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Posts:       posts,
		Number:      pageNum,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     pageNum < totalPages,
		HasPrevious: pageNum > 1,
	}, nil
}
