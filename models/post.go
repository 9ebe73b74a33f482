package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a blog publication. PubDate may be in the future, which keeps
// the post hidden from everyone but its author until the date passes.
// Deleting the author deletes the post; deleting the category or
// location only clears the reference.
type Post struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string     `json:"title" db:"title" gorm:"size:256;not null"`
	Text       string     `json:"text" db:"text" gorm:"type:text;not null"`
	PubDate    time.Time  `json:"pubDate" db:"pub_date" gorm:"type:timestamp;not null;index"`
	AuthorID   uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author     *User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	LocationID *uuid.UUID `json:"locationId,omitempty" db:"location_id" gorm:"type:uuid"`
	Location   *Location  `json:"location,omitempty" gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	CategoryID *uuid.UUID `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category   *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Image      string     `json:"image,omitempty" db:"image" gorm:"type:text"`
	Publication

	// Filled by the comment-count annotation, never stored.
	CommentCount int64 `json:"commentCount" gorm:"->;-:migration"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
