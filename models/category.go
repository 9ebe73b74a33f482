package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups posts under a unique URL slug. An unpublished
// category hides every post filed under it from non-authors.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"size:256;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	Slug        string    `json:"slug" db:"slug" gorm:"size:64;not null;uniqueIndex"`
	Publication
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
