package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a place a post can be tagged with.
type Location struct {
	ID   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name string    `json:"name" db:"name" gorm:"size:256;not null"`
	Publication
}

func (l *Location) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
