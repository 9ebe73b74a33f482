package models

import "time"

// Publication holds the fields shared by everything that can be
// published or hidden: Category, Location and Post embed it.
type Publication struct {
	IsPublished bool      `json:"isPublished" db:"is_published" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;autoCreateTime"`
}
