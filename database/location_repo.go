package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/blogicum-backend/models"
)

type LocationRepo struct {
	db *gorm.DB
}

func NewLocationRepo(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db}
}

// FindByID returns a location by its ID
func (r *LocationRepo) FindByID(id uuid.UUID) (*models.Location, error) {
	var location models.Location
	err := r.db.First(&location, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}

// Add inserts a new location into the database
func (r *LocationRepo) Add(location *models.Location) error {
	return r.db.Create(location).Error
}
