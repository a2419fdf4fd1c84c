package repositories

import (
	"gorm.io/gorm"

	"bookmarkd/internal/models"
)

type GoalRepository interface {
	Create(db *gorm.DB, goal *models.Goal) error
	GetByIDAndUser(db *gorm.DB, goalID, userID uint) (*models.Goal, error)
	ListByUser(db *gorm.DB, userID uint) ([]models.Goal, error)
	UpdateProgress(db *gorm.DB, goalID uint, progress int) error
	Delete(db *gorm.DB, goalID uint) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(db *gorm.DB, goal *models.Goal) error {
	if db == nil {
		db = r.db
	}
	return db.Create(goal).Error
}

// GetByIDAndUser scopes the lookup to the owner so a goal belonging to a
// different user is indistinguishable from a missing one.
func (r *goalRepository) GetByIDAndUser(db *gorm.DB, goalID, userID uint) (*models.Goal, error) {
	if db == nil {
		db = r.db
	}
	var goal models.Goal
	err := db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) ListByUser(db *gorm.DB, userID uint) ([]models.Goal, error) {
	if db == nil {
		db = r.db
	}
	var goals []models.Goal
	err := db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) UpdateProgress(db *gorm.DB, goalID uint, progress int) error {
	if db == nil {
		db = r.db
	}
	return db.Model(&models.Goal{}).
		Where("id = ?", goalID).
		Update("progress", progress).
		Error
}

func (r *goalRepository) Delete(db *gorm.DB, goalID uint) error {
	if db == nil {
		db = r.db
	}
	return db.Delete(&models.Goal{}, "id = ?", goalID).Error
}
