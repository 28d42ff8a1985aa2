package repository

import (
	"errors"
	"time"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndTopic(userID, topicID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) UpdateCompletion(id string, percentage int, accessedAt time.Time) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"completion_percentage": percentage,
			"last_accessed_at":      accessedAt,
		}).Error
}

func (r *ProgressRepository) AddTimeSpent(id string, minutes int) error {
	return r.DB.Model(&model.UserProgress{}).
		Where("id = ?", id).
		Update("time_spent_minutes", gorm.Expr("time_spent_minutes + ?", minutes)).
		Error
}

func (r *ProgressRepository) ByUser(userID string) ([]model.UserProgress, error) {
	var progress []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).Find(&progress).Error
	return progress, err
}
