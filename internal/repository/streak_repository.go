package repository

import (
	"errors"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

type StreakRepository struct {
	DB *gorm.DB
}

func NewStreakRepository(db *gorm.DB) *StreakRepository {
	return &StreakRepository{DB: db}
}

func (r *StreakRepository) Create(streak *model.Streak) error {
	return r.DB.Create(streak).Error
}

// FindByUserAndDate looks up the activity marker for one calendar day.
// Date is a day string in util.DateFormat, not a timestamp.
func (r *StreakRepository) FindByUserAndDate(userID, date string) (*model.Streak, error) {
	var streak model.Streak
	err := r.DB.Where("user_id = ? AND date = ?", userID, date).First(&streak).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// AddDuration accumulates session time onto an existing day record. Days
// without a record are left alone; the marker itself is only ever created by
// the streak update.
func (r *StreakRepository) AddDuration(userID, date string, seconds int) error {
	return r.DB.Model(&model.Streak{}).
		Where("user_id = ? AND date = ?", userID, date).
		Update("time_spent_seconds", gorm.Expr("time_spent_seconds + ?", seconds)).
		Error
}

func (r *StreakRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Streak{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
