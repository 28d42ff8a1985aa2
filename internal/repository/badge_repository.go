package repository

import (
	"errors"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

// BadgeRepository covers the badge catalog and the per-user achievement
// rows unlocked from it.
type BadgeRepository struct {
	DB *gorm.DB
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{DB: db}
}

func (r *BadgeRepository) AllBadges() ([]model.Badge, error) {
	var badges []model.Badge
	err := r.DB.Find(&badges).Error
	return badges, err
}

func (r *BadgeRepository) FindAchievement(userID, badgeID string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Where("user_id = ? AND badge_id = ?", userID, badgeID).First(&achievement).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (r *BadgeRepository) CreateAchievement(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

func (r *BadgeRepository) AchievementsByUser(userID string) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("user_id = ?", userID).Find(&achievements).Error
	return achievements, err
}

func (r *BadgeRepository) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Achievement{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
