package repository

import (
	"errors"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// DeleteAll clears the snapshot ahead of a rebuild. The table is never
// incrementally patched.
func (r *LeaderboardRepository) DeleteAll() error {
	return r.DB.Exec("DELETE FROM leaderboard").Error
}

func (r *LeaderboardRepository) CreateAll(entries []model.LeaderboardEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.DB.Create(&entries).Error
}

func (r *LeaderboardRepository) Top(limit int) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	err := r.DB.Order("`rank`").Limit(limit).Find(&entries).Error
	return entries, err
}

func (r *LeaderboardRepository) FindByUser(userID string) (*model.LeaderboardEntry, error) {
	var entry model.LeaderboardEntry
	err := r.DB.Where("user_id = ?", userID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
