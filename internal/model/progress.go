package model

import "time"

// UserProgress tracks per-topic completion. One row per (user, topic),
// upserted on every update.
type UserProgress struct {
	ID                   string    `gorm:"primaryKey;size:64" json:"id"`
	UserID               string    `gorm:"size:64;not null;index:idx_progress_user_topic,unique" json:"userId"`
	SubjectID            string    `gorm:"size:64;index;not null" json:"subjectId"`
	TopicID              string    `gorm:"size:64;not null;index:idx_progress_user_topic,unique" json:"topicId"`
	CompletionPercentage int       `gorm:"default:0" json:"completionPercentage"`
	LastAccessedAt       time.Time `gorm:"not null" json:"lastAccessedAt"`
	TimeSpentMinutes     int       `gorm:"default:0" json:"timeSpentMinutes"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
