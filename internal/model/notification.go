package model

import "time"

type NotificationType string

const (
	NotificationBadge       NotificationType = "badge"
	NotificationQuiz        NotificationType = "quiz"
	NotificationStreak      NotificationType = "streak"
	NotificationLesson      NotificationType = "lesson"
	NotificationLeaderboard NotificationType = "leaderboard"
	NotificationGeneral     NotificationType = "general"
)

type Notification struct {
	ID        string           `gorm:"primaryKey;size:64" json:"id"`
	UserID    string           `gorm:"size:64;index;not null" json:"userId"`
	Title     string           `gorm:"size:100;not null" json:"title"`
	Message   string           `gorm:"size:512;not null" json:"message"`
	Type      NotificationType `gorm:"size:20;not null" json:"type"`
	Read      bool             `gorm:"default:false" json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
