package model

import "time"

// Badge is a catalog entry describing an unlockable achievement.
// Immutable after seeding.
type Badge struct {
	ID          string          `gorm:"primaryKey;size:64" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Icon        string          `gorm:"size:64;not null" json:"icon"`
	Category    SubjectCategory `gorm:"size:20;not null" json:"category"`
	Requirement string          `gorm:"size:255;not null" json:"requirement"`
	XPRequired  int             `gorm:"default:0" json:"xpRequired"`
}

func (Badge) TableName() string {
	return "badges"
}

// Achievement marks one badge unlocked by one user. At most one row per
// (user, badge) pair.
type Achievement struct {
	ID       string    `gorm:"primaryKey;size:64" json:"id"`
	UserID   string    `gorm:"size:64;not null;index:idx_achievement_user_badge,unique" json:"userId"`
	BadgeID  string    `gorm:"size:64;not null;index:idx_achievement_user_badge,unique" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
	Progress int       `gorm:"default:0" json:"progress"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// Streak marks one calendar day of qualifying activity. Date is a calendar
// day string, not a timestamp; one row per (user, date).
type Streak struct {
	ID               string `gorm:"primaryKey;size:64" json:"id"`
	UserID           string `gorm:"size:64;not null;index:idx_streak_user_date,unique" json:"userId"`
	Date             string `gorm:"size:10;not null;index:idx_streak_user_date,unique" json:"date"`
	Completed        bool   `gorm:"default:false" json:"completed"`
	XPEarned         int    `gorm:"default:0" json:"xpEarned"`
	TimeSpentSeconds int    `gorm:"default:0" json:"timeSpentSeconds"`
}

func (Streak) TableName() string {
	return "streaks"
}

// LeaderboardEntry is a fully derived ranking snapshot. The whole table is
// deleted and regenerated on every rebuild.
type LeaderboardEntry struct {
	ID       string `gorm:"primaryKey;size:64" json:"id"`
	UserID   string `gorm:"size:64;index;not null" json:"userId"`
	UserName string `gorm:"size:100;not null" json:"userName"`
	AvatarID string `gorm:"size:64;not null" json:"avatarId"`
	TotalXP  int    `gorm:"default:0" json:"totalXp"`
	Level    int    `gorm:"default:1" json:"level"`
	Rank     int    `gorm:"default:0" json:"rank"`
	WeeklyXP int    `gorm:"default:0" json:"weeklyXp"` // reserved
}

func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}
