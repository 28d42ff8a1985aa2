package model

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// EducationLevel is a bounded enum: primary grades "1".."7", secondary
// forms "form1".."form5", or "none".
type EducationLevel string

const EducationNone EducationLevel = "none"

var educationLevels = map[EducationLevel]bool{
	"1": true, "2": true, "3": true, "4": true, "5": true, "6": true, "7": true,
	"form1": true, "form2": true, "form3": true, "form4": true, "form5": true,
	EducationNone: true,
}

func ValidEducationLevel(l EducationLevel) bool {
	return educationLevels[l]
}

type User struct {
	ID             string         `gorm:"primaryKey;size:64" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username       string         `gorm:"size:100;uniqueIndex" json:"username"`
	Password       string         `gorm:"size:100;not null" json:"-"`
	Age            int            `gorm:"not null" json:"age"`
	Gender         Gender         `gorm:"size:10;not null" json:"gender"`
	EducationLevel EducationLevel `gorm:"size:10;not null;default:'none'" json:"educationLevel"`
	AvatarID       string         `gorm:"size:64;not null" json:"avatarId"`
	XP             int            `gorm:"default:0" json:"xp"`
	Level          int            `gorm:"default:1" json:"level"`
	CurrentStreak  int            `gorm:"default:0" json:"currentStreak"`
	LongestStreak  int            `gorm:"default:0" json:"longestStreak"`
	TotalBadges    int            `gorm:"default:0" json:"totalBadges"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastActive     time.Time      `json:"lastActive"`
	Theme          string         `gorm:"size:10;default:'light'" json:"theme"`
	ThemeColor     string         `gorm:"size:10" json:"themeColor"`
}

func (User) TableName() string {
	return "users"
}

// ThemeColorForGender mirrors the registration default: a pink accent for
// female accounts, blue otherwise.
func ThemeColorForGender(g Gender) string {
	if g == GenderFemale {
		return "#FF48E3"
	}
	return "#13a4ec"
}
