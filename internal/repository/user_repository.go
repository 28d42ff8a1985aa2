package repository

import (
	"errors"
	"strings"
	"time"

	"stemlearn/internal/model"
	"stemlearn/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// UserPatch lists the legitimately mutable user fields. Nil fields are left
// untouched; an all-nil patch is rejected.
type UserPatch struct {
	Name          *string
	AvatarID      *string
	Theme         *string
	ThemeColor    *string
	XP            *int
	Level         *int
	CurrentStreak *int
	LongestStreak *int
	TotalBadges   *int
	LastActive    *time.Time
}

func (p *UserPatch) fields() map[string]interface{} {
	set := map[string]interface{}{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.AvatarID != nil {
		set["avatar_id"] = *p.AvatarID
	}
	if p.Theme != nil {
		set["theme"] = *p.Theme
	}
	if p.ThemeColor != nil {
		set["theme_color"] = *p.ThemeColor
	}
	if p.XP != nil {
		set["xp"] = *p.XP
	}
	if p.Level != nil {
		set["level"] = *p.Level
	}
	if p.CurrentStreak != nil {
		set["current_streak"] = *p.CurrentStreak
	}
	if p.LongestStreak != nil {
		set["longest_streak"] = *p.LongestStreak
	}
	if p.TotalBadges != nil {
		set["total_badges"] = *p.TotalBadges
	}
	if p.LastActive != nil {
		set["last_active"] = *p.LastActive
	}
	return set
}

func (r *UserRepository) Create(user *model.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastActive.IsZero() {
		user.LastActive = now
	}

	err := r.DB.Create(user).Error
	if err == nil {
		return nil
	}
	// Surface duplicate identity as a distinguishable error so callers can
	// tell "already registered" from a generic failure.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.email"):
		return util.ErrEmailRegistered
	case strings.Contains(msg, "users.username"):
		return util.ErrUsernameTaken
	}
	return err
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(id string, patch *UserPatch) error {
	set := patch.fields()
	if len(set) == 0 {
		return util.ErrEmptyPatch
	}
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(set).Error
}

// FindAllByXPDesc returns every user ordered by descending XP. Ties keep
// insertion order via the created_at tiebreak, so rebuilds are stable.
func (r *UserRepository) FindAllByXPDesc() ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("xp DESC").Order("created_at ASC").Find(&users).Error
	return users, err
}
