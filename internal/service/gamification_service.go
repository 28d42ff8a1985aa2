package service

import (
	"fmt"
	"sync"
	"time"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
	"stemlearn/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GamificationService owns XP accrual, level computation, streak
// continuity, badge unlocking and the leaderboard snapshot. Writes for one
// user are serialized by a per-user mutex, so overlapping UI events cannot
// race the read-modify-write on xp.
type GamificationService struct {
	DB              *gorm.DB
	UserRepo        *repository.UserRepository
	StreakRepo      *repository.StreakRepository
	BadgeRepo       *repository.BadgeRepository
	LeaderboardRepo *repository.LeaderboardRepository

	now func() time.Time

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

func NewGamificationService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	streakRepo *repository.StreakRepository,
	badgeRepo *repository.BadgeRepository,
	leaderboardRepo *repository.LeaderboardRepository,
) *GamificationService {
	return &GamificationService{
		DB:              db,
		UserRepo:        userRepo,
		StreakRepo:      streakRepo,
		BadgeRepo:       badgeRepo,
		LeaderboardRepo: leaderboardRepo,
		now:             time.Now,
		userLocks:       make(map[string]*sync.Mutex),
	}
}

func (s *GamificationService) lockUser(userID string) func() {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// AddXP adds a positive reward to the user's XP, recomputes the level and
// unlocks any newly qualifying badges, all in one transaction. Callers are
// responsible for invoking it once per rewarded event.
func (s *GamificationService) AddXP(userID string, amount int) error {
	if amount <= 0 {
		return nil
	}
	unlock := s.lockUser(userID)
	defer unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		user, err := users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return util.ErrUserNotFound
		}

		newXP := user.XP + amount
		newLevel := LevelForXP(newXP)
		if err := users.Update(userID, &repository.UserPatch{XP: &newXP, Level: &newLevel}); err != nil {
			return err
		}
		if newLevel > user.Level {
			logger.Log.Info("level up",
				zap.String("user", userID),
				zap.Int("level", newLevel),
			)
		}

		user.XP = newXP
		user.Level = newLevel
		_, err = s.unlockBadges(tx, user)
		return err
	})
}

// UpdateStreak marks today as active for the user. The first call of a day
// inserts the day record, awards the daily stipend and advances the streak;
// the streak continues only when yesterday has a completed record,
// otherwise it restarts at 1. Reruns on the same day are no-ops.
func (s *GamificationService) UpdateStreak(userID string) error {
	unlock := s.lockUser(userID)
	defer unlock()

	today := s.now().Format(util.DateFormat)
	existing, err := s.StreakRepo.FindByUserAndDate(userID, today)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	yesterday := s.now().AddDate(0, 0, -1).Format(util.DateFormat)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		streaks := repository.NewStreakRepository(tx)

		user, err := users.FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return util.ErrUserNotFound
		}

		if err := streaks.Create(&model.Streak{
			ID:        util.NewID("streak"),
			UserID:    userID,
			Date:      today,
			Completed: true,
			XPEarned:  util.StreakDailyXP,
		}); err != nil {
			return err
		}

		previous, err := streaks.FindByUserAndDate(userID, yesterday)
		if err != nil {
			return err
		}
		newStreak := 1
		if previous != nil && previous.Completed {
			newStreak = user.CurrentStreak + 1
		}
		longest := user.LongestStreak
		if newStreak > longest {
			longest = newStreak
		}

		newXP := user.XP + util.StreakDailyXP
		newLevel := LevelForXP(newXP)
		if err := users.Update(userID, &repository.UserPatch{
			CurrentStreak: &newStreak,
			LongestStreak: &longest,
			XP:            &newXP,
			Level:         &newLevel,
		}); err != nil {
			return err
		}

		user.XP = newXP
		user.Level = newLevel
		_, err = s.unlockBadges(tx, user)
		return err
	})
}

// UpdateStreakDuration accumulates session time onto today's streak record,
// if one exists.
func (s *GamificationService) UpdateStreakDuration(userID string, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	today := s.now().Format(util.DateFormat)
	return s.StreakRepo.AddDuration(userID, today, seconds)
}

// CheckAndUnlockBadges inserts an achievement for every badge the user now
// qualifies for and bumps totalBadges, in one transaction. Already-unlocked
// badges are never re-inserted.
func (s *GamificationService) CheckAndUnlockBadges(userID string) ([]model.Badge, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var unlocked []model.Badge
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return util.ErrUserNotFound
		}
		unlocked, err = s.unlockBadges(tx, user)
		return err
	})
	return unlocked, err
}

func (s *GamificationService) unlockBadges(tx *gorm.DB, user *model.User) ([]model.Badge, error) {
	badges := repository.NewBadgeRepository(tx)
	notifications := repository.NewNotificationRepository(tx)

	catalog, err := badges.AllBadges()
	if err != nil {
		return nil, err
	}

	var unlocked []model.Badge
	for _, badge := range catalog {
		existing, err := badges.FindAchievement(user.ID, badge.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil || user.XP < badge.XPRequired {
			continue
		}

		if err := badges.CreateAchievement(&model.Achievement{
			ID:       util.NewID("achievement"),
			UserID:   user.ID,
			BadgeID:  badge.ID,
			EarnedAt: s.now(),
			Progress: 100,
		}); err != nil {
			return nil, err
		}
		if err := notifications.Create(&model.Notification{
			ID:        util.NewID("notification"),
			UserID:    user.ID,
			Title:     "Badge unlocked",
			Message:   fmt.Sprintf("You earned the %s badge!", badge.Name),
			Type:      model.NotificationBadge,
			CreatedAt: s.now(),
		}); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, badge)
	}

	if len(unlocked) > 0 {
		total := user.TotalBadges + len(unlocked)
		if err := repository.NewUserRepository(tx).Update(user.ID, &repository.UserPatch{TotalBadges: &total}); err != nil {
			return nil, err
		}
		user.TotalBadges = total
	}
	return unlocked, nil
}

// RebuildLeaderboard regenerates the whole ranking snapshot: delete all
// entries, re-read users by descending XP and insert dense 1-based ranks.
// Intentionally non-incremental.
func (s *GamificationService) RebuildLeaderboard() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		users, err := repository.NewUserRepository(tx).FindAllByXPDesc()
		if err != nil {
			return err
		}

		leaderboard := repository.NewLeaderboardRepository(tx)
		if err := leaderboard.DeleteAll(); err != nil {
			return err
		}

		entries := make([]model.LeaderboardEntry, 0, len(users))
		for i, user := range users {
			entries = append(entries, model.LeaderboardEntry{
				ID:       "leaderboard-" + user.ID,
				UserID:   user.ID,
				UserName: user.Name,
				AvatarID: user.AvatarID,
				TotalXP:  user.XP,
				Level:    user.Level,
				Rank:     i + 1,
			})
		}
		return leaderboard.CreateAll(entries)
	})
}

func (s *GamificationService) Leaderboard(limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.LeaderboardRepo.Top(limit)
}

// GetUserRank returns the user's rank from the most recent rebuild, or 0
// when the user has no entry.
func (s *GamificationService) GetUserRank(userID string) (int, error) {
	entry, err := s.LeaderboardRepo.FindByUser(userID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Rank, nil
}

func (s *GamificationService) AllBadges() ([]model.Badge, error) {
	return s.BadgeRepo.AllBadges()
}

func (s *GamificationService) UserAchievements(userID string) ([]model.Achievement, error) {
	return s.BadgeRepo.AchievementsByUser(userID)
}
