package service

import (
	"path/filepath"
	"testing"
	"time"

	"stemlearn/internal/config"
	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/pkg/database"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "test.db"),
		BusyTimeoutMS: 1000,
	}
	db, err := database.Open(cfg, false)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestGamification(t *testing.T, db *gorm.DB) *GamificationService {
	t.Helper()
	return NewGamificationService(
		db,
		repository.NewUserRepository(db),
		repository.NewStreakRepository(db),
		repository.NewBadgeRepository(db),
		repository.NewLeaderboardRepository(db),
	)
}

func createTestUser(t *testing.T, db *gorm.DB, id string, xp int) *model.User {
	t.Helper()
	user := &model.User{
		ID:       id,
		Name:     "Test " + id,
		Email:    id + "@example.com",
		Username: id,
		Password: "hashed",
		Age:      14,
		Gender:   model.GenderFemale,
		XP:       xp,
		Level:    LevelForXP(xp),
		Theme:    "light",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", id, err)
	}
	return user
}

func createTestBadge(t *testing.T, db *gorm.DB, id string, xpRequired int) {
	t.Helper()
	badge := &model.Badge{
		ID:          id,
		Name:        id,
		Description: "badge " + id,
		Icon:        "icon-" + id,
		Category:    model.CategoryGeneral,
		Requirement: "earn xp",
		XPRequired:  xpRequired,
	}
	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("create badge %s: %v", id, err)
	}
}

func TestAddXPAccumulatesAndLevels(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)

	for _, amount := range []int{40, 40, 40} {
		if err := svc.AddXP("u1", amount); err != nil {
			t.Fatalf("AddXP: %v", err)
		}
	}

	user, err := svc.UserRepo.FindByID("u1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user.XP != 120 {
		t.Errorf("XP = %d, want 120", user.XP)
	}
	if user.Level != 2 {
		t.Errorf("Level = %d, want 2", user.Level)
	}
}

func TestAddXPIgnoresNonPositive(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 50)

	if err := svc.AddXP("u1", 0); err != nil {
		t.Fatalf("AddXP(0): %v", err)
	}
	if err := svc.AddXP("u1", -10); err != nil {
		t.Fatalf("AddXP(-10): %v", err)
	}

	user, _ := svc.UserRepo.FindByID("u1")
	if user.XP != 50 {
		t.Errorf("XP = %d, want unchanged 50", user.XP)
	}
}

func TestAddXPUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)

	if err := svc.AddXP("missing", 10); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestBadgeUnlockOnceAndCounted(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)
	createTestBadge(t, db, "first-steps", 0)
	createTestBadge(t, db, "centurion", 100)

	if err := svc.AddXP("u1", 60); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if err := svc.AddXP("u1", 60); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	// A third grant must not re-unlock anything.
	if err := svc.AddXP("u1", 10); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	achievements, err := svc.UserAchievements("u1")
	if err != nil {
		t.Fatalf("UserAchievements: %v", err)
	}
	if len(achievements) != 2 {
		t.Fatalf("achievements = %d, want 2", len(achievements))
	}

	user, _ := svc.UserRepo.FindByID("u1")
	if user.TotalBadges != len(achievements) {
		t.Errorf("TotalBadges = %d, want %d", user.TotalBadges, len(achievements))
	}

	var notifications int64
	db.Model(&model.Notification{}).Where("user_id = ?", "u1").Count(&notifications)
	if notifications != 2 {
		t.Errorf("notifications = %d, want one per unlocked badge", notifications)
	}
}

func TestUpdateStreakSameDayNoOp(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)

	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak rerun: %v", err)
	}

	user, _ := svc.UserRepo.FindByID("u1")
	if user.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", user.CurrentStreak)
	}
	if user.XP != 25 {
		t.Errorf("XP = %d, want a single daily stipend of 25", user.XP)
	}

	count, err := svc.StreakRepo.CountByUser("u1")
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if count != 1 {
		t.Errorf("streak rows = %d, want 1", count)
	}
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		svc.now = func() time.Time { return day }
		if err := svc.UpdateStreak("u1"); err != nil {
			t.Fatalf("UpdateStreak day %d: %v", i, err)
		}
		day = day.AddDate(0, 0, 1)
	}

	user, _ := svc.UserRepo.FindByID("u1")
	if user.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", user.CurrentStreak)
	}
	if user.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", user.LongestStreak)
	}
	if user.XP != 75 {
		t.Errorf("XP = %d, want 3 daily stipends", user.XP)
	}
}

func TestUpdateStreakResetsAfterGap(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)

	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }
	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	next := day.AddDate(0, 0, 1)
	svc.now = func() time.Time { return next }
	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}

	// Skip a day; the streak must restart at 1 but the longest stays.
	later := day.AddDate(0, 0, 3)
	svc.now = func() time.Time { return later }
	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak after gap: %v", err)
	}

	user, _ := svc.UserRepo.FindByID("u1")
	if user.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want reset to 1", user.CurrentStreak)
	}
	if user.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", user.LongestStreak)
	}
}

func TestUpdateStreakDuration(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 0)

	if err := svc.UpdateStreak("u1"); err != nil {
		t.Fatalf("UpdateStreak: %v", err)
	}
	if err := svc.UpdateStreakDuration("u1", 120); err != nil {
		t.Fatalf("UpdateStreakDuration: %v", err)
	}
	if err := svc.UpdateStreakDuration("u1", 60); err != nil {
		t.Fatalf("UpdateStreakDuration: %v", err)
	}

	today := svc.now().Format("2006-01-02")
	streak, err := svc.StreakRepo.FindByUserAndDate("u1", today)
	if err != nil {
		t.Fatalf("FindByUserAndDate: %v", err)
	}
	if streak == nil {
		t.Fatal("expected today's streak record")
	}
	if streak.TimeSpentSeconds != 180 {
		t.Errorf("TimeSpentSeconds = %d, want 180", streak.TimeSpentSeconds)
	}
}

func TestRebuildLeaderboardDenseRanks(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "low", 100)
	createTestUser(t, db, "high", 900)
	createTestUser(t, db, "mid", 400)

	if err := svc.RebuildLeaderboard(); err != nil {
		t.Fatalf("RebuildLeaderboard: %v", err)
	}

	entries, err := svc.Leaderboard(0)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantOrder := []string{"high", "mid", "low"}
	for i, entry := range entries {
		if entry.UserID != wantOrder[i] {
			t.Errorf("rank %d user = %s, want %s", i+1, entry.UserID, wantOrder[i])
		}
		if entry.Rank != i+1 {
			t.Errorf("rank = %d, want %d", entry.Rank, i+1)
		}
		if entry.ID != "leaderboard-"+entry.UserID {
			t.Errorf("entry id = %s, want leaderboard-%s", entry.ID, entry.UserID)
		}
	}

	// A rebuild replaces, never appends.
	if err := svc.RebuildLeaderboard(); err != nil {
		t.Fatalf("RebuildLeaderboard rerun: %v", err)
	}
	entries, _ = svc.Leaderboard(0)
	if len(entries) != 3 {
		t.Errorf("entries after rebuild = %d, want 3", len(entries))
	}
}

func TestGetUserRank(t *testing.T) {
	db := newTestDB(t)
	svc := newTestGamification(t, db)
	createTestUser(t, db, "u1", 500)
	createTestUser(t, db, "u2", 700)

	if err := svc.RebuildLeaderboard(); err != nil {
		t.Fatalf("RebuildLeaderboard: %v", err)
	}

	rank, err := svc.GetUserRank("u1")
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank != 2 {
		t.Errorf("rank = %d, want 2", rank)
	}

	rank, err = svc.GetUserRank("nobody")
	if err != nil {
		t.Fatalf("GetUserRank absent: %v", err)
	}
	if rank != 0 {
		t.Errorf("rank for absent user = %d, want 0", rank)
	}
}
