package service

import (
	"errors"
	"testing"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"

	"gorm.io/gorm"
)

func newTestLearning(t *testing.T, db *gorm.DB) *LearningService {
	t.Helper()
	return NewLearningService(
		repository.NewContentRepository(db),
		repository.NewProgressRepository(db),
		newTestGamification(t, db),
	)
}

func seedTestTopic(t *testing.T, db *gorm.DB) {
	t.Helper()
	subject := &model.Subject{
		ID:          "subject-1",
		Name:        "Science",
		Category:    model.CategoryScience,
		Description: "Natural sciences",
		Icon:        "flask",
		Color:       "#13a4ec",
	}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("create subject: %v", err)
	}
	topic := &model.Topic{
		ID:          "topic-1",
		SubjectID:   "subject-1",
		Title:       "Forces",
		Description: "Forces and motion",
		Difficulty:  model.DifficultyBeginner,
	}
	if err := db.Create(topic).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	lesson := &model.Lesson{
		ID:       "lesson-1",
		TopicID:  "topic-1",
		Title:    "Gravity",
		Content:  "Objects fall.",
		XPReward: 50,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("create lesson: %v", err)
	}
}

func TestUpdateProgressUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)
	seedTestTopic(t, db)

	progress, err := svc.UpdateProgress("u1", "topic-1", 40)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if progress.CompletionPercentage != 40 {
		t.Errorf("CompletionPercentage = %d, want 40", progress.CompletionPercentage)
	}
	if progress.SubjectID != "subject-1" {
		t.Errorf("SubjectID = %q, want resolved from the topic", progress.SubjectID)
	}

	progress, err = svc.UpdateProgress("u1", "topic-1", 70)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if progress.CompletionPercentage != 70 {
		t.Errorf("CompletionPercentage = %d, want 70", progress.CompletionPercentage)
	}

	all, err := svc.Progress("u1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("progress rows = %d, want a single upserted row", len(all))
	}
}

func TestUpdateProgressNeverRegresses(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)
	seedTestTopic(t, db)

	if _, err := svc.UpdateProgress("u1", "topic-1", 80); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	progress, err := svc.UpdateProgress("u1", "topic-1", 30)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if progress.CompletionPercentage != 80 {
		t.Errorf("CompletionPercentage = %d, want to stay at 80", progress.CompletionPercentage)
	}
}

func TestUpdateProgressClamps(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)
	seedTestTopic(t, db)

	progress, err := svc.UpdateProgress("u1", "topic-1", 140)
	if err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}
	if progress.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %d, want clamped to 100", progress.CompletionPercentage)
	}
}

func TestAddStudyTime(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)
	seedTestTopic(t, db)

	if err := svc.AddStudyTime("u1", "topic-1", 15); err != nil {
		t.Fatalf("AddStudyTime: %v", err)
	}
	if err := svc.AddStudyTime("u1", "topic-1", 10); err != nil {
		t.Fatalf("AddStudyTime: %v", err)
	}

	all, err := svc.Progress("u1")
	if err != nil {
		t.Fatalf("Progress: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("progress rows = %d, want 1", len(all))
	}
	if all[0].TimeSpentMinutes != 25 {
		t.Errorf("TimeSpentMinutes = %d, want 25", all[0].TimeSpentMinutes)
	}
}

func TestCompleteLesson(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)
	seedTestTopic(t, db)

	if err := svc.CompleteLesson("u1", "lesson-1"); err != nil {
		t.Fatalf("CompleteLesson: %v", err)
	}

	user, _ := repository.NewUserRepository(db).FindByID("u1")
	if user.XP != 50 {
		t.Errorf("XP = %d, want the lesson reward", user.XP)
	}

	rank, err := svc.Gamification.GetUserRank("u1")
	if err != nil {
		t.Fatalf("GetUserRank: %v", err)
	}
	if rank != 1 {
		t.Errorf("rank = %d, want the leaderboard rebuilt", rank)
	}
}

func TestCompleteLessonUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestLearning(t, db)
	createTestUser(t, db, "u1", 0)

	err := svc.CompleteLesson("u1", "missing")
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}
