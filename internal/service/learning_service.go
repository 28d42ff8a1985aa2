package service

import (
	"time"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
	"stemlearn/pkg/logger"

	"go.uber.org/zap"
)

// LearningService exposes the catalog reads and per-topic progress writes.
type LearningService struct {
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
	Gamification *GamificationService
}

func NewLearningService(contentRepo *repository.ContentRepository, progressRepo *repository.ProgressRepository, gamification *GamificationService) *LearningService {
	return &LearningService{
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
		Gamification: gamification,
	}
}

func (s *LearningService) Subjects() ([]model.Subject, error) {
	return s.ContentRepo.AllSubjects()
}

func (s *LearningService) Subject(id string) (*model.Subject, error) {
	return s.ContentRepo.SubjectByID(id)
}

func (s *LearningService) Topics(subjectID string) ([]model.Topic, error) {
	return s.ContentRepo.TopicsBySubject(subjectID)
}

func (s *LearningService) Topic(id string) (*model.Topic, error) {
	return s.ContentRepo.TopicByID(id)
}

func (s *LearningService) Lessons(topicID string) ([]model.Lesson, error) {
	return s.ContentRepo.LessonsByTopic(topicID)
}

func (s *LearningService) Lesson(id string) (*model.Lesson, error) {
	return s.ContentRepo.LessonByID(id)
}

// UpdateProgress upserts the (user, topic) completion row. The percentage
// is clamped to 0..100; completion never goes backwards.
func (s *LearningService) UpdateProgress(userID, topicID string, completionPercentage int) (*model.UserProgress, error) {
	if completionPercentage < 0 {
		completionPercentage = 0
	}
	if completionPercentage > 100 {
		completionPercentage = 100
	}

	now := time.Now()
	existing, err := s.ProgressRepo.FindByUserAndTopic(userID, topicID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		topic, err := s.ContentRepo.TopicByID(topicID)
		if err != nil {
			return nil, err
		}
		subjectID := ""
		if topic != nil {
			subjectID = topic.SubjectID
		}
		progress := &model.UserProgress{
			ID:                   util.NewID("progress"),
			UserID:               userID,
			SubjectID:            subjectID,
			TopicID:              topicID,
			CompletionPercentage: completionPercentage,
			LastAccessedAt:       now,
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	if completionPercentage < existing.CompletionPercentage {
		completionPercentage = existing.CompletionPercentage
	}
	if err := s.ProgressRepo.UpdateCompletion(existing.ID, completionPercentage, now); err != nil {
		return nil, err
	}
	return s.ProgressRepo.FindByUserAndTopic(userID, topicID)
}

// AddStudyTime accumulates minutes onto an existing progress row. Missing
// rows are created at zero completion first.
func (s *LearningService) AddStudyTime(userID, topicID string, minutes int) error {
	if minutes <= 0 {
		return nil
	}
	existing, err := s.ProgressRepo.FindByUserAndTopic(userID, topicID)
	if err != nil {
		return err
	}
	if existing == nil {
		if existing, err = s.UpdateProgress(userID, topicID, 0); err != nil {
			return err
		}
	}
	return s.ProgressRepo.AddTimeSpent(existing.ID, minutes)
}

func (s *LearningService) Progress(userID string) ([]model.UserProgress, error) {
	return s.ProgressRepo.ByUser(userID)
}

// CompleteLesson awards the lesson's XP and refreshes the leaderboard.
func (s *LearningService) CompleteLesson(userID, lessonID string) error {
	lesson, err := s.ContentRepo.LessonByID(lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return util.ErrLessonNotFound
	}

	if err := s.Gamification.AddXP(userID, lesson.XPReward); err != nil {
		return err
	}
	logger.Log.Info("lesson completed",
		zap.String("userId", userID),
		zap.String("lessonId", lessonID),
		zap.Int("xpAwarded", lesson.XPReward))

	return s.Gamification.RebuildLeaderboard()
}
