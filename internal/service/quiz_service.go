package service

import (
	"math"
	"time"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
	"stemlearn/pkg/logger"

	"go.uber.org/zap"
)

// QuizService grades submissions and records attempts. Grading always
// happens server-side against the stored correct answer, whatever the
// submitted IsCorrect flags say.
type QuizService struct {
	QuizRepo     *repository.QuizRepository
	Gamification *GamificationService

	now func() time.Time
}

func NewQuizService(quizRepo *repository.QuizRepository, gamification *GamificationService) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		Gamification: gamification,
		now:          time.Now,
	}
}

func (s *QuizService) Quizzes(topicID string) ([]model.Quiz, error) {
	return s.QuizRepo.QuizzesByTopic(topicID)
}

func (s *QuizService) Quiz(id string) (*model.Quiz, error) {
	return s.QuizRepo.QuizByID(id)
}

func (s *QuizService) Questions(quizID string) ([]model.Question, error) {
	return s.QuizRepo.QuestionsByQuiz(quizID)
}

func (s *QuizService) Attempts(userID string) ([]model.QuizAttempt, error) {
	return s.QuizRepo.AttemptsByUser(userID)
}

func (s *QuizService) Attempt(id string) (*model.QuizAttempt, error) {
	return s.QuizRepo.AttemptByID(id)
}

// SubmitQuiz regrades the answers, stores the attempt, and on a passing
// score awards the quiz XP in one grant. A perfect score adds a flat bonus
// on top. The leaderboard is rebuilt on every submission.
func (s *QuizService) SubmitQuiz(userID, quizID string, answers []model.QuizAnswer, timeSpentSeconds int) (*model.QuizAttempt, error) {
	quiz, err := s.QuizRepo.QuizByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, util.ErrQuizNotFound
	}
	if len(answers) == 0 {
		return nil, util.ErrNoAnswers
	}

	questions, err := s.QuizRepo.QuestionsByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	correctByQuestion := make(map[string]string, len(questions))
	for _, q := range questions {
		correctByQuestion[q.ID] = q.CorrectAnswerID
	}

	correct := 0
	graded := make([]model.QuizAnswer, 0, len(answers))
	for _, a := range answers {
		a.IsCorrect = a.SelectedOptionID != "" && a.SelectedOptionID == correctByQuestion[a.QuestionID]
		if a.IsCorrect {
			correct++
		}
		graded = append(graded, a)
	}

	total := len(questions)
	if total == 0 {
		total = len(graded)
	}
	score := int(math.Round(float64(correct) / float64(total) * 100))

	attempt := &model.QuizAttempt{
		ID:               util.NewID("attempt"),
		UserID:           userID,
		QuizID:           quizID,
		Score:            score,
		TotalQuestions:   total,
		CorrectAnswers:   correct,
		TimeSpentSeconds: timeSpentSeconds,
		CompletedAt:      s.now(),
		Answers:          graded,
	}
	if err := s.QuizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}

	if score >= quiz.PassingScore {
		award := quiz.XPReward
		if score == 100 {
			award += util.PerfectScoreBonusXP
		}
		if err := s.Gamification.AddXP(userID, award); err != nil {
			return nil, err
		}
		logger.Log.Info("quiz passed",
			zap.String("userId", userID),
			zap.String("quizId", quizID),
			zap.Int("score", score),
			zap.Int("xpAwarded", award))
	}

	if err := s.Gamification.RebuildLeaderboard(); err != nil {
		return nil, err
	}
	return attempt, nil
}
