package repository

import (
	"errors"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) QuizzesByTopic(topicID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("topic_id = ?", topicID).Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) QuizByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("id = ?", id).First(&quiz).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) QuestionsByQuiz(quizID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("display_order").Find(&questions).Error
	return questions, err
}

// CreateAttempt inserts an immutable attempt record. Attempts are never
// updated or deleted.
func (r *QuizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *QuizRepository) AttemptsByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).Order("completed_at DESC").Find(&attempts).Error
	return attempts, err
}

func (r *QuizRepository) AttemptByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("id = ?", id).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}
