package model

import "time"

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionFillBlank      QuestionType = "fill_blank"
)

type Quiz struct {
	ID             string          `gorm:"primaryKey;size:64" json:"id"`
	TopicID        string          `gorm:"size:64;index;not null" json:"topicId"`
	Title          string          `gorm:"size:100;not null" json:"title"`
	Description    string          `gorm:"size:255;not null" json:"description"`
	Difficulty     DifficultyLevel `gorm:"size:20;not null" json:"difficulty"`
	TotalQuestions int             `gorm:"default:0" json:"totalQuestions"`
	PassingScore   int             `gorm:"default:70" json:"passingScore"`
	XPReward       int             `gorm:"default:100" json:"xpReward"`
	TimeLimit      int             `json:"timeLimit,omitempty"` // seconds, 0 means unlimited
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuestionOption struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type Question struct {
	ID              string           `gorm:"primaryKey;size:64" json:"id"`
	QuizID          string           `gorm:"size:64;index;not null" json:"quizId"`
	QuestionText    string           `gorm:"not null" json:"questionText"`
	QuestionType    QuestionType     `gorm:"size:20;not null" json:"questionType"`
	Options         []QuestionOption `gorm:"serializer:json;not null" json:"options"`
	CorrectAnswerID string           `gorm:"size:64;not null" json:"correctAnswerId"`
	Explanation     string           `gorm:"size:512" json:"explanation,omitempty"`
	Difficulty      DifficultyLevel  `gorm:"size:20;not null" json:"difficulty"`
	DisplayOrder    int              `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

type QuizAnswer struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId"`
	IsCorrect        bool   `json:"isCorrect"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// QuizAttempt records one completed quiz session. Created once, never mutated.
type QuizAttempt struct {
	ID               string       `gorm:"primaryKey;size:64" json:"id"`
	UserID           string       `gorm:"size:64;index;not null" json:"userId"`
	QuizID           string       `gorm:"size:64;index;not null" json:"quizId"`
	Score            int          `gorm:"not null" json:"score"`
	TotalQuestions   int          `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers   int          `gorm:"not null" json:"correctAnswers"`
	TimeSpentSeconds int          `gorm:"default:0" json:"timeSpentSeconds"`
	CompletedAt      time.Time    `gorm:"not null" json:"completedAt"`
	Answers          []QuizAnswer `gorm:"serializer:json;not null" json:"answers"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
