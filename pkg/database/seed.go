package database

import (
	"stemlearn/internal/model"
	"stemlearn/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed populates the static reference catalog exactly once, detected by the
// subject count. Inserts ignore conflicts so a seed interrupted mid-way can
// be re-attempted without duplicate-key failures. User data is never touched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Subject{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Log.Debug("reference content already seeded")
		return nil
	}

	logger.Log.Info("seeding reference content")
	ignore := clause.OnConflict{DoNothing: true}

	if err := db.Clauses(ignore).Create(seedSubjects()).Error; err != nil {
		return err
	}
	if err := db.Clauses(ignore).Create(seedTopics()).Error; err != nil {
		return err
	}
	if err := db.Clauses(ignore).Create(seedLessons()).Error; err != nil {
		return err
	}
	if err := db.Clauses(ignore).Create(seedQuizzes()).Error; err != nil {
		return err
	}
	if err := db.Clauses(ignore).Create(seedQuestions()).Error; err != nil {
		return err
	}
	return db.Clauses(ignore).Create(seedBadges()).Error
}

func seedSubjects() []model.Subject {
	return []model.Subject{
		{ID: "sci", Name: "Science", Category: model.CategoryScience, Description: "Explore biology, chemistry, physics, and earth science", Icon: "science", Color: "#3b82f6", TotalTopics: 5, DisplayOrder: 1},
		{ID: "tech", Name: "Technology", Category: model.CategoryTechnology, Description: "Learn programming, web development, and digital literacy", Icon: "computer", Color: "#22c55e", TotalTopics: 5, DisplayOrder: 2},
		{ID: "eng", Name: "Engineering", Category: model.CategoryEngineering, Description: "Discover mechanical, electrical, and civil engineering", Icon: "build", Color: "#a855f7", TotalTopics: 5, DisplayOrder: 3},
		{ID: "math", Name: "Mathematics", Category: model.CategoryMathematics, Description: "Master algebra, geometry, calculus, and statistics", Icon: "calculate", Color: "#ef4444", TotalTopics: 5, DisplayOrder: 4},
	}
}

func seedTopics() []model.Topic {
	return []model.Topic{
		{ID: "sci-topic-001", SubjectID: "sci", Title: "The Cell", Description: "Cell structure and function", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 30, DisplayOrder: 1},
		{ID: "sci-topic-002", SubjectID: "sci", Title: "Photosynthesis", Description: "How plants make food", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 25, DisplayOrder: 2, PrerequisiteTopicIDs: []string{"sci-topic-001"}},
		{ID: "tech-topic-001", SubjectID: "tech", Title: "Intro to Programming", Description: "Learn coding basics", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 40, DisplayOrder: 1},
		{ID: "tech-topic-002", SubjectID: "tech", Title: "HTML & CSS", Description: "Build web pages", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 50, DisplayOrder: 2},
		{ID: "eng-topic-001", SubjectID: "eng", Title: "Simple Machines", Description: "Levers, pulleys, planes", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 35, DisplayOrder: 1},
		{ID: "math-topic-001", SubjectID: "math", Title: "Fractions", Description: "Parts of numbers", Difficulty: model.DifficultyBeginner, EstimatedMinutes: 30, DisplayOrder: 1},
	}
}

func seedLessons() []model.Lesson {
	return []model.Lesson{
		{ID: "sci-topic-001-lesson-001", TopicID: "sci-topic-001", Title: "Cell Structure", Content: "Cells are the basic building blocks of all living things...", XPReward: 50, DisplayOrder: 1},
		{ID: "sci-topic-002-lesson-001", TopicID: "sci-topic-002", Title: "Light and Chlorophyll", Content: "Plants capture light energy using chlorophyll...", XPReward: 50, DisplayOrder: 1},
		{ID: "tech-topic-001-lesson-001", TopicID: "tech-topic-001", Title: "What is Programming?", Content: "Programming is creating instructions for computers...", XPReward: 50, DisplayOrder: 1},
		{ID: "eng-topic-001-lesson-001", TopicID: "eng-topic-001", Title: "The Lever", Content: "A lever amplifies force around a fixed pivot point...", XPReward: 50, DisplayOrder: 1},
		{ID: "math-topic-001-lesson-001", TopicID: "math-topic-001", Title: "What is a Fraction?", Content: "A fraction represents a part of a whole...", XPReward: 50, DisplayOrder: 1},
	}
}

func seedQuizzes() []model.Quiz {
	return []model.Quiz{
		{ID: "sci-topic-001-quiz-001", TopicID: "sci-topic-001", Title: "Cell Structure Quiz", Description: "Test your knowledge", Difficulty: model.DifficultyBeginner, TotalQuestions: 3, PassingScore: 70, XPReward: 75},
		{ID: "math-topic-001-quiz-001", TopicID: "math-topic-001", Title: "Fractions Quiz", Description: "Parts of numbers in practice", Difficulty: model.DifficultyBeginner, TotalQuestions: 2, PassingScore: 70, XPReward: 75, TimeLimit: 300},
	}
}

func seedQuestions() []model.Question {
	return []model.Question{
		{
			ID: "sci-q-001", QuizID: "sci-topic-001-quiz-001",
			QuestionText: "What is the basic unit of life?",
			QuestionType: model.QuestionMultipleChoice,
			Options: []model.QuestionOption{
				{ID: "a", Text: "Cell", IsCorrect: true},
				{ID: "b", Text: "Atom", IsCorrect: false},
				{ID: "c", Text: "Molecule", IsCorrect: false},
			},
			CorrectAnswerID: "a", Difficulty: model.DifficultyBeginner, DisplayOrder: 1,
		},
		{
			ID: "sci-q-002", QuizID: "sci-topic-001-quiz-001",
			QuestionText: "Which organelle produces energy for the cell?",
			QuestionType: model.QuestionMultipleChoice,
			Options: []model.QuestionOption{
				{ID: "a", Text: "Nucleus", IsCorrect: false},
				{ID: "b", Text: "Mitochondria", IsCorrect: true},
				{ID: "c", Text: "Ribosome", IsCorrect: false},
			},
			CorrectAnswerID: "b", Explanation: "Mitochondria convert nutrients into usable energy.", Difficulty: model.DifficultyBeginner, DisplayOrder: 2,
		},
		{
			ID: "sci-q-003", QuizID: "sci-topic-001-quiz-001",
			QuestionText: "All living things are made of cells.",
			QuestionType: model.QuestionTrueFalse,
			Options: []model.QuestionOption{
				{ID: "a", Text: "True", IsCorrect: true},
				{ID: "b", Text: "False", IsCorrect: false},
			},
			CorrectAnswerID: "a", Difficulty: model.DifficultyBeginner, DisplayOrder: 3,
		},
		{
			ID: "math-q-001", QuizID: "math-topic-001-quiz-001",
			QuestionText: "What is 1/2 + 1/4?",
			QuestionType: model.QuestionMultipleChoice,
			Options: []model.QuestionOption{
				{ID: "a", Text: "2/6", IsCorrect: false},
				{ID: "b", Text: "3/4", IsCorrect: true},
				{ID: "c", Text: "1/6", IsCorrect: false},
			},
			CorrectAnswerID: "b", Difficulty: model.DifficultyBeginner, DisplayOrder: 1,
		},
		{
			ID: "math-q-002", QuizID: "math-topic-001-quiz-001",
			QuestionText: "Which fraction is largest?",
			QuestionType: model.QuestionMultipleChoice,
			Options: []model.QuestionOption{
				{ID: "a", Text: "1/3", IsCorrect: false},
				{ID: "b", Text: "1/2", IsCorrect: true},
				{ID: "c", Text: "1/4", IsCorrect: false},
			},
			CorrectAnswerID: "b", Difficulty: model.DifficultyBeginner, DisplayOrder: 2,
		},
	}
}

func seedBadges() []model.Badge {
	return []model.Badge{
		{ID: "badge-first-steps", Name: "First Steps", Description: "Complete first lesson", Icon: "emoji-events", Category: model.CategoryGeneral, Requirement: "Complete 1 lesson", XPRequired: 0},
		{ID: "badge-rising-scholar", Name: "Rising Scholar", Description: "Earn 250 XP", Icon: "school", Category: model.CategoryGeneral, Requirement: "Earn 250 XP", XPRequired: 250},
		{ID: "badge-science-star", Name: "Science Star", Description: "Earn 500 XP in Science", Icon: "science", Category: model.CategoryScience, Requirement: "Earn 500 XP", XPRequired: 500},
		{ID: "badge-xp-master", Name: "XP Master", Description: "Earn 1000 XP", Icon: "military-tech", Category: model.CategoryGeneral, Requirement: "Earn 1000 XP", XPRequired: 1000},
	}
}
