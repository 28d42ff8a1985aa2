package model

type SubjectCategory string

const (
	CategoryScience     SubjectCategory = "science"
	CategoryTechnology  SubjectCategory = "technology"
	CategoryEngineering SubjectCategory = "engineering"
	CategoryMathematics SubjectCategory = "mathematics"
	CategoryGeneral     SubjectCategory = "general"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
	DifficultyExpert       DifficultyLevel = "expert"
)

// Subject is a top-level content category. Immutable after seeding.
type Subject struct {
	ID           string          `gorm:"primaryKey;size:64" json:"id"`
	Name         string          `gorm:"size:100;not null" json:"name"`
	Category     SubjectCategory `gorm:"size:20;not null" json:"category"`
	Description  string          `gorm:"size:255;not null" json:"description"`
	Icon         string          `gorm:"size:64;not null" json:"icon"`
	Color        string          `gorm:"size:10;not null" json:"color"`
	TotalTopics  int             `gorm:"default:0" json:"totalTopics"`
	DisplayOrder int             `gorm:"default:0" json:"order"`
}

func (Subject) TableName() string {
	return "subjects"
}

type Topic struct {
	ID                   string          `gorm:"primaryKey;size:64" json:"id"`
	SubjectID            string          `gorm:"size:64;index;not null" json:"subjectId"`
	Title                string          `gorm:"size:100;not null" json:"title"`
	Description          string          `gorm:"size:255;not null" json:"description"`
	Difficulty           DifficultyLevel `gorm:"size:20;not null" json:"difficulty"`
	EstimatedMinutes     int             `gorm:"default:30" json:"estimatedMinutes"`
	DisplayOrder         int             `gorm:"default:0" json:"order"`
	PrerequisiteTopicIDs []string        `gorm:"serializer:json" json:"prerequisiteTopicIds,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}

type MediaType string

const (
	MediaImage     MediaType = "image"
	MediaVideo     MediaType = "video"
	MediaAnimation MediaType = "animation"
)

type Lesson struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	TopicID      string    `gorm:"size:64;index;not null" json:"topicId"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Content      string    `gorm:"not null" json:"content"`
	MediaType    MediaType `gorm:"size:20" json:"mediaType,omitempty"`
	MediaURL     string    `gorm:"size:255" json:"mediaUrl,omitempty"`
	XPReward     int       `gorm:"default:50" json:"xpReward"`
	DisplayOrder int       `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
