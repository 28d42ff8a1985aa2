package repository

import (
	"errors"

	"stemlearn/internal/model"

	"gorm.io/gorm"
)

// ContentRepository reads the seeded reference catalog: subjects, topics and
// lessons. All content is immutable after seeding, so there are no writes.
type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) AllSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Order("display_order").Find(&subjects).Error
	return subjects, err
}

func (r *ContentRepository) SubjectByID(id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Where("id = ?", id).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *ContentRepository) TopicsBySubject(subjectID string) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("subject_id = ?", subjectID).Order("display_order").Find(&topics).Error
	return topics, err
}

func (r *ContentRepository) TopicByID(id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("id = ?", id).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *ContentRepository) LessonsByTopic(topicID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("topic_id = ?", topicID).Order("display_order").Find(&lessons).Error
	return lessons, err
}

func (r *ContentRepository) LessonByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Where("id = ?", id).First(&lesson).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
