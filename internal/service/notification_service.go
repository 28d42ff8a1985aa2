package service

import (
	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
)

type NotificationService struct {
	NotificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{NotificationRepo: notificationRepo}
}

func (s *NotificationService) Notify(userID, title, message string, nType model.NotificationType) (*model.Notification, error) {
	notification := &model.Notification{
		ID:      util.NewID("notification"),
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    nType,
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) Notifications(userID string) ([]model.Notification, error) {
	return s.NotificationRepo.ByUser(userID)
}

func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	return s.NotificationRepo.UnreadCount(userID)
}

func (s *NotificationService) MarkRead(id string) error {
	return s.NotificationRepo.MarkRead(id)
}

func (s *NotificationService) MarkAllRead(userID string) error {
	return s.NotificationRepo.MarkAllRead(userID)
}

func (s *NotificationService) Delete(id string) error {
	return s.NotificationRepo.Delete(id)
}

func (s *NotificationService) Clear(userID string) error {
	return s.NotificationRepo.ClearByUser(userID)
}
