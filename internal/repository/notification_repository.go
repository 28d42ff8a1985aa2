package repository

import (
	"stemlearn/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(notification *model.Notification) error {
	return r.DB.Create(notification).Error
}

func (r *NotificationRepository) ByUser(userID string) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) UnreadCount(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepository) MarkRead(id string) error {
	return r.DB.Model(&model.Notification{}).Where("id = ?", id).Update("read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	return r.DB.Model(&model.Notification{}).Where("user_id = ?", userID).Update("read", true).Error
}

func (r *NotificationRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Notification{}).Error
}

func (r *NotificationRepository) ClearByUser(userID string) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.Notification{}).Error
}
