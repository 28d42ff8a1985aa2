package service

import (
	"testing"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
)

func TestNotificationLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(repository.NewNotificationRepository(db))
	createTestUser(t, db, "u1", 0)

	first, err := svc.Notify("u1", "Welcome", "Glad you are here", model.NotificationGeneral)
	if err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if _, err := svc.Notify("u1", "Streak", "Day 2!", model.NotificationStreak); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	unread, err := svc.UnreadCount("u1")
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread != 2 {
		t.Errorf("unread = %d, want 2", unread)
	}

	if err := svc.MarkRead(first.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	unread, _ = svc.UnreadCount("u1")
	if unread != 1 {
		t.Errorf("unread after MarkRead = %d, want 1", unread)
	}

	if err := svc.MarkAllRead("u1"); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	unread, _ = svc.UnreadCount("u1")
	if unread != 0 {
		t.Errorf("unread after MarkAllRead = %d, want 0", unread)
	}

	if err := svc.Clear("u1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	all, err := svc.Notifications("u1")
	if err != nil {
		t.Fatalf("Notifications: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("notifications after Clear = %d, want 0", len(all))
	}
}
