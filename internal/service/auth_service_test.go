package service

import (
	"errors"
	"testing"

	"stemlearn/internal/config"
	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
	"stemlearn/pkg/session"

	"gorm.io/gorm"
)

func newTestAuth(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	provider := session.NewProvider(session.NewMemoryKeystore(), &config.SessionConfig{})
	return NewAuthService(repository.NewUserRepository(db), newTestGamification(t, db), provider)
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Name:           "Ada",
		Email:          email,
		Password:       "secret123",
		Age:            14,
		Gender:         model.GenderFemale,
		EducationLevel: model.EducationNone,
		AvatarID:       "avatar-1",
	}
}

func TestRegister(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	user, err := auth.Register(registerInput("Ada.L@Example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if user.Email != "ada.l@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}
	if user.Username != "ada.l" {
		t.Errorf("Username = %q, want local part of email", user.Username)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if user.ThemeColor != model.ThemeColorForGender(model.GenderFemale) {
		t.Errorf("ThemeColor = %q", user.ThemeColor)
	}
	if user.XP != util.StreakDailyXP {
		t.Errorf("XP = %d, want the first-day stipend", user.XP)
	}
	if user.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", user.CurrentStreak)
	}

	current, err := auth.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.ID != user.ID {
		t.Error("registration did not establish the session")
	}
}

func TestRegisterAgeBounds(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	for _, age := range []int{9, 21} {
		input := registerInput("kid@example.com")
		input.Age = age
		if _, err := auth.Register(input); !errors.Is(err, util.ErrInvalidAge) {
			t.Errorf("age %d: err = %v, want ErrInvalidAge", age, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	if _, err := auth.Register(registerInput("ada@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := auth.Register(registerInput("ADA@example.com"))
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Errorf("err = %v, want ErrEmailRegistered", err)
	}
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	registered, err := auth.Register(registerInput("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	user, err := auth.Login("ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || user.ID != registered.ID {
		t.Fatal("expected the registered user back")
	}

	current, err := auth.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current == nil || current.ID != registered.ID {
		t.Error("login did not establish the session")
	}
}

func TestLoginBadCredentials(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	if _, err := auth.Register(registerInput("ada@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown email read identically.
	user, err := auth.Login("ada@example.com", "wrong")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user != nil {
		t.Error("wrong password must not authenticate")
	}

	user, err = auth.Login("nobody@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user != nil {
		t.Error("unknown email must not authenticate")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	if _, err := auth.Register(registerInput("ada@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	current, err := auth.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current != nil {
		t.Error("session survived logout")
	}
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	auth := newTestAuth(t, db)

	user, err := auth.Register(registerInput("ada@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	name := "Ada Lovelace"
	theme := "dark"
	updated, err := auth.UpdateProfile(user.ID, &repository.UserPatch{Name: &name, Theme: &theme})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != name || updated.Theme != theme {
		t.Errorf("patch not applied: name=%q theme=%q", updated.Name, updated.Theme)
	}
	if updated.Email != user.Email {
		t.Error("untouched fields must survive a patch")
	}

	_, err = auth.UpdateProfile(user.ID, &repository.UserPatch{})
	if !errors.Is(err, util.ErrEmptyPatch) {
		t.Errorf("err = %v, want ErrEmptyPatch", err)
	}
}
