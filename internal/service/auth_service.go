package service

import (
	"strings"
	"sync"
	"time"

	"stemlearn/internal/model"
	"stemlearn/internal/repository"
	"stemlearn/internal/util"
	"stemlearn/pkg/session"

	"golang.org/x/crypto/bcrypt"
)

const (
	minAge = 10
	maxAge = 20
)

// AuthService covers registration, login and the current-user session. A
// wrong email and a wrong password both read as an absent user, so the
// caller cannot tell which field was wrong.
type AuthService struct {
	UserRepo     *repository.UserRepository
	Gamification *GamificationService
	Session      *session.Provider

	mu           sync.Mutex
	sessionStart time.Time
}

func NewAuthService(userRepo *repository.UserRepository, gamification *GamificationService, provider *session.Provider) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		Gamification: gamification,
		Session:      provider,
	}
}

type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Age            int
	Gender         model.Gender
	EducationLevel model.EducationLevel
	AvatarID       string
	Theme          string
}

// Register creates the account, signs it in and touches today's streak.
// The username is derived from the email local part; a duplicate email
// surfaces as util.ErrEmailRegistered.
func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	if input.Age < minAge || input.Age > maxAge {
		return nil, util.ErrInvalidAge
	}
	if !model.ValidEducationLevel(input.EducationLevel) {
		input.EducationLevel = model.EducationNone
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := email
	if at := strings.Index(email, "@"); at > 0 {
		username = email[:at]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	theme := input.Theme
	if theme == "" {
		theme = "light"
	}

	user := &model.User{
		ID:             util.NewID("user"),
		Name:           input.Name,
		Email:          email,
		Username:       username,
		Password:       string(hash),
		Age:            input.Age,
		Gender:         input.Gender,
		EducationLevel: input.EducationLevel,
		AvatarID:       input.AvatarID,
		XP:             0,
		Level:          1,
		Theme:          theme,
		ThemeColor:     model.ThemeColorForGender(input.Gender),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.Session.Establish(user.ID); err != nil {
		return nil, err
	}
	if err := s.Gamification.UpdateStreak(user.ID); err != nil {
		return nil, err
	}
	s.startSession()

	return s.UserRepo.FindByID(user.ID)
}

// Login authenticates by email and password. Unknown email and wrong
// password both return (nil, nil). Success touches lastActive and today's
// streak.
func (s *AuthService) Login(email, password string) (*model.User, error) {
	user, err := s.UserRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, nil
	}

	now := time.Now()
	if err := s.UserRepo.Update(user.ID, &repository.UserPatch{LastActive: &now}); err != nil {
		return nil, err
	}
	if err := s.Session.Establish(user.ID); err != nil {
		return nil, err
	}
	if err := s.Gamification.UpdateStreak(user.ID); err != nil {
		return nil, err
	}
	s.startSession()

	return s.UserRepo.FindByID(user.ID)
}

// CurrentUser resolves the signed-in user, or (nil, nil) when nobody is.
func (s *AuthService) CurrentUser() (*model.User, error) {
	id, err := s.Session.CurrentUserID()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.UserRepo.FindByID(id)
}

func (s *AuthService) User(id string) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *AuthService) UpdateProfile(userID string, patch *repository.UserPatch) (*model.User, error) {
	if err := s.UserRepo.Update(userID, patch); err != nil {
		return nil, err
	}
	return s.UserRepo.FindByID(userID)
}

// Logout flushes the elapsed session time into today's streak record and
// clears the credential reference.
func (s *AuthService) Logout() error {
	s.mu.Lock()
	start := s.sessionStart
	s.sessionStart = time.Time{}
	s.mu.Unlock()

	id, err := s.Session.CurrentUserID()
	if err != nil {
		return err
	}
	if id != "" && !start.IsZero() {
		seconds := int(time.Since(start).Seconds())
		if err := s.Gamification.UpdateStreakDuration(id, seconds); err != nil {
			return err
		}
	}
	return s.Session.Clear()
}

func (s *AuthService) startSession() {
	s.mu.Lock()
	s.sessionStart = time.Now()
	s.mu.Unlock()
}
