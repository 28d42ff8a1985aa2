package util

import "errors"

var (
	ErrNotInitialized  = errors.New("store not initialized")
	ErrEmailRegistered = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrInvalidAge      = errors.New("age must be between 10 and 20")
	ErrEmptyPatch      = errors.New("update contains no fields")
	ErrUserNotFound    = errors.New("user not found")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrNoAnswers       = errors.New("quiz submission contains no answers")
)
