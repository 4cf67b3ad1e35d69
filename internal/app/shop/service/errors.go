package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound    = errors.New("product not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrMemberNotFound     = errors.New("circle member not found")
	ErrDuplicateMember    = errors.New("user is already in the circle")
	ErrInvalidReaction    = errors.New("reaction must be like or dislike")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
