package domain

import "errors"

var (
	ErrOfferNotFound  = errors.New("offer not found")
	ErrDemandNotFound = errors.New("demand not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInUse         = errors.New("email already in use")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrSessionExpired     = errors.New("session expired or revoked")
	ErrForbidden          = errors.New("forbidden")

	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrImageNotFound    = errors.New("image not found")

	ErrEmptyMessage    = errors.New("message must not be empty")
	ErrChatUnavailable = errors.New("chat model is unavailable")
)
