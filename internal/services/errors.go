package services

import "errors"

// Failure taxonomy for the resource rules. Handlers map these onto HTTP
// statuses; anything else that escapes a service is an internal error and
// its cause is only logged server-side.
var (
	ErrUserExists      = errors.New("user with this email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrAlbumNotFound  = errors.New("album not found")
	ErrDuplicateAlbum = errors.New("album with this title already exists")
	ErrAlbumNotEmpty  = errors.New("album still contains photos")

	ErrPhotoNotFound = errors.New("photo not found")
	ErrNoFile        = errors.New("no file uploaded or invalid file type")
	ErrFileTooLarge  = errors.New("file too large")
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidDate   = errors.New("invalid date format")
	ErrInvalidColor  = errors.New("invalid color format")
)
