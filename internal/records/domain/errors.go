package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds 200 characters")
	ErrDescriptionTooLong = errors.New("description exceeds 2000 characters")
)
