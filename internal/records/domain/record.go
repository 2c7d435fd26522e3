package domain

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rms-demo/rms-backend/internal/geo"
)

const (
	// TitleMaxLen and DescriptionMaxLen bound field sizes in code points,
	// matching the column constraints.
	TitleMaxLen       = 200
	DescriptionMaxLen = 2000
)

// Record is the persisted entity. ID and CreatedAt are assigned by the
// store at insert time and immutable afterwards; Location is optional
// because not every record is geolocated.
type Record struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ValidateTitle checks the required-title contract at the API boundary.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return ErrTitleTooLong
	}
	return nil
}

// ValidateDescription bounds the optional description.
func ValidateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > DescriptionMaxLen {
		return ErrDescriptionTooLong
	}
	return nil
}
