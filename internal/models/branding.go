package models

import (
	"time"

	"github.com/google/uuid"
)

// LogoPosition places the logo within the rendered document. Foreground
// positions flow with the text; background positions sit behind it.
type LogoPosition string

const (
	PositionLeft             LogoPosition = "left"
	PositionCenter           LogoPosition = "center"
	PositionRight            LogoPosition = "right"
	PositionBackgroundTop    LogoPosition = "background-top"
	PositionBackgroundCenter LogoPosition = "background-center"
	PositionBackgroundBottom LogoPosition = "background-bottom"
)

// Valid reports whether the position is one of the known values.
func (p LogoPosition) Valid() bool {
	switch p {
	case PositionLeft, PositionCenter, PositionRight,
		PositionBackgroundTop, PositionBackgroundCenter, PositionBackgroundBottom:
		return true
	}
	return false
}

// Background returns true for the background-* positions.
func (p LogoPosition) Background() bool {
	switch p {
	case PositionBackgroundTop, PositionBackgroundCenter, PositionBackgroundBottom:
		return true
	}
	return false
}

// LogoSize selects one of three fixed logo width tiers.
type LogoSize string

const (
	SizeSmall  LogoSize = "small"
	SizeMedium LogoSize = "medium"
	SizeLarge  LogoSize = "large"
)

// Valid reports whether the size is one of the known values.
func (s LogoSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// BrandingProfile holds per-account branding, one row per owner. It is
// mutated only through the settings endpoints and read-only during
// generation.
type BrandingProfile struct {
	OwnerID uuid.UUID `gorm:"type:uuid;primaryKey" json:"owner_id"`

	// LogoRef is the object storage key of the uploaded logo, empty when
	// no logo has been configured.
	LogoRef      string       `gorm:"size:500" json:"logo_ref,omitempty"`
	Position     LogoPosition `gorm:"size:30;not null;default:'center'" json:"position"`
	Size         LogoSize     `gorm:"size:10;not null;default:'medium'" json:"size"`
	PrimaryColor string       `gorm:"size:20" json:"primary_color,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
