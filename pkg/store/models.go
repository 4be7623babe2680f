package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM model used for persistence.
type ArtifactModel struct {
	ID          string `gorm:"primaryKey"`
	ImageURL    string `gorm:"type:text;not null"`
	StorageKey  string
	Size        string         `gorm:"not null"`
	Shape       string         `gorm:"not null"`
	Colors      datatypes.JSON `gorm:"type:jsonb;not null"`
	Description string         `gorm:"type:text;not null"`
	CreatedAt   time.Time      `gorm:"not null;index"`
}
