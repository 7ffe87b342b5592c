package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Capability is the top-level versioned unit of analysis (e.g. "Billing").
// The four counters form the hierarchical semantic version; they start at
// 1.0.0.0 and are only advanced through importer.Version bumps.
type Capability struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Status      string         `gorm:"column:status;not null;default:active" json:"status"`
	Metadata    datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	VersionMajor int `gorm:"column:version_major;not null;default:1" json:"version_major"`
	VersionMinor int `gorm:"column:version_minor;not null;default:0" json:"version_minor"`
	VersionPatch int `gorm:"column:version_patch;not null;default:0" json:"version_patch"`
	VersionBuild int `gorm:"column:version_build;not null;default:0" json:"version_build"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Capability) TableName() string { return "capability" }
