package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vendor is registered the first time a market-research section references
// its name; re-references are idempotent. Name matching is exact and
// case-sensitive.
type Vendor struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null;uniqueIndex:uq_vendor_name" json:"name"`
	DisplayName string         `gorm:"column:display_name;not null" json:"display_name"`
	Description string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Source      datatypes.JSON `gorm:"column:source;type:jsonb" json:"source,omitempty"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Vendor) TableName() string { return "vendor" }
