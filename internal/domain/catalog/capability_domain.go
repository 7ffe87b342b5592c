package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityDomain is one imported domain row. Rows are append-only: an
// import never updates a row in place, it deactivates the predecessor and
// inserts a successor. The partial unique index uq_capability_domain_active
// on (capability_id, domain_name) WHERE is_active enforces the single-active
// invariant at the database level.
type CapabilityDomain struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CapabilityID uuid.UUID `gorm:"type:uuid;not null;index:idx_domain_capability" json:"capability_id"`

	DomainName  string `gorm:"column:domain_name;not null" json:"domain_name"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	Importance  string `gorm:"column:importance;not null;default:medium" json:"importance"`

	ContentHash string    `gorm:"column:content_hash;not null;index:idx_domain_hash" json:"content_hash"`
	Version     string    `gorm:"column:version;not null" json:"version"`
	ImportBatch string    `gorm:"column:import_batch;not null;index:idx_domain_batch" json:"import_batch"`
	ImportDate  time.Time `gorm:"column:import_date;not null" json:"import_date"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CapabilityDomain) TableName() string { return "capability_domain" }
