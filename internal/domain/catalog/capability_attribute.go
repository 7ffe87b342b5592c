package catalog

import (
	"time"

	"github.com/google/uuid"
)

// CapabilityAttribute is one imported attribute row. DomainID points at the
// currently-active CapabilityDomain row and is re-pointed when that row is
// superseded; DomainName is the immutable snapshot that participates in the
// content hash and in dedup identity. Append-only like CapabilityDomain,
// guarded by uq_capability_attribute_active on
// (capability_id, domain_name, attribute_name) WHERE is_active.
type CapabilityAttribute struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CapabilityID uuid.UUID `gorm:"type:uuid;not null;index:idx_attribute_capability" json:"capability_id"`
	DomainID     uuid.UUID `gorm:"type:uuid;not null;index:idx_attribute_domain" json:"domain_id"`

	DomainName     string `gorm:"column:domain_name;not null" json:"domain_name"`
	AttributeName  string `gorm:"column:attribute_name;not null" json:"attribute_name"`
	Definition     string `gorm:"column:definition;type:text" json:"definition,omitempty"`
	TMForumMapping string `gorm:"column:tm_forum_mapping" json:"tm_forum_mapping,omitempty"`
	Importance     string `gorm:"column:importance;not null;default:medium" json:"importance"`

	ContentHash string    `gorm:"column:content_hash;not null;index:idx_attribute_hash" json:"content_hash"`
	Version     string    `gorm:"column:version;not null" json:"version"`
	ImportBatch string    `gorm:"column:import_batch;not null;index:idx_attribute_batch" json:"import_batch"`
	ImportDate  time.Time `gorm:"column:import_date;not null" json:"import_date"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (CapabilityAttribute) TableName() string { return "capability_attribute" }
