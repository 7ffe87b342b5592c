package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/importer"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

const opCapability = "services.capability"

type CreateCapabilityInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// CapabilityDetail is a capability row plus its rendered version string.
type CapabilityDetail struct {
	*types.Capability
	Version string `json:"version"`
}

// DomainNode is one active domain with its active attributes, the tree shape
// the platform UI reads.
type DomainNode struct {
	Domain     *types.CapabilityDomain      `json:"domain"`
	Attributes []*types.CapabilityAttribute `json:"attributes"`
}

type CapabilityService interface {
	Create(ctx context.Context, tx *gorm.DB, input CreateCapabilityInput) (*CapabilityDetail, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CapabilityDetail, error)
	List(ctx context.Context, tx *gorm.DB, statuses []string) ([]*CapabilityDetail, error)
	// Delete is the explicit user-delete path. It soft deletes the capability
	// row itself; imported domain/attribute rows keep their lineage.
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DomainTree(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]DomainNode, error)
	ListVendors(ctx context.Context, tx *gorm.DB) ([]*types.Vendor, error)
}

type capabilityService struct {
	db             *gorm.DB
	log            *logger.Logger
	capabilityRepo repos.CapabilityRepo
	domainRepo     repos.CapabilityDomainRepo
	attributeRepo  repos.CapabilityAttributeRepo
	vendorRepo     repos.VendorRepo
}

func NewCapabilityService(
	db *gorm.DB,
	baseLog *logger.Logger,
	capabilityRepo repos.CapabilityRepo,
	domainRepo repos.CapabilityDomainRepo,
	attributeRepo repos.CapabilityAttributeRepo,
	vendorRepo repos.VendorRepo,
) CapabilityService {
	return &capabilityService{
		db:             db,
		log:            baseLog.With("service", "CapabilityService"),
		capabilityRepo: capabilityRepo,
		domainRepo:     domainRepo,
		attributeRepo:  attributeRepo,
		vendorRepo:     vendorRepo,
	}
}

func (s *capabilityService) dbc(ctx context.Context, tx *gorm.DB) dbctx.Context {
	return dbctx.Context{Ctx: ctx, Tx: tx}
}

func (s *capabilityService) Create(ctx context.Context, tx *gorm.DB, input CreateCapabilityInput) (*CapabilityDetail, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, importing.NewError(importing.CodeValidation, opCapability, "name is required", nil)
	}
	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = "active"
	}

	dbc := s.dbc(ctx, tx)
	existing, err := s.capabilityRepo.GetByName(dbc, name)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	if existing != nil {
		return nil, importing.NewError(importing.CodeConflict, opCapability,
			fmt.Sprintf("capability %q already exists", name), nil)
	}

	row := &types.Capability{
		ID:           uuid.New(),
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Status:       status,
		VersionMajor: 1,
	}
	if _, err := s.capabilityRepo.Create(dbc, []*types.Capability{row}); err != nil {
		s.log.Error("Create capability failed", "name", name, "error", err)
		return nil, importer.MapError(opCapability, err)
	}
	s.log.Info("capability created", "capability_id", row.ID, "name", name)
	return detail(row), nil
}

func (s *capabilityService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CapabilityDetail, error) {
	if id == uuid.Nil {
		return nil, importing.NewError(importing.CodeValidation, opCapability, "missing capability id", nil)
	}
	row, err := s.capabilityRepo.GetByID(s.dbc(ctx, tx), id)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	if row == nil {
		return nil, importing.NewError(importing.CodeNotFound, opCapability,
			fmt.Sprintf("capability %s not found", id), nil)
	}
	return detail(row), nil
}

func (s *capabilityService) List(ctx context.Context, tx *gorm.DB, statuses []string) ([]*CapabilityDetail, error) {
	rows, err := s.capabilityRepo.List(s.dbc(ctx, tx), statuses)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	out := make([]*CapabilityDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, detail(row))
	}
	return out, nil
}

func (s *capabilityService) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if id == uuid.Nil {
		return importing.NewError(importing.CodeValidation, opCapability, "missing capability id", nil)
	}
	dbc := s.dbc(ctx, tx)
	row, err := s.capabilityRepo.GetByID(dbc, id)
	if err != nil {
		return importer.MapError(opCapability, err)
	}
	if row == nil {
		return importing.NewError(importing.CodeNotFound, opCapability,
			fmt.Sprintf("capability %s not found", id), nil)
	}
	if err := s.capabilityRepo.SoftDeleteByIDs(dbc, []uuid.UUID{id}); err != nil {
		s.log.Error("Delete capability failed", "capability_id", id, "error", err)
		return importer.MapError(opCapability, err)
	}
	s.log.Info("capability deleted", "capability_id", id, "name", row.Name)
	return nil
}

// DomainTree returns the active domains of a capability with their active
// attributes, joined on the attribute's domain foreign key.
func (s *capabilityService) DomainTree(ctx context.Context, tx *gorm.DB, id uuid.UUID) ([]DomainNode, error) {
	dbc := s.dbc(ctx, tx)
	capRow, err := s.capabilityRepo.GetByID(dbc, id)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	if capRow == nil {
		return nil, importing.NewError(importing.CodeNotFound, opCapability,
			fmt.Sprintf("capability %s not found", id), nil)
	}

	domains, err := s.domainRepo.GetActiveByCapability(dbc, id)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	attrs, err := s.attributeRepo.GetActiveByCapability(dbc, id)
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}

	byDomain := make(map[uuid.UUID][]*types.CapabilityAttribute, len(domains))
	for _, a := range attrs {
		byDomain[a.DomainID] = append(byDomain[a.DomainID], a)
	}
	out := make([]DomainNode, 0, len(domains))
	for _, d := range domains {
		node := DomainNode{Domain: d, Attributes: byDomain[d.ID]}
		if node.Attributes == nil {
			node.Attributes = []*types.CapabilityAttribute{}
		}
		out = append(out, node)
	}
	return out, nil
}

func (s *capabilityService) ListVendors(ctx context.Context, tx *gorm.DB) ([]*types.Vendor, error) {
	rows, err := s.vendorRepo.List(s.dbc(ctx, tx))
	if err != nil {
		return nil, importer.MapError(opCapability, err)
	}
	return rows, nil
}

func detail(row *types.Capability) *CapabilityDetail {
	return &CapabilityDetail{
		Capability: row,
		Version:    importer.VersionOf(row).String(),
	}
}
