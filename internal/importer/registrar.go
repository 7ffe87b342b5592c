package importer

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	repos "github.com/capframe/capframe-backend/internal/data/repos/catalog"
	types "github.com/capframe/capframe-backend/internal/domain"
	"github.com/capframe/capframe-backend/internal/domain/importing"
	"github.com/capframe/capframe-backend/internal/platform/dbctx"
	"github.com/capframe/capframe-backend/internal/platform/logger"
)

const opRegisterVendors = "importer.registrar"

// Registrar upserts vendors discovered in market research sections.
// Vendor names are global, not scoped to a capability.
type Registrar struct {
	vendors repos.VendorRepo
	log     *logger.Logger
}

func NewRegistrar(vendors repos.VendorRepo, baseLog *logger.Logger) *Registrar {
	return &Registrar{
		vendors: vendors,
		log:     baseLog.With("component", "Registrar"),
	}
}

// RegisterVendors registers each vendor name on first occurrence, comparing
// case-sensitively, and keeps input order. Names already registered by an
// earlier batch are left untouched. Returns the deduplicated name list and
// how many rows were newly created.
func (g *Registrar) RegisterVendors(dbc dbctx.Context, names []string, sources map[string]map[string]any) ([]string, int, error) {
	seen := make(map[string]struct{}, len(names))
	registered := make([]string, 0, len(names))
	created := 0

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		registered = append(registered, name)

		row := &types.Vendor{
			ID:          uuid.New(),
			Name:        name,
			DisplayName: name,
			Description: "Vendor identified from market research: " + name,
			IsActive:    true,
		}
		if src, ok := sources[name]; ok && len(src) > 0 {
			b, err := json.Marshal(src)
			if err != nil {
				return nil, created, importing.NewError(importing.CodeInternal, opRegisterVendors, "encode vendor source", err)
			}
			row.Source = datatypes.JSON(b)
		}

		_, isNew, err := g.vendors.CreateIfAbsent(dbc, row)
		if err != nil {
			return nil, created, MapError(opRegisterVendors, err)
		}
		if isNew {
			created++
		}
	}

	if created > 0 {
		g.log.Info("registered vendors", "new", created, "total", len(registered))
	}
	return registered, created, nil
}
