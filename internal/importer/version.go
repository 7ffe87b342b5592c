package importer

import (
	"fmt"
	"strconv"
	"strings"

	types "github.com/capframe/capframe-backend/internal/domain"
)

// BumpScope selects which counter a version bump advances. A coarser bump
// zeroes every finer counter.
type BumpScope string

const (
	// BumpCapability advances major; reserved for out-of-band structural
	// edits, never selected by the import engine.
	BumpCapability BumpScope = "capability"
	// BumpDomain advances minor; applied once per import that created or
	// updated at least one domain.
	BumpDomain BumpScope = "domain"
	// BumpAttribute advances patch; applied once per import whose only
	// writes were attribute rows.
	BumpAttribute BumpScope = "attribute"
	// BumpMinor advances build; reserved, unused by the import engine.
	BumpMinor BumpScope = "minor"
)

// Version is the hierarchical four-part capability version. The zero value
// is not a valid starting version; use Initial().
type Version struct {
	Major int
	Minor int
	Patch int
	Build int
}

// Initial returns the version every new capability starts at.
func Initial() Version {
	return Version{Major: 1}
}

// VersionOf reads the counters off a capability row.
func VersionOf(c *types.Capability) Version {
	if c == nil {
		return Initial()
	}
	return Version{
		Major: c.VersionMajor,
		Minor: c.VersionMinor,
		Patch: c.VersionPatch,
		Build: c.VersionBuild,
	}
}

// Bump returns the version advanced at the given scope, zeroing all finer
// counters. An unknown scope returns the version unchanged.
func (v Version) Bump(scope BumpScope) Version {
	switch scope {
	case BumpCapability:
		return Version{Major: v.Major + 1}
	case BumpDomain:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpAttribute:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Build: v.Build + 1}
	default:
		return v
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Build)
}

// ParseVersion parses a dot-joined four-part version string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 4 {
		return Version{}, fmt.Errorf("version %q: want 4 parts, got %d", s, len(parts))
	}
	nums := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Version{}, fmt.Errorf("version %q: part %d: %w", s, i+1, err)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("version %q: part %d is negative", s, i+1)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Build: nums[3]}, nil
}
