package qc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Platform and entity type constants for PacBio cells, the only entity
// kind the resolver creates. Libraries and merged libraries arrive via
// other loaders.
const (
	PlatformPacbio = "pacbio"
	PlatformONT    = "ont"

	EntityTypeCell          = "cell"
	EntityTypeLibrary       = "library"
	EntityTypeMergedLibrary = "merged-library"
)

// SearchKey identifies a PacBio well: a Traction LIMS run name plus the
// plate well label (A1-H12).
type SearchKey struct {
	RunName   string
	WellLabel string
}

func (k SearchKey) Validate() error {
	if strings.TrimSpace(k.RunName) == "" {
		return invalid("run_name", "must not be empty")
	}
	if strings.TrimSpace(k.WellLabel) == "" {
		return invalid("well_label", "must not be empty")
	}
	return nil
}

// Description is the human-readable identity string for the entity a key
// resolves to. It doubles as the uniqueness content: two keys with equal
// descriptions are the same entity.
func (k SearchKey) Description() string {
	return k.RunName + ":" + k.WellLabel
}

// DescriptionSHA is the sha256 hex digest of Description. The entity
// table holds a unique index on it, which is what makes get-or-create
// safe under concurrent resolvers.
func (k SearchKey) DescriptionSHA() string {
	return HashDescription(k.Description())
}

func HashDescription(description string) string {
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])
}
