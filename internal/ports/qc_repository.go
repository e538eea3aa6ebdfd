package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by single-row lookups with no match.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when an insert loses a unique-index race.
	// Callers are expected to re-read and adopt the winner's row.
	ErrConflict = errors.New("record already exists")
)

// Entity is the canonical QC subject: a cell, library or merged library.
type Entity struct {
	IDEntity       uint64
	Type           string
	Description    string
	DescriptionSHA string
	JSON           *string
	PlatformName   string
}

// PacbioEnt is the PacBio-specific resolution key for an entity.
type PacbioEnt struct {
	IDPacbioEnt  uint64
	RunName      string
	CellLabel    string
	Tag1Sequence *string
	Description  string
}

// CellEntityCreate carries everything needed to materialise a new
// entity/pacbio_ent pair plus their join row in one transaction.
type CellEntityCreate struct {
	RunName        string
	CellLabel      string
	Tag1Sequence   *string
	Description    string
	DescriptionSHA string
	Type           string
	PlatformName   string
}

type QcOutcome struct {
	IDQcOutcome     uint64
	IDEntity        uint64
	IDQcOutcomeDict uint64
	DateCreated     time.Time
	DateUpdated     time.Time
	UserName        string
	CreatedBy       string
}

type QcOutcomeDict struct {
	IDQcOutcomeDict uint64
	Description     string
	LongDescription string
}

// QcOutcomeHistory holds the value set of a superseded outcome.
type QcOutcomeHistory struct {
	IDQcOutcomeHistory uint64
	IDEntity           uint64
	IDQcOutcomeDict    uint64
	DateCreated        time.Time
	DateUpdated        time.Time
	UserName           string
	CreatedBy          string
}

type Annotation struct {
	IDAnnotation uint64
	Annotation   string
	UserName     string
	DateCreated  time.Time
}

type EntityRepository interface {
	// FindEntitiesByKey returns every entity linked to a pacbio_ent row
	// matching (runName, cellLabel). More than one element signals
	// corrupted state; the caller decides how loudly to fail.
	FindEntitiesByKey(ctx context.Context, runName, cellLabel string) ([]Entity, error)

	// CreateCellEntity inserts pacbio_ent, entity and their join row.
	// Returns ErrConflict when either unique index already holds the key.
	CreateCellEntity(ctx context.Context, in CellEntityCreate) (Entity, error)
}

type OutcomeRepository interface {
	// CurrentOutcomes returns all qc_outcome rows for an entity. The
	// schema enforces at most one; extras are surfaced, not hidden.
	CurrentOutcomes(ctx context.Context, entityID uint64) ([]QcOutcome, error)

	AppendHistory(ctx context.Context, h QcOutcomeHistory) error

	GetDict(ctx context.Context, dictID uint64) (QcOutcomeDict, error)
	GetDictByDescription(ctx context.Context, description string) (QcOutcomeDict, error)
	CreateDict(ctx context.Context, d QcOutcomeDict) (QcOutcomeDict, error)

	CreateOutcome(ctx context.Context, o QcOutcome) (QcOutcome, error)
	UpdateOutcome(ctx context.Context, o QcOutcome) error
}

type AnnotationRepository interface {
	CreateAnnotation(ctx context.Context, a Annotation) (Annotation, error)

	// LinkEntity attaches an annotation to an entity; outcomeID, when
	// set, records the outcome event the annotation accompanied.
	LinkEntity(ctx context.Context, entityID, annotationID uint64, outcomeID *uint64) error

	ListByEntity(ctx context.Context, entityID uint64) ([]Annotation, error)
}
