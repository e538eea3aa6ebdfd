package qc

import (
	"strings"
	"time"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/ports"
)

// Service carries the QC use cases: entity resolution, outcome
// versioning, annotations and their projections. All state lives in the
// application database; the service itself is stateless.
type Service struct {
	entities    ports.EntityRepository
	outcomes    ports.OutcomeRepository
	annotations ports.AnnotationRepository
	uow         ports.UnitOfWork
	now         func() time.Time
}

func NewService(
	entities ports.EntityRepository,
	outcomes ports.OutcomeRepository,
	annotations ports.AnnotationRepository,
	uow ports.UnitOfWork,
) *Service {
	return &Service{
		entities:    entities,
		outcomes:    outcomes,
		annotations: annotations,
		uow:         uow,
		now:         time.Now,
	}
}

// OutcomeFields is the submitted QC decision for one entity.
type OutcomeFields struct {
	UserName        string
	CreatedBy       string
	Description     string
	LongDescription string
}

func (f OutcomeFields) validate() error {
	if strings.TrimSpace(f.UserName) == "" {
		return &domainqc.ValidationError{Field: "user_name", Reason: "must not be empty"}
	}
	if strings.TrimSpace(f.CreatedBy) == "" {
		return &domainqc.ValidationError{Field: "created_by", Reason: "must not be empty"}
	}
	if strings.TrimSpace(f.Description) == "" {
		return &domainqc.ValidationError{Field: "description", Reason: "must not be empty"}
	}
	return nil
}

// AnnotationFields is a free-text note from a named operator.
type AnnotationFields struct {
	Annotation string
	UserName   string
}

func (f AnnotationFields) validate() error {
	if strings.TrimSpace(f.Annotation) == "" {
		return &domainqc.ValidationError{Field: "annotation", Reason: "must not be empty"}
	}
	if strings.TrimSpace(f.UserName) == "" {
		return &domainqc.ValidationError{Field: "user_name", Reason: "must not be empty"}
	}
	return nil
}

type SubmitOutcomeInput struct {
	Key        domainqc.SearchKey
	Outcome    OutcomeFields
	Annotation *AnnotationFields
}
