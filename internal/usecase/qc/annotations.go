package qc

import (
	"context"
	"errors"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/errs"
	"lrqc/internal/ports"
)

// CreateAnnotation attaches one shared annotation to every entity the
// keys resolve to, creating entities for unseen keys. The annotation row
// and all its join rows commit in a single transaction.
func (s *Service) CreateAnnotation(ctx context.Context, keys []domainqc.SearchKey, fields AnnotationFields) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if len(keys) == 0 {
		return &domainqc.ValidationError{Field: "search_keys", Reason: "must not be empty"}
	}
	if err := fields.validate(); err != nil {
		return err
	}
	for _, key := range keys {
		if err := key.Validate(); err != nil {
			return err
		}
	}

	entityIDs := make([]uint64, 0, len(keys))
	for _, key := range keys {
		ent, err := s.ResolveOrCreate(ctx, key)
		if err != nil {
			return err
		}
		entityIDs = append(entityIDs, ent.IDEntity)
	}

	now := s.now().UTC()
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		ann, err := s.annotations.CreateAnnotation(txCtx, ports.Annotation{
			Annotation:  fields.Annotation,
			UserName:    fields.UserName,
			DateCreated: now,
		})
		if err != nil {
			return err
		}

		for _, id := range entityIDs {
			if err := s.annotations.LinkEntity(txCtx, id, ann.IDAnnotation, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errs.Wrap(err, "create annotation")
	}
	return nil
}

// RetrieveAnnotations flattens the annotations of each resolvable key
// into views tagged with the originating key. Read-only: unseen keys are
// omitted, not created.
func (s *Service) RetrieveAnnotations(ctx context.Context, keys []domainqc.SearchKey) ([]AnnotationView, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	views := make([]AnnotationView, 0, len(keys))
	for _, key := range keys {
		if err := key.Validate(); err != nil {
			return nil, err
		}

		ent, found, err := s.resolveExisting(ctx, key)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}

		anns, err := s.annotations.ListByEntity(ctx, ent.IDEntity)
		if err != nil {
			return nil, err
		}
		views = append(views, annotationViews(key, anns)...)
	}
	return views, nil
}
