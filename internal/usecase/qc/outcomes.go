package qc

import (
	"context"
	"errors"
	"fmt"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/errs"
	"lrqc/internal/ports"
)

// SubmitOutcome records a QC decision for the entity a key resolves to,
// creating the entity when needed. When the entity already has a current
// outcome, its values are archived to history first, in a transaction of
// their own: the archive stays durable even if the overwrite fails. The
// overwrite, dictionary link and optional annotation then commit
// together.
func (s *Service) SubmitOutcome(ctx context.Context, in SubmitOutcomeInput) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := in.Key.Validate(); err != nil {
		return err
	}
	if err := in.Outcome.validate(); err != nil {
		return err
	}
	if in.Annotation != nil {
		if err := in.Annotation.validate(); err != nil {
			return err
		}
	}

	entity, err := s.ResolveOrCreate(ctx, in.Key)
	if err != nil {
		return err
	}

	var prior *ports.QcOutcome
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		rows, err := s.outcomes.CurrentOutcomes(txCtx, entity.IDEntity)
		if err != nil {
			return err
		}
		if len(rows) > 1 {
			return fmt.Errorf("%w: %d current outcomes for entity %d",
				domainqc.ErrInvariantViolation, len(rows), entity.IDEntity)
		}
		if len(rows) == 0 {
			return nil
		}

		current := rows[0]
		prior = &current
		return s.outcomes.AppendHistory(txCtx, ports.QcOutcomeHistory{
			IDEntity:        current.IDEntity,
			IDQcOutcomeDict: current.IDQcOutcomeDict,
			DateCreated:     current.DateCreated,
			DateUpdated:     current.DateUpdated,
			UserName:        current.UserName,
			CreatedBy:       current.CreatedBy,
		})
	})
	if err != nil {
		return errs.Wrap(err, "archive current outcome")
	}

	now := s.now().UTC()
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		dict, err := s.getOrCreateDict(txCtx, in.Outcome.Description, in.Outcome.LongDescription)
		if err != nil {
			return err
		}

		var current ports.QcOutcome
		if prior != nil {
			current = *prior
			current.IDQcOutcomeDict = dict.IDQcOutcomeDict
			current.DateUpdated = now
			current.UserName = in.Outcome.UserName
			current.CreatedBy = in.Outcome.CreatedBy
			if err := s.outcomes.UpdateOutcome(txCtx, current); err != nil {
				return err
			}
		} else {
			current, err = s.outcomes.CreateOutcome(txCtx, ports.QcOutcome{
				IDEntity:        entity.IDEntity,
				IDQcOutcomeDict: dict.IDQcOutcomeDict,
				DateCreated:     now,
				DateUpdated:     now,
				UserName:        in.Outcome.UserName,
				CreatedBy:       in.Outcome.CreatedBy,
			})
			if err != nil {
				return err
			}
		}

		if in.Annotation == nil {
			return nil
		}

		ann, err := s.annotations.CreateAnnotation(txCtx, ports.Annotation{
			Annotation:  in.Annotation.Annotation,
			UserName:    in.Annotation.UserName,
			DateCreated: now,
		})
		if err != nil {
			return err
		}
		outcomeID := current.IDQcOutcome
		return s.annotations.LinkEntity(txCtx, entity.IDEntity, ann.IDAnnotation, &outcomeID)
	})
	if err != nil {
		return errs.Wrap(err, "write outcome")
	}
	return nil
}

// getOrCreateDict deduplicates dictionary rows by description text.
func (s *Service) getOrCreateDict(ctx context.Context, description, longDescription string) (ports.QcOutcomeDict, error) {
	dict, err := s.outcomes.GetDictByDescription(ctx, description)
	if err == nil {
		return dict, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return ports.QcOutcomeDict{}, err
	}

	dict, err = s.outcomes.CreateDict(ctx, ports.QcOutcomeDict{
		Description:     description,
		LongDescription: longDescription,
	})
	if errors.Is(err, ports.ErrConflict) {
		// A concurrent submitter created it; adopt that row.
		return s.outcomes.GetDictByDescription(ctx, description)
	}
	return dict, err
}

// GetOutcomes projects the current outcome of each resolvable key.
// Missing entities and entities without a current outcome are omitted,
// never errors.
func (s *Service) GetOutcomes(ctx context.Context, keys []domainqc.SearchKey) ([]OutcomeView, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	views := make([]OutcomeView, 0, len(keys))
	for _, key := range keys {
		if err := key.Validate(); err != nil {
			return nil, err
		}

		view, _, ok, err := s.currentOutcomeView(ctx, key)
		if err != nil {
			return nil, err
		}
		if ok {
			views = append(views, view)
		}
	}
	return views, nil
}

// GetOutcomesWithAnnotations is GetOutcomes plus each entity's linked
// annotations.
func (s *Service) GetOutcomesWithAnnotations(ctx context.Context, keys []domainqc.SearchKey) ([]OutcomeWithAnnotations, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	views := make([]OutcomeWithAnnotations, 0, len(keys))
	for _, key := range keys {
		if err := key.Validate(); err != nil {
			return nil, err
		}

		view, entityID, ok, err := s.currentOutcomeView(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		anns, err := s.annotations.ListByEntity(ctx, entityID)
		if err != nil {
			return nil, err
		}

		views = append(views, OutcomeWithAnnotations{
			Outcome:     view,
			Annotations: annotationViews(key, anns),
		})
	}
	return views, nil
}

func (s *Service) currentOutcomeView(ctx context.Context, key domainqc.SearchKey) (OutcomeView, uint64, bool, error) {
	ent, found, err := s.resolveExisting(ctx, key)
	if err != nil {
		return OutcomeView{}, 0, false, err
	}
	if !found {
		return OutcomeView{}, 0, false, nil
	}

	rows, err := s.outcomes.CurrentOutcomes(ctx, ent.IDEntity)
	if err != nil {
		return OutcomeView{}, 0, false, err
	}
	if len(rows) > 1 {
		return OutcomeView{}, 0, false, fmt.Errorf("%w: %d current outcomes for entity %d",
			domainqc.ErrInvariantViolation, len(rows), ent.IDEntity)
	}
	if len(rows) == 0 {
		return OutcomeView{}, 0, false, nil
	}

	outcome := rows[0]
	dict, err := s.outcomes.GetDict(ctx, outcome.IDQcOutcomeDict)
	if err != nil {
		return OutcomeView{}, 0, false, err
	}

	return newOutcomeView(key, outcome, dict), ent.IDEntity, true, nil
}
