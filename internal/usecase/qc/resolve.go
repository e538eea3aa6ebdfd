package qc

import (
	"context"
	"errors"
	"fmt"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/errs"
	"lrqc/internal/ports"
)

// ResolveOrCreate maps a search key to its canonical entity, creating
// the entity/pacbio_ent pair on first sight. Idempotent: repeated calls
// with the same key return the same entity. Under a concurrent race on
// an unseen key the unique indexes let exactly one creation through; the
// loser re-reads and adopts the winner's row.
func (s *Service) ResolveOrCreate(ctx context.Context, key domainqc.SearchKey) (ports.Entity, error) {
	if ctx == nil {
		return ports.Entity{}, errors.New("context is required")
	}
	if err := key.Validate(); err != nil {
		return ports.Entity{}, err
	}

	ent, found, err := s.resolveExisting(ctx, key)
	if err != nil {
		return ports.Entity{}, err
	}
	if found {
		return ent, nil
	}

	var created ports.Entity
	err = s.uow.WithTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.entities.CreateCellEntity(txCtx, ports.CellEntityCreate{
			RunName:        key.RunName,
			CellLabel:      key.WellLabel,
			Description:    key.Description(),
			DescriptionSHA: key.DescriptionSHA(),
			Type:           domainqc.EntityTypeCell,
			PlatformName:   domainqc.PlatformPacbio,
		})
		return createErr
	})
	if errors.Is(err, ports.ErrConflict) {
		// Lost the get-or-create race; the winner's row must exist now.
		ent, found, err = s.resolveExisting(ctx, key)
		if err != nil {
			return ports.Entity{}, err
		}
		if !found {
			return ports.Entity{}, fmt.Errorf("%w: conflict on %q but no entity resolved",
				domainqc.ErrInvariantViolation, key.Description())
		}
		return ent, nil
	}
	if err != nil {
		return ports.Entity{}, errs.Wrap(err, "create entity")
	}
	return created, nil
}

// resolveExisting is the read-only resolution used by every retrieval
// path. It never creates and treats more than one match as corrupted
// state.
func (s *Service) resolveExisting(ctx context.Context, key domainqc.SearchKey) (ports.Entity, bool, error) {
	ents, err := s.entities.FindEntitiesByKey(ctx, key.RunName, key.WellLabel)
	if err != nil {
		return ports.Entity{}, false, errs.Wrap(err, "resolve entity")
	}

	switch len(ents) {
	case 0:
		return ports.Entity{}, false, nil
	case 1:
		return ents[0], true, nil
	default:
		return ports.Entity{}, false, fmt.Errorf("%w: %d entities match %q",
			domainqc.ErrInvariantViolation, len(ents), key.Description())
	}
}
