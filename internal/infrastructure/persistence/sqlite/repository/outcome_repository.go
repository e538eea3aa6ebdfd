package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lrqc/internal/errs"
	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/ports"
)

type OutcomeRepository struct {
	db *gorm.DB
}

func NewOutcomeRepository(db *gorm.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

func (r *OutcomeRepository) CurrentOutcomes(ctx context.Context, entityID uint64) ([]ports.QcOutcome, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.QcOutcome
	err = db.Where("id_entity = ?", entityID).
		Order("id_qc_outcome").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(err, "load current outcomes")
	}

	out := make([]ports.QcOutcome, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPortsOutcome(row))
	}
	return out, nil
}

func (r *OutcomeRepository) AppendHistory(ctx context.Context, h ports.QcOutcomeHistory) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	row := model.QcOutcomeHistory{
		IDEntity:        h.IDEntity,
		IDQcOutcomeDict: h.IDQcOutcomeDict,
		DateCreated:     h.DateCreated,
		DateUpdated:     h.DateUpdated,
		UserName:        h.UserName,
		CreatedBy:       h.CreatedBy,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "append outcome history")
	}
	return nil
}

func (r *OutcomeRepository) GetDict(ctx context.Context, dictID uint64) (ports.QcOutcomeDict, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.QcOutcomeDict{}, err
	}

	var row model.QcOutcomeDict
	err = db.Where("id_qc_outcome_dict = ?", dictID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.QcOutcomeDict{}, fmt.Errorf("dict %d: %w", dictID, ports.ErrNotFound)
	}
	if err != nil {
		return ports.QcOutcomeDict{}, errs.Wrap(err, "get outcome dict")
	}
	return toPortsDict(row), nil
}

func (r *OutcomeRepository) GetDictByDescription(ctx context.Context, description string) (ports.QcOutcomeDict, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.QcOutcomeDict{}, err
	}

	var row model.QcOutcomeDict
	err = db.Where("description = ?", description).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.QcOutcomeDict{}, fmt.Errorf("dict %q: %w", description, ports.ErrNotFound)
	}
	if err != nil {
		return ports.QcOutcomeDict{}, errs.Wrap(err, "get outcome dict by description")
	}
	return toPortsDict(row), nil
}

func (r *OutcomeRepository) CreateDict(ctx context.Context, d ports.QcOutcomeDict) (ports.QcOutcomeDict, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.QcOutcomeDict{}, err
	}

	row := model.QcOutcomeDict{
		Description:     d.Description,
		LongDescription: d.LongDescription,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.QcOutcomeDict{}, translateWrite(err, "create outcome dict")
	}
	return toPortsDict(row), nil
}

func (r *OutcomeRepository) CreateOutcome(ctx context.Context, o ports.QcOutcome) (ports.QcOutcome, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.QcOutcome{}, err
	}

	row := model.QcOutcome{
		IDEntity:        o.IDEntity,
		IDQcOutcomeDict: o.IDQcOutcomeDict,
		DateCreated:     o.DateCreated,
		DateUpdated:     o.DateUpdated,
		UserName:        o.UserName,
		CreatedBy:       o.CreatedBy,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.QcOutcome{}, translateWrite(err, "create outcome")
	}
	return toPortsOutcome(row), nil
}

// UpdateOutcome overwrites the current outcome row in place. The row
// identity (primary key, entity link) never changes.
func (r *OutcomeRepository) UpdateOutcome(ctx context.Context, o ports.QcOutcome) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	res := db.Model(&model.QcOutcome{}).
		Where("id_qc_outcome = ?", o.IDQcOutcome).
		Updates(map[string]any{
			"id_qc_outcome_dict": o.IDQcOutcomeDict,
			"date_created":       o.DateCreated,
			"date_updated":       o.DateUpdated,
			"user_name":          o.UserName,
			"created_by":         o.CreatedBy,
		})
	if res.Error != nil {
		return errs.Wrap(res.Error, "update outcome")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("outcome %d: %w", o.IDQcOutcome, ports.ErrNotFound)
	}
	return nil
}

func toPortsOutcome(row model.QcOutcome) ports.QcOutcome {
	return ports.QcOutcome{
		IDQcOutcome:     row.IDQcOutcome,
		IDEntity:        row.IDEntity,
		IDQcOutcomeDict: row.IDQcOutcomeDict,
		DateCreated:     row.DateCreated,
		DateUpdated:     row.DateUpdated,
		UserName:        row.UserName,
		CreatedBy:       row.CreatedBy,
	}
}

func toPortsDict(row model.QcOutcomeDict) ports.QcOutcomeDict {
	return ports.QcOutcomeDict{
		IDQcOutcomeDict: row.IDQcOutcomeDict,
		Description:     row.Description,
		LongDescription: row.LongDescription,
	}
}
