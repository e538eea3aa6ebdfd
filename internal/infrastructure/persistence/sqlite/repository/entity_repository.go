package repository

import (
	"context"

	"gorm.io/gorm"

	"lrqc/internal/errs"
	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/ports"
)

type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db: db}
}

func (r *EntityRepository) FindEntitiesByKey(ctx context.Context, runName, cellLabel string) ([]ports.Entity, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Entity
	err = db.Model(&model.Entity{}).
		Joins("JOIN entity_pacbio_ent ON entity_pacbio_ent.id_entity = entity.id_entity").
		Joins("JOIN pacbio_ent ON pacbio_ent.id_pacbio_ent = entity_pacbio_ent.id_pacbio_ent").
		Where("pacbio_ent.run_name = ? AND pacbio_ent.cell_label = ?", runName, cellLabel).
		Order("entity.id_entity").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(err, "find entities by key")
	}

	out := make([]ports.Entity, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPortsEntity(row))
	}
	return out, nil
}

// CreateCellEntity inserts the entity, its pacbio_ent resolution key and
// the join row. Callers run it inside a unit of work so the three
// inserts commit or roll back together.
func (r *EntityRepository) CreateCellEntity(ctx context.Context, in ports.CellEntityCreate) (ports.Entity, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.Entity{}, err
	}

	ent := model.Entity{
		Type:           in.Type,
		DescriptionSha: in.DescriptionSHA,
		Description:    in.Description,
		PlatformName:   in.PlatformName,
	}
	if err := db.Create(&ent).Error; err != nil {
		return ports.Entity{}, translateWrite(err, "create entity")
	}

	pbEnt := model.PacbioEnt{
		RunName:      in.RunName,
		CellLabel:    in.CellLabel,
		Tag1Sequence: in.Tag1Sequence,
		Description:  in.Description,
	}
	if err := db.Create(&pbEnt).Error; err != nil {
		return ports.Entity{}, translateWrite(err, "create pacbio_ent")
	}

	join := model.EntityPacbioEnt{
		IDEntity:    ent.IDEntity,
		IDPacbioEnt: pbEnt.IDPacbioEnt,
	}
	if err := db.Create(&join).Error; err != nil {
		return ports.Entity{}, translateWrite(err, "link entity to pacbio_ent")
	}

	return toPortsEntity(ent), nil
}

func toPortsEntity(row model.Entity) ports.Entity {
	return ports.Entity{
		IDEntity:       row.IDEntity,
		Type:           row.Type,
		Description:    row.Description,
		DescriptionSHA: row.DescriptionSha,
		JSON:           row.JSON,
		PlatformName:   row.PlatformName,
	}
}
