package repository

import (
	"context"

	"gorm.io/gorm"

	"lrqc/internal/errs"
	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/ports"
)

type AnnotationRepository struct {
	db *gorm.DB
}

func NewAnnotationRepository(db *gorm.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

func (r *AnnotationRepository) CreateAnnotation(ctx context.Context, a ports.Annotation) (ports.Annotation, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return ports.Annotation{}, err
	}

	row := model.Annotation{
		Annotation:  a.Annotation,
		UserName:    a.UserName,
		DateCreated: a.DateCreated,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Annotation{}, errs.Wrap(err, "create annotation")
	}
	return toPortsAnnotation(row), nil
}

func (r *AnnotationRepository) LinkEntity(ctx context.Context, entityID, annotationID uint64, outcomeID *uint64) error {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return err
	}

	row := model.EntityAnnotation{
		IDEntity:     entityID,
		IDAnnotation: annotationID,
		IDQcOutcome:  outcomeID,
	}
	if err := db.Create(&row).Error; err != nil {
		return errs.Wrap(err, "link annotation to entity")
	}
	return nil
}

func (r *AnnotationRepository) ListByEntity(ctx context.Context, entityID uint64) ([]ports.Annotation, error) {
	db, err := dbFromContext(r.db, ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Annotation
	err = db.Model(&model.Annotation{}).
		Joins("JOIN entity_annotation ON entity_annotation.id_annotation = annotation.id_annotation").
		Where("entity_annotation.id_entity = ?", entityID).
		Order("annotation.id_annotation").
		Find(&rows).Error
	if err != nil {
		return nil, errs.Wrap(err, "list annotations by entity")
	}

	out := make([]ports.Annotation, 0, len(rows))
	for _, row := range rows {
		out = append(out, toPortsAnnotation(row))
	}
	return out, nil
}

func toPortsAnnotation(row model.Annotation) ports.Annotation {
	return ports.Annotation{
		IDAnnotation: row.IDAnnotation,
		Annotation:   row.Annotation,
		UserName:     row.UserName,
		DateCreated:  row.DateCreated,
	}
}
