package model

// EntityAnnotation links annotations to entities. A non-null
// id_qc_outcome records the outcome event the annotation accompanied.
type EntityAnnotation struct {
	IDEntityAnnotation uint64  `gorm:"column:id_entity_annotation;primaryKey;autoIncrement"`
	IDEntity           uint64  `gorm:"column:id_entity;not null;index"`
	IDAnnotation       uint64  `gorm:"column:id_annotation;not null;index"`
	IDQcOutcome        *uint64 `gorm:"column:id_qc_outcome"`

	Entity     *Entity     `gorm:"foreignKey:IDEntity;references:IDEntity;constraint:OnDelete:CASCADE"`
	Annotation *Annotation `gorm:"foreignKey:IDAnnotation;references:IDAnnotation;constraint:OnDelete:CASCADE"`
	QcOutcome  *QcOutcome  `gorm:"foreignKey:IDQcOutcome;references:IDQcOutcome"`
}

func (EntityAnnotation) TableName() string {
	return "entity_annotation"
}
