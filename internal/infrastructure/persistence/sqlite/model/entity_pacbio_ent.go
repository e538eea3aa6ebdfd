package model

type EntityPacbioEnt struct {
	IDEntityPacbioEnt uint64 `gorm:"column:id_entity_pacbio_ent;primaryKey;autoIncrement"`
	IDEntity          uint64 `gorm:"column:id_entity;not null;index"`
	IDPacbioEnt       uint64 `gorm:"column:id_pacbio_ent;not null;index"`

	Entity    *Entity    `gorm:"foreignKey:IDEntity;references:IDEntity;constraint:OnDelete:CASCADE"`
	PacbioEnt *PacbioEnt `gorm:"foreignKey:IDPacbioEnt;references:IDPacbioEnt;constraint:OnDelete:CASCADE"`
}

func (EntityPacbioEnt) TableName() string {
	return "entity_pacbio_ent"
}
