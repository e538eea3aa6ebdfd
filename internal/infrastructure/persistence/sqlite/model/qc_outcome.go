package model

import "time"

// QcOutcome is the current QC decision for an entity. It is overwritten
// in place on supersede; displaced values move to qc_outcome_history.
// The unique id_entity index enforces the logical 1:1 with entity.
type QcOutcome struct {
	IDQcOutcome     uint64    `gorm:"column:id_qc_outcome;primaryKey;autoIncrement"`
	IDEntity        uint64    `gorm:"column:id_entity;not null;uniqueIndex:idx_qc_outcome_entity"`
	IDQcOutcomeDict uint64    `gorm:"column:id_qc_outcome_dict;not null;index"`
	DateCreated     time.Time `gorm:"column:date_created;not null"`
	DateUpdated     time.Time `gorm:"column:date_updated;not null"`
	UserName        string    `gorm:"column:user_name;type:text;not null"`
	CreatedBy       string    `gorm:"column:created_by;type:text;not null"`

	Entity *Entity        `gorm:"foreignKey:IDEntity;references:IDEntity;constraint:OnDelete:CASCADE"`
	Dict   *QcOutcomeDict `gorm:"foreignKey:IDQcOutcomeDict;references:IDQcOutcomeDict"`
}

func (QcOutcome) TableName() string {
	return "qc_outcome"
}
