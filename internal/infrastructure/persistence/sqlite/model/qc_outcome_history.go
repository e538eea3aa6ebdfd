package model

import "time"

// QcOutcomeHistory is the append-only log of superseded outcome values.
// Rows are never updated or deleted once written.
type QcOutcomeHistory struct {
	IDQcOutcomeHistory uint64    `gorm:"column:id_qc_outcome_history;primaryKey;autoIncrement"`
	IDEntity           uint64    `gorm:"column:id_entity;not null;index"`
	IDQcOutcomeDict    uint64    `gorm:"column:id_qc_outcome_dict;not null"`
	DateCreated        time.Time `gorm:"column:date_created;not null"`
	DateUpdated        time.Time `gorm:"column:date_updated;not null"`
	UserName           string    `gorm:"column:user_name;type:text;not null"`
	CreatedBy          string    `gorm:"column:created_by;type:text;not null"`

	Entity *Entity `gorm:"foreignKey:IDEntity;references:IDEntity;constraint:OnDelete:CASCADE"`
}

func (QcOutcomeHistory) TableName() string {
	return "qc_outcome_history"
}
