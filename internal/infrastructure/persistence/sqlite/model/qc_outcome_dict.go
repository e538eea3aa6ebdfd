package model

// QcOutcomeDict maps an outcome category to its short/long description.
// Rows are deduplicated by description.
type QcOutcomeDict struct {
	IDQcOutcomeDict uint64 `gorm:"column:id_qc_outcome_dict;primaryKey;autoIncrement"`
	Description     string `gorm:"column:description;type:text;not null;uniqueIndex:idx_qc_outcome_dict_description"`
	LongDescription string `gorm:"column:long_description;type:text"`
}

func (QcOutcomeDict) TableName() string {
	return "qc_outcome_dict"
}
