package model

// PacbioEnt resolves a (run_name, cell_label) search key to an entity.
// The composite unique index backs the resolver's at-most-one invariant.
type PacbioEnt struct {
	IDPacbioEnt  uint64  `gorm:"column:id_pacbio_ent;primaryKey;autoIncrement"`
	RunName      string  `gorm:"column:run_name;type:text;not null;uniqueIndex:idx_pacbio_ent_run_cell"`
	CellLabel    string  `gorm:"column:cell_label;type:text;not null;uniqueIndex:idx_pacbio_ent_run_cell"`
	Tag1Sequence *string `gorm:"column:tag1_sequence;type:text"`
	Description  string  `gorm:"column:description;type:text;not null"`
}

func (PacbioEnt) TableName() string {
	return "pacbio_ent"
}
