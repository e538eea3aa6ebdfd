package model

// Entity is the canonical QC subject. The unique description_sha index
// is what deduplicates concurrent get-or-create resolvers.
type Entity struct {
	IDEntity       uint64  `gorm:"column:id_entity;primaryKey;autoIncrement"`
	Type           string  `gorm:"column:type;type:text;not null"`
	DescriptionSha string  `gorm:"column:description_sha;type:text;not null;uniqueIndex:idx_entity_description_sha"`
	Description    string  `gorm:"column:description;type:text;not null"`
	JSON           *string `gorm:"column:json;type:text"`
	PlatformName   string  `gorm:"column:platform_name;type:text;not null"`
}

func (Entity) TableName() string {
	return "entity"
}
