package model

import "time"

type Annotation struct {
	IDAnnotation uint64    `gorm:"column:id_annotation;primaryKey;autoIncrement"`
	Annotation   string    `gorm:"column:annotation;type:text;not null"`
	UserName     string    `gorm:"column:user_name;type:text;not null"`
	DateCreated  time.Time `gorm:"column:date_created;not null"`
}

func (Annotation) TableName() string {
	return "annotation"
}
