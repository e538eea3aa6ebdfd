package repository

import (
	"context"
	"path/filepath"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/ports"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "lrqc.sqlite")
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(
		&model.Entity{},
		&model.PacbioEnt{},
		&model.EntityPacbioEnt{},
		&model.QcOutcomeDict{},
		&model.QcOutcome{},
		&model.QcOutcomeHistory{},
		&model.Annotation{},
		&model.EntityAnnotation{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// seedEntity satisfies the foreign keys of outcome and annotation rows.
func seedEntity(t *testing.T, db *gorm.DB, runName, wellLabel string) uint64 {
	t.Helper()

	key := domainqc.SearchKey{RunName: runName, WellLabel: wellLabel}
	ent, err := NewEntityRepository(db).CreateCellEntity(context.Background(), ports.CellEntityCreate{
		RunName:        runName,
		CellLabel:      wellLabel,
		Description:    key.Description(),
		DescriptionSHA: key.DescriptionSHA(),
		Type:           domainqc.EntityTypeCell,
		PlatformName:   domainqc.PlatformPacbio,
	})
	if err != nil {
		t.Fatalf("seed entity %s:%s: %v", runName, wellLabel, err)
	}
	return ent.IDEntity
}
