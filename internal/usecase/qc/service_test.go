package qc

import (
	"path/filepath"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"lrqc/internal/infrastructure/persistence/sqlite/model"
	"lrqc/internal/infrastructure/persistence/sqlite/repository"
	"lrqc/internal/infrastructure/persistence/sqlite/uow"
)

// newTestService wires the real sqlite repositories behind the service.
// The clock is pinned so timestamp assertions stay exact.
func newTestService(t *testing.T) (*Service, *gorm.DB, *clock) {
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

	svc := NewService(
		repository.NewEntityRepository(db),
		repository.NewOutcomeRepository(db),
		repository.NewAnnotationRepository(db),
		uow.NewUnitOfWork(db),
	)
	c := &clock{t: time.Date(2026, 8, 12, 10, 30, 0, 0, time.UTC)}
	svc.now = c.now
	return svc, db, c
}

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}
