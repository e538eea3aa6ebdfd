package repository

import (
	"context"
	"errors"
	"testing"

	domainqc "lrqc/internal/domain/qc"
	"lrqc/internal/ports"
)

func cellCreate(runName, wellLabel string) ports.CellEntityCreate {
	key := domainqc.SearchKey{RunName: runName, WellLabel: wellLabel}
	return ports.CellEntityCreate{
		RunName:        runName,
		CellLabel:      wellLabel,
		Description:    key.Description(),
		DescriptionSHA: key.DescriptionSHA(),
		Type:           domainqc.EntityTypeCell,
		PlatformName:   domainqc.PlatformPacbio,
	}
}

func TestCreateCellEntityAndFindByKey(t *testing.T) {
	repo := NewEntityRepository(setupDB(t))
	ctx := context.Background()

	created, err := repo.CreateCellEntity(ctx, cellCreate("TRACTION-RUN-92", "A1"))
	if err != nil {
		t.Fatalf("CreateCellEntity() error = %v", err)
	}
	if created.IDEntity == 0 {
		t.Fatalf("CreateCellEntity() id = 0")
	}
	if created.Type != domainqc.EntityTypeCell || created.PlatformName != domainqc.PlatformPacbio {
		t.Fatalf("CreateCellEntity() type/platform = %q/%q", created.Type, created.PlatformName)
	}

	found, err := repo.FindEntitiesByKey(ctx, "TRACTION-RUN-92", "A1")
	if err != nil {
		t.Fatalf("FindEntitiesByKey() error = %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("FindEntitiesByKey() len = %d", len(found))
	}
	if found[0].IDEntity != created.IDEntity {
		t.Fatalf("FindEntitiesByKey() id = %d, want %d", found[0].IDEntity, created.IDEntity)
	}
	if found[0].Description != "TRACTION-RUN-92:A1" {
		t.Fatalf("FindEntitiesByKey() description = %q", found[0].Description)
	}
}

func TestFindEntitiesByKeyNoMatch(t *testing.T) {
	repo := NewEntityRepository(setupDB(t))

	found, err := repo.FindEntitiesByKey(context.Background(), "TRACTION-RUN-92", "H12")
	if err != nil {
		t.Fatalf("FindEntitiesByKey() error = %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("FindEntitiesByKey() len = %d, want 0", len(found))
	}
}

func TestCreateCellEntityDuplicateKeyConflicts(t *testing.T) {
	repo := NewEntityRepository(setupDB(t))
	ctx := context.Background()

	if _, err := repo.CreateCellEntity(ctx, cellCreate("TRACTION-RUN-92", "A1")); err != nil {
		t.Fatalf("first CreateCellEntity() error = %v", err)
	}

	_, err := repo.CreateCellEntity(ctx, cellCreate("TRACTION-RUN-92", "A1"))
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("second CreateCellEntity() error = %v, want ErrConflict", err)
	}
}

func TestCreateCellEntityDistinctWells(t *testing.T) {
	repo := NewEntityRepository(setupDB(t))
	ctx := context.Background()

	a1, err := repo.CreateCellEntity(ctx, cellCreate("TRACTION-RUN-92", "A1"))
	if err != nil {
		t.Fatalf("CreateCellEntity(A1) error = %v", err)
	}
	b1, err := repo.CreateCellEntity(ctx, cellCreate("TRACTION-RUN-92", "B1"))
	if err != nil {
		t.Fatalf("CreateCellEntity(B1) error = %v", err)
	}
	if a1.IDEntity == b1.IDEntity {
		t.Fatalf("distinct wells resolved to the same entity %d", a1.IDEntity)
	}
}
