package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lrqc/internal/ports"
)

// dbFromContext prefers a transaction handle placed in context by the
// unit of work over the repository's base connection.
func dbFromContext(base *gorm.DB, ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return base.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

// translateWrite maps gorm's translated unique-index violation onto the
// ports sentinel so callers can run their re-read-on-conflict path.
func translateWrite(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s: %w", op, ports.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
