// Package repository loads and persists player tables.
package repository

import (
	"context"

	"github.com/okian/fifaclean/internal/domain/model"
)

// Store provides read/write access to a player table.
type Store interface {
	// Load reads the whole table into memory.
	Load(ctx context.Context) (*model.Table, error)
	// Save replaces the stored table with t.
	Save(ctx context.Context, t *model.Table) error
}
