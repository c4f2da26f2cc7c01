package store

import (
	"context"
	"errors"

	"github.com/emrgen/peps/internal/model"
)

var (
	// ErrPEPNotFound is returned when no PEP row exists for a number.
	ErrPEPNotFound = errors.New("pep not found")
)

type Store interface {
	PEPStore
	AuthorStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type PEPStore interface {
	// GetPEP retrieves a PEP by number, with its authors loaded.
	GetPEP(ctx context.Context, number int) (*model.PEP, error)
	// ListPEPs retrieves a page of PEPs in storage order plus the total row count.
	ListPEPs(ctx context.Context, skip, limit int) ([]*model.PEP, int64, error)
	// SearchPEPs retrieves PEPs whose title contains the query, case-insensitively.
	SearchPEPs(ctx context.Context, query string) ([]*model.PEP, error)
	// CountPEPs returns the total number of stored PEPs.
	CountPEPs(ctx context.Context) (int64, error)
	// UpsertPEP writes the scalar columns of a PEP keyed by number.
	UpsertPEP(ctx context.Context, pep *model.PEP) error
	// ReplaceAuthors makes the PEP's association rows match authors exactly.
	ReplaceAuthors(ctx context.Context, pep *model.PEP, authors []*model.Author) error
}

type AuthorStore interface {
	// EnsureAuthor returns the author row with the given name, creating it when missing.
	EnsureAuthor(ctx context.Context, name string) (*model.Author, error)
	// ListAuthors retrieves the authors linked to a PEP number.
	ListAuthors(ctx context.Context, number int) ([]*model.Author, error)
	// PruneAuthors deletes the given authors if no association rows reference them.
	PruneAuthors(ctx context.Context, ids []uint) error
}
