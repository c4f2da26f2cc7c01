package service

import (
	"context"

	"github.com/emrgen/peps/internal/model"
	"github.com/emrgen/peps/internal/store"
)

// DefaultListLimit is the page size used when a caller does not ask for
// one.
const DefaultListLimit = 100

// QueryService is the read-only query API over stored PEPs. It never
// mutates; ingestion is the only writer.
type QueryService struct {
	store store.Store
}

func NewQueryService(store store.Store) *QueryService {
	return &QueryService{
		store: store,
	}
}

// GetPEP retrieves one PEP by number, with authors loaded. A missing
// number comes back as store.ErrPEPNotFound.
func (q *QueryService) GetPEP(ctx context.Context, number int) (*model.PEP, error) {
	return q.store.GetPEP(ctx, number)
}

// ListPEPs retrieves a page of PEPs plus the total row count. Negative
// skip or limit is treated as zero, and a zero limit yields an empty
// page with the count still filled in.
func (q *QueryService) ListPEPs(ctx context.Context, skip, limit int) ([]*model.PEP, int64, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}

	return q.store.ListPEPs(ctx, skip, limit)
}

// SearchPEPs retrieves all PEPs whose title contains the query,
// case-insensitively. An empty query matches everything.
func (q *QueryService) SearchPEPs(ctx context.Context, query string) ([]*model.PEP, error) {
	return q.store.SearchPEPs(ctx, query)
}

// CountPEPs returns the total number of stored PEPs.
func (q *QueryService) CountPEPs(ctx context.Context) (int64, error) {
	return q.store.CountPEPs(ctx)
}
