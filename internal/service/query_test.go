package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/emrgen/peps/internal/model"
	"github.com/emrgen/peps/internal/store"
	"github.com/emrgen/peps/internal/tester"
	"github.com/stretchr/testify/assert"
)

func seedPEPs(t *testing.T, s store.Store, count int) {
	t.Helper()

	for i := 1; i <= count; i++ {
		err := s.UpsertPEP(context.TODO(), &model.PEP{
			Number: i,
			Title:  fmt.Sprintf("Proposal %d", i),
			URL:    fmt.Sprintf("https://peps.python.org/pep-%04d/", i),
		})
		assert.NoError(t, err)
	}
}

func TestQueryService_GetPEP(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	pepStore := store.NewGormStore(tester.TestDB())
	queries := NewQueryService(pepStore)
	seedPEPs(t, pepStore, 1)

	pep, err := queries.GetPEP(context.TODO(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Proposal 1", pep.Title)

	_, err = queries.GetPEP(context.TODO(), 999)
	assert.ErrorIs(t, err, store.ErrPEPNotFound)
}

func TestQueryService_ListPEPs(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	pepStore := store.NewGormStore(tester.TestDB())
	queries := NewQueryService(pepStore)
	seedPEPs(t, pepStore, 3)

	peps, total, err := queries.ListPEPs(context.TODO(), 0, DefaultListLimit)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, peps, 3)

	// negative paging clamps to zero instead of erroring
	peps, total, err = queries.ListPEPs(context.TODO(), -5, -7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, peps, 0)
}

func TestQueryService_SearchPEPs(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	pepStore := store.NewGormStore(tester.TestDB())
	queries := NewQueryService(pepStore)
	seedPEPs(t, pepStore, 3)

	peps, err := queries.SearchPEPs(context.TODO(), "proposal 2")
	assert.NoError(t, err)
	assert.Len(t, peps, 1)

	peps, err = queries.SearchPEPs(context.TODO(), "")
	assert.NoError(t, err)
	assert.Len(t, peps, 3)
}

func TestQueryService_CountPEPs(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	pepStore := store.NewGormStore(tester.TestDB())
	queries := NewQueryService(pepStore)

	count, err := queries.CountPEPs(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)

	seedPEPs(t, pepStore, 2)

	count, err = queries.CountPEPs(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
