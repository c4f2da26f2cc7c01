package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/emrgen/peps/internal/model"
	"github.com/emrgen/peps/internal/service"
	"github.com/emrgen/peps/internal/store"
	"github.com/emrgen/peps/internal/tester"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestAPI(t *testing.T) (*echo.Echo, *store.GormStore) {
	t.Helper()

	tester.RemoveDBFile()
	tester.Setup()

	pepStore := store.NewGormStore(tester.TestDB())

	e := echo.New()
	NewHandler(service.NewQueryService(pepStore)).Register(e)

	return e, pepStore
}

func seedPEP(t *testing.T, s *store.GormStore, number int, title string, authorNames ...string) {
	t.Helper()

	pep := &model.PEP{
		Number: number,
		Title:  title,
		Status: "Active",
		Type:   "Process",
		URL:    fmt.Sprintf("https://peps.python.org/pep-%04d/", number),
	}
	err := s.UpsertPEP(context.TODO(), pep)
	assert.NoError(t, err)

	authors := make([]*model.Author, 0, len(authorNames))
	for _, name := range authorNames {
		author, err := s.EnsureAuthor(context.TODO(), name)
		assert.NoError(t, err)
		authors = append(authors, author)
	}

	err = s.ReplaceAuthors(context.TODO(), pep, authors)
	assert.NoError(t, err)
}

func doGet(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetPEP(t *testing.T) {
	e, s := newTestAPI(t)
	seedPEP(t, s, 8, "Style Guide for Python Code", "Guido van Rossum", "Barry Warsaw")

	rec := doGet(e, "/api/peps/8")
	assert.Equal(t, http.StatusOK, rec.Code)

	var res PEPResponse
	err := json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Equal(t, 8, res.Number)
	assert.Equal(t, "Style Guide for Python Code", res.Title)
	assert.Len(t, res.Authors, 2)
	assert.NotZero(t, res.Authors[0].ID)

	rec = doGet(e, "/api/peps/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var msg map[string]string
	err = json.Unmarshal(rec.Body.Bytes(), &msg)
	assert.NoError(t, err)
	assert.Equal(t, "PEP 404 not found", msg["message"])

	rec = doGet(e, "/api/peps/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListPEPs(t *testing.T) {
	e, s := newTestAPI(t)
	for i := 1; i <= 3; i++ {
		seedPEP(t, s, i, fmt.Sprintf("Proposal %d", i))
	}

	rec := doGet(e, "/api/peps")
	assert.Equal(t, http.StatusOK, rec.Code)

	var res PEPListResponse
	err := json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Len(t, res.PEPs, 3)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 0, res.Skip)
	assert.Equal(t, service.DefaultListLimit, res.Limit)

	rec = doGet(e, "/api/peps?skip=1&limit=1")
	assert.Equal(t, http.StatusOK, rec.Code)

	err = json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Len(t, res.PEPs, 1)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 1, res.Skip)
	assert.Equal(t, 1, res.Limit)

	rec = doGet(e, "/api/peps?skip=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SearchPEPs(t *testing.T) {
	e, s := newTestAPI(t)
	seedPEP(t, s, 8, "Style Guide for Python Code")
	seedPEP(t, s, 20, "The Zen of Python")
	seedPEP(t, s, 484, "Type Hints")

	rec := doGet(e, "/api/search?q=python")
	assert.Equal(t, http.StatusOK, rec.Code)

	var res SearchResponse
	err := json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Len(t, res.PEPs, 2)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, "python", res.Query)

	// present but empty query matches everything
	rec = doGet(e, "/api/search?q=")
	assert.Equal(t, http.StatusOK, rec.Code)

	err = json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.Total)

	// a missing query is a caller mistake
	rec = doGet(e, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_CountPEPs(t *testing.T) {
	e, s := newTestAPI(t)
	seedPEP(t, s, 1, "PEP Purpose and Guidelines")
	seedPEP(t, s, 2, "Procedure for Adding New Modules")

	rec := doGet(e, "/api/peps/count")
	assert.Equal(t, http.StatusOK, rec.Code)

	var res CountResponse
	err := json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Count)
}

func TestHandler_Health(t *testing.T) {
	e, _ := newTestAPI(t)

	rec := doGet(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)

	var res map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &res)
	assert.NoError(t, err)
	assert.Equal(t, "world", res["hello"])
}
