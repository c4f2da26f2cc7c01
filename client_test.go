package peps

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/peps/count", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"count": 42}`)
	})
	mux.HandleFunc("/api/peps/8", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"number": 8, "title": "Style Guide for Python Code", "status": "Active", "type": "Process", "topic": "", "created": "2001-07-05", "python_version": null, "url": "https://peps.python.org/pep-0008/", "authors": [{"id": 1, "name": "Guido van Rossum"}]}`)
	})
	mux.HandleFunc("/api/peps/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/peps", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("skip"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = io.WriteString(w, `{"peps": [], "total": 42, "skip": 5, "limit": 10}`)
	})
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zen", r.URL.Query().Get("q"))
		_, _ = io.WriteString(w, `{"peps": [{"number": 20, "title": "The Zen of Python", "status": "Active", "type": "Informational", "topic": "", "created": null, "python_version": null, "url": "https://peps.python.org/pep-0020/", "authors": []}], "total": 1, "query": "zen"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_GetPEP(t *testing.T) {
	srv := newAPIServer(t)
	client := NewClient(srv.URL)

	pep, err := client.GetPEP(context.TODO(), 8)
	assert.NoError(t, err)
	assert.Equal(t, 8, pep.Number)
	assert.Equal(t, "Style Guide for Python Code", pep.Title)
	assert.Len(t, pep.Authors, 1)

	_, err = client.GetPEP(context.TODO(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ListPEPs(t *testing.T) {
	srv := newAPIServer(t)
	client := NewClient(srv.URL)

	list, err := client.ListPEPs(context.TODO(), 5, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), list.Total)
	assert.Equal(t, 5, list.Skip)
	assert.Empty(t, list.PEPs)
}

func TestClient_SearchPEPs(t *testing.T) {
	srv := newAPIServer(t)
	client := NewClient(srv.URL)

	result, err := client.SearchPEPs(context.TODO(), "zen")
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "zen", result.Query)
	assert.Len(t, result.PEPs, 1)
	assert.Equal(t, 20, result.PEPs[0].Number)
}

func TestClient_CountPEPs(t *testing.T) {
	srv := newAPIServer(t)
	client := NewClient(srv.URL)

	count, err := client.CountPEPs(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestClient_TrailingSlash(t *testing.T) {
	srv := newAPIServer(t)
	client := NewClient(srv.URL + "/")

	count, err := client.CountPEPs(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)

	_, err := client.CountPEPs(context.TODO())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
