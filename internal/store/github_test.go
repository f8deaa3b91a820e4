package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *GitHubStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGitHubStore(srv.URL, "tok", "acme/catalog", "main")
}

func TestFileSHAFound(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/repos/acme/catalog/contents/products/p1.json", r.URL.Path)
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"p1.json","sha":"abc123sha","size":42}`))
	})

	sha, err := st.FileSHA(context.Background(), "products/p1.json")
	require.NoError(t, err)
	assert.Equal(t, "abc123sha", sha)
}

func TestFileSHANotFound(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})

	sha, err := st.FileSHA(context.Background(), "products/p1.json")
	require.NoError(t, err, "a missing file is the expected create path, not an error")
	assert.Empty(t, sha)
}

func TestFileSHAServerError(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream unavailable"}`))
	})

	_, err := st.FileSHA(context.Background(), "products/p1.json")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusBadGateway, storeErr.StatusCode)
	assert.Equal(t, "upstream unavailable", storeErr.Message)
}

func TestPutFileCreate(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/acme/catalog/contents/images/p1.jpg", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Add product image p1", body["message"])
		assert.Equal(t, "Zm9v", body["content"])
		assert.Equal(t, "main", body["branch"])
		_, hasSHA := body["sha"]
		assert.False(t, hasSHA, "create must not send a precondition sha")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"content":{"sha":"newsha"},"commit":{"sha":"c1"}}`))
	})

	result, err := st.PutFile(context.Background(), "images/p1.jpg", "Zm9v", "Add product image p1", "")
	require.NoError(t, err)
	assert.JSONEq(t, `{"content":{"sha":"newsha"},"commit":{"sha":"c1"}}`, string(result))
}

func TestPutFileUpdateSendsPrecondition(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "oldsha", body["sha"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"commit":{"sha":"c2"}}`))
	})

	_, err := st.PutFile(context.Background(), "products/p1.json", "e30=", "Update product p1", "oldsha")
	require.NoError(t, err)
}

func TestPutFileConflict(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"products/p1.json does not match abc"}`))
	})

	_, err := st.PutFile(context.Background(), "products/p1.json", "e30=", "Update product p1", "stale")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, http.StatusConflict, storeErr.StatusCode)
	assert.Equal(t, "products/p1.json does not match abc", storeErr.Message)
}

func TestPutFileUnstructuredErrorBody(t *testing.T) {
	st := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("gateway timeout"))
	})

	_, err := st.PutFile(context.Background(), "products/p1.json", "e30=", "Add product p1", "")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "gateway timeout", storeErr.Message)
}
