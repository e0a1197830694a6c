package inventory

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDecodesEquipment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/equipos/7/", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"estado":"prestado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/equipos/", srv.Client())
	eq, err := c.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), eq.EquipmentID)
	assert.Equal(t, "prestado", eq.Status)
}

func TestGetNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	_, err := c.Get(context.Background(), 7)
	assert.Error(t, err)
}

func TestMarkAvailablePatchesEquipment(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	require.NoError(t, c.MarkAvailable(context.Background(), 7))

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/7/", gotPath)
	assert.JSONEq(t, `{"estado":"disponible"}`, gotBody)
}

func TestMarkAvailableNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	assert.Error(t, c.MarkAvailable(context.Background(), 7))
}
