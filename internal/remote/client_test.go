package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	header http.Header
	body   string
}

func newServer(t *testing.T, status int, reply string) (*Client[domain.Country, domain.CountryForm], *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		got.method = r.Method
		got.path = r.URL.Path
		got.header = r.Header.Clone()
		got.body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return New[domain.Country, domain.CountryForm](srv.URL+"/paises/", nil), got
}

func TestListSendsBypassHeader(t *testing.T) {
	c, got := newServer(t, http.StatusOK, `[{"id":1,"name":"Brasil","goals":5},{"id":2,"name":"Uruguay","goals":7}]`)

	items, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Brasil", items[0].Name)
	assert.Equal(t, int64(7), items[1].Goals)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/paises", got.path)
	assert.Equal(t, "true", got.header.Get(BypassTunnelHeader))
}

func TestListEmptyIsNotNil(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `null`)
	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCreatePostsForm(t *testing.T) {
	c, got := newServer(t, http.StatusCreated, `{"id":7,"name":"Earth","goals":1}`)

	rec, err := c.Create(context.Background(), domain.CountryForm{Name: "Earth", Goals: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.ID)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/paises", got.path)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Empty(t, got.header.Get(BypassTunnelHeader))
	assert.JSONEq(t, `{"name":"Earth","description":"","goals":1,"points":0,"logo":""}`, got.body)
}

func TestUpdatePutsToItem(t *testing.T) {
	c, got := newServer(t, http.StatusOK, `{"id":3,"name":"Peru","goals":4}`)

	rec, err := c.Update(context.Background(), 3, domain.CountryForm{Name: "Peru", Goals: 4})
	require.NoError(t, err)
	assert.Equal(t, "Peru", rec.Name)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/paises/3", got.path)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &sent))
	assert.NotContains(t, sent, "id")
}

func TestDelete(t *testing.T) {
	c, got := newServer(t, http.StatusNoContent, ``)

	require.NoError(t, c.Delete(context.Background(), 9))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/paises/9", got.path)
	assert.Equal(t, "true", got.header.Get(BypassTunnelHeader))
}

func TestNon2xxIsRequestFailure(t *testing.T) {
	c, _ := newServer(t, http.StatusNotFound, `{"error":"record not found"}`)

	err := c.Delete(context.Background(), 9)
	require.ErrorIs(t, err, ErrRequestFailed)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "delete", reqErr.Op)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, err.Error(), "record not found")
}

func TestMalformedBodyIsRequestFailure(t *testing.T) {
	c, _ := newServer(t, http.StatusOK, `{not json`)
	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
}

func TestTransportErrorIsRequestFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New[domain.Country, domain.CountryForm](url, &http.Client{Timeout: time.Second})
	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrRequestFailed)
}
