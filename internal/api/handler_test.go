package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/recordstore"
	"github.com/punchamoorthee/catalogops/internal/remote"
	"github.com/punchamoorthee/catalogops/internal/service"
	"github.com/punchamoorthee/catalogops/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	countries := store.NewCollection(db, store.Countries)
	planets := store.NewCollection(db, store.Planets)
	require.NoError(t, countries.Migrate(ctx))
	require.NoError(t, planets.Migrate(ctx))

	router := NewRouter(nil,
		NewHandler[domain.Country, domain.CountryForm]("/paises", service.NewCatalogService[domain.Country, domain.CountryForm](countries, service.ValidateCountry), nil),
		NewHandler[domain.Planet, domain.PlanetForm]("/planetas", service.NewCatalogService[domain.Planet, domain.PlanetForm](planets, service.ValidatePlanet), nil),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)
	resp := do(t, "GET", srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateAndList(t *testing.T) {
	srv := setupServer(t)

	resp := do(t, "POST", srv.URL+"/paises", `{"name":"Uruguay","description":"celeste","goals":4,"points":10,"logo":"uy.png"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	var created domain.Country
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, domain.Country{ID: created.ID, Name: "Uruguay", Description: "celeste", Goals: 4, Points: 10, Logo: "uy.png"}, created)

	resp = do(t, "GET", srv.URL+"/paises", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []domain.Country
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Equal(t, []domain.Country{created}, list)
}

func TestEmptyListIsArray(t *testing.T) {
	srv := setupServer(t)
	resp := do(t, "GET", srv.URL+"/planetas", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, `[]`, string(raw))
}

func TestErrorStatuses(t *testing.T) {
	srv := setupServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"malformed json", "POST", "/paises", `{`, http.StatusBadRequest},
		{"missing name", "POST", "/paises", `{"goals":1}`, http.StatusUnprocessableEntity},
		{"negative moons", "POST", "/planetas", `{"name":"X","moons":-1}`, http.StatusUnprocessableEntity},
		{"bad id", "GET", "/paises/abc", "", http.StatusBadRequest},
		{"unknown id", "GET", "/paises/99", "", http.StatusNotFound},
		{"update unknown", "PUT", "/paises/99", `{"name":"X"}`, http.StatusNotFound},
		{"delete unknown", "DELETE", "/planetas/99", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(t, tc.method, srv.URL+tc.path, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv := setupServer(t)
	req, err := http.NewRequest("GET", srv.URL+"/paises", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

// The record store driven end to end against the real server.
func TestRecordStoreAgainstServer(t *testing.T) {
	srv := setupServer(t)
	ctx := context.Background()

	client := remote.New[domain.Planet, domain.PlanetForm](srv.URL+"/planetas", srv.Client())
	for _, f := range []domain.PlanetForm{
		{Name: "Mercury"},
		{Name: "Jupiter", Moons: 95},
		{Name: "Mars", Moons: 2, MoonNames: []string{"Phobos", "Deimos"}},
	} {
		_, err := client.Create(ctx, f)
		require.NoError(t, err)
	}

	s := recordstore.New[domain.Planet, domain.PlanetForm](client, nil)
	require.NoError(t, s.Load(ctx))
	require.Len(t, s.Items(), 3)

	s.SortByRank()
	assert.Equal(t, "Jupiter", s.Items()[0].Name)

	mars := s.Items()[1]
	_, err := s.SelectByID(mars.ID)
	require.NoError(t, err)
	form, err := s.BeginEdit()
	require.NoError(t, err)
	form.Description = "red"
	updated, err := s.Save(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, "red", updated.Description)
	assert.Equal(t, []string{"Phobos", "Deimos"}, updated.MoonNames)

	s.BeginAdd()
	earth, err := s.Save(ctx, domain.PlanetForm{Name: "Earth", Moons: 1, MoonNames: []string{"Moon"}})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, s.Items()[2].ID))

	s.ResetOrder()
	fresh, err := client.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, s.Items())
	assert.Equal(t, earth, fresh[len(fresh)-1])

	err = s.Delete(ctx, 12345)
	require.ErrorIs(t, err, remote.ErrRequestFailed)
}
