package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) DB {
	t.Helper()
	db, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	require.ErrorIs(t, err, ErrUnknownDriver)
}

func TestCountriesLifecycle(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(openSQLite(t), Countries)
	require.NoError(t, c.Migrate(ctx))
	require.NoError(t, c.Migrate(ctx), "migrate must be repeatable")

	list, err := c.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	ar, err := c.Create(ctx, domain.CountryForm{Name: "Argentina", Goals: 12, Points: 30, Logo: "ar.png"})
	require.NoError(t, err)
	br, err := c.Create(ctx, domain.CountryForm{Name: "Brasil", Goals: 15})
	require.NoError(t, err)
	assert.Greater(t, br.ID, ar.ID)
	assert.Equal(t, "ar.png", ar.Logo)

	got, err := c.Get(ctx, ar.ID)
	require.NoError(t, err)
	assert.Equal(t, ar, got)

	updated, err := c.Update(ctx, ar.ID, domain.CountryForm{Name: "Argentina", Description: "campeon", Goals: 13})
	require.NoError(t, err)
	assert.Equal(t, domain.Country{ID: ar.ID, Name: "Argentina", Description: "campeon", Goals: 13}, updated)

	list, err = c.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Country{updated, br}, list)

	require.NoError(t, c.Delete(ctx, ar.ID))
	_, err = c.Get(ctx, ar.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, c.Delete(ctx, ar.ID), ErrNotFound)
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(openSQLite(t), Countries)
	require.NoError(t, c.Migrate(ctx))

	_, err := c.Update(ctx, 42, domain.CountryForm{Name: "Nowhere"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPlanetsMoonNames(t *testing.T) {
	ctx := context.Background()
	c := NewCollection(openSQLite(t), Planets)
	require.NoError(t, c.Migrate(ctx))

	mars, err := c.Create(ctx, domain.PlanetForm{Name: "Mars", Moons: 2, MoonNames: []string{"Phobos", "Deimos"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Phobos", "Deimos"}, mars.MoonNames)

	venus, err := c.Create(ctx, domain.PlanetForm{Name: "Venus"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, venus.MoonNames)

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, mars, list[0])
}
