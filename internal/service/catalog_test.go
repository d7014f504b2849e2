package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCountry(t *testing.T) {
	require.NoError(t, ValidateCountry(domain.CountryForm{Name: "Chile"}))
	require.ErrorIs(t, ValidateCountry(domain.CountryForm{Name: "  "}), ErrInvalid)
	require.ErrorIs(t, ValidateCountry(domain.CountryForm{Name: "Chile", Goals: -1}), ErrInvalid)
	require.ErrorIs(t, ValidateCountry(domain.CountryForm{Name: "Chile", Points: -1}), ErrInvalid)
}

func TestValidatePlanet(t *testing.T) {
	require.NoError(t, ValidatePlanet(domain.PlanetForm{Name: "Neptune", Moons: 16}))
	require.ErrorIs(t, ValidatePlanet(domain.PlanetForm{}), ErrInvalid)
	require.ErrorIs(t, ValidatePlanet(domain.PlanetForm{Name: "Neptune", Moons: -2}), ErrInvalid)
}

func TestServiceRejectsBeforeStorage(t *testing.T) {
	ctx := context.Background()
	db, err := store.Open(ctx, "sqlite", filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := store.NewCollection(db, store.Countries)
	require.NoError(t, repo.Migrate(ctx))
	svc := NewCatalogService[domain.Country, domain.CountryForm](repo, ValidateCountry)

	_, err = svc.Create(ctx, domain.CountryForm{})
	require.ErrorIs(t, err, ErrInvalid)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := svc.Create(ctx, domain.CountryForm{Name: "Mexico", Goals: 3})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, domain.CountryForm{Name: "Mexico", Goals: -3})
	require.ErrorIs(t, err, ErrInvalid)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Goals)

	require.ErrorIs(t, svc.Delete(ctx, created.ID+1), ErrNotFound)
}
