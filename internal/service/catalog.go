package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/store"
)

var (
	ErrNotFound = store.ErrNotFound
	ErrInvalid  = errors.New("invalid record")
)

// Repository is the storage a catalog service writes through.
type Repository[R any, F any] interface {
	List(ctx context.Context) ([]R, error)
	Get(ctx context.Context, id int64) (R, error)
	Create(ctx context.Context, form F) (R, error)
	Update(ctx context.Context, id int64, form F) (R, error)
	Delete(ctx context.Context, id int64) error
}

// CatalogService validates forms before they reach the repository.
type CatalogService[R any, F any] struct {
	repo     Repository[R, F]
	validate func(F) error
}

func NewCatalogService[R any, F any](repo Repository[R, F], validate func(F) error) *CatalogService[R, F] {
	return &CatalogService[R, F]{repo: repo, validate: validate}
}

func (s *CatalogService[R, F]) List(ctx context.Context) ([]R, error) {
	return s.repo.List(ctx)
}

func (s *CatalogService[R, F]) Get(ctx context.Context, id int64) (R, error) {
	return s.repo.Get(ctx, id)
}

func (s *CatalogService[R, F]) Create(ctx context.Context, form F) (R, error) {
	if err := s.validate(form); err != nil {
		var zero R
		return zero, err
	}
	return s.repo.Create(ctx, form)
}

func (s *CatalogService[R, F]) Update(ctx context.Context, id int64, form F) (R, error) {
	if err := s.validate(form); err != nil {
		var zero R
		return zero, err
	}
	return s.repo.Update(ctx, id, form)
}

func (s *CatalogService[R, F]) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func ValidateCountry(f domain.CountryForm) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if f.Goals < 0 || f.Points < 0 {
		return fmt.Errorf("%w: goals and points cannot be negative", ErrInvalid)
	}
	return nil
}

func ValidatePlanet(f domain.PlanetForm) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if f.Moons < 0 {
		return fmt.Errorf("%w: moons cannot be negative", ErrInvalid)
	}
	return nil
}
