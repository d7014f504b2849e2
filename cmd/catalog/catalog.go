package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/punchamoorthee/catalogops/internal/domain"
	"github.com/punchamoorthee/catalogops/internal/export"
	"github.com/punchamoorthee/catalogops/internal/recordstore"
	"github.com/punchamoorthee/catalogops/internal/remote"
	"github.com/punchamoorthee/catalogops/internal/tui"
	"go.uber.org/zap"
)

// catalog is what the commands need from a collection, whatever its record
// type.
type catalog interface {
	List(ctx context.Context, sorted bool) error
	Show(ctx context.Context, id int64) error
	Create(ctx context.Context, sets []string) error
	Update(ctx context.Context, id int64, sets []string) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, sorted bool) error
	TUI(ctx context.Context) error
}

func openCatalog(out io.Writer) (catalog, error) {
	httpClient := &http.Client{Timeout: clientCfg.Timeout}
	switch domainName {
	case "countries", "paises":
		client := remote.New[domain.Country, domain.CountryForm](clientCfg.BaseURL+clientCfg.CountriesPath, httpClient)
		return newSession[domain.Country, domain.CountryForm](client, "Paises", out, logger), nil
	case "planets", "planetas":
		client := remote.New[domain.Planet, domain.PlanetForm](clientCfg.BaseURL+clientCfg.PlanetsPath, httpClient)
		return newSession[domain.Planet, domain.PlanetForm](client, "Planetas", out, logger), nil
	}
	return nil, fmt.Errorf("unknown domain %q: use countries or planets", domainName)
}

type session[R domain.Record[F], F domain.Form[F]] struct {
	store *recordstore.Store[R, F]
	title string
	out   io.Writer
	log   *zap.Logger
}

func newSession[R domain.Record[F], F domain.Form[F]](coll recordstore.Collection[R, F], title string, out io.Writer, log *zap.Logger) *session[R, F] {
	return &session[R, F]{
		store: recordstore.New(coll, log),
		title: title,
		out:   out,
		log:   log,
	}
}

func (s *session[R, F]) List(ctx context.Context, sorted bool) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	if sorted {
		s.store.SortByRank()
	}

	var blank F
	headers := []string{"ID"}
	for _, f := range blank.Fields() {
		headers = append(headers, strings.ToUpper(f.Label))
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range s.store.Items() {
		row := []string{strconv.FormatInt(r.Key(), 10)}
		for _, f := range r.Form().Fields() {
			row = append(row, f.Value)
		}
		t.Row(row...)
	}
	_, err := fmt.Fprintln(s.out, t.Render())
	return err
}

func (s *session[R, F]) Show(ctx context.Context, id int64) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	r, err := s.store.SelectByID(id)
	if err != nil {
		return err
	}
	s.print(r)
	return nil
}

func (s *session[R, F]) Create(ctx context.Context, sets []string) error {
	form, err := apply(s.store.BeginAdd(), sets)
	if err != nil {
		return err
	}
	saved, err := s.store.Save(ctx, form)
	if err != nil {
		return err
	}
	s.print(saved)
	return nil
}

func (s *session[R, F]) Update(ctx context.Context, id int64, sets []string) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	if _, err := s.store.SelectByID(id); err != nil {
		return err
	}
	form, err := s.store.BeginEdit()
	if err != nil {
		return err
	}
	if form, err = apply(form, sets); err != nil {
		return err
	}
	saved, err := s.store.Save(ctx, form)
	if err != nil {
		return err
	}
	s.print(saved)
	return nil
}

func (s *session[R, F]) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.out, "deleted %d\n", id)
	return err
}

func (s *session[R, F]) Export(ctx context.Context, sorted bool) error {
	if err := s.store.Load(ctx); err != nil {
		return err
	}
	if sorted {
		s.store.SortByRank()
	}
	return export.CSV(s.out, s.store.Items())
}

func (s *session[R, F]) TUI(ctx context.Context) error {
	p := tea.NewProgram(tui.New(s.store, s.title), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (s *session[R, F]) print(r R) {
	fmt.Fprintf(s.out, "%-12s %d\n", "ID", r.Key())
	for _, f := range r.Form().Fields() {
		fmt.Fprintf(s.out, "%-12s %s\n", f.Label, f.Value)
	}
}

// apply sets each key=value pair on the form.
func apply[F domain.Form[F]](form F, sets []string) (F, error) {
	for _, kv := range sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return form, fmt.Errorf("expected key=value, got %q", kv)
		}
		var err error
		if form, err = form.With(strings.TrimSpace(key), value); err != nil {
			return form, err
		}
	}
	return form, nil
}
