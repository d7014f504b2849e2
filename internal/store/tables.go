package store

import (
	"encoding/json"
	"fmt"

	"github.com/punchamoorthee/catalogops/internal/domain"
)

var Countries = Table[domain.Country, domain.CountryForm]{
	Name:    "countries",
	Columns: []string{"name", "description", "goals", "points", "logo"},
	Types: []string{
		"TEXT NOT NULL",
		"TEXT NOT NULL DEFAULT ''",
		"BIGINT NOT NULL DEFAULT 0",
		"BIGINT NOT NULL DEFAULT 0",
		"TEXT NOT NULL DEFAULT ''",
	},
	Values: func(f domain.CountryForm) ([]any, error) {
		return []any{f.Name, f.Description, f.Goals, f.Points, f.Logo}, nil
	},
	Scan: func(row Scanner) (domain.Country, error) {
		var c domain.Country
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Goals, &c.Points, &c.Logo)
		return c, err
	},
}

// moon_names is kept as a JSON array in a text column so both drivers read
// it the same way.
var Planets = Table[domain.Planet, domain.PlanetForm]{
	Name:    "planets",
	Columns: []string{"name", "description", "moons", "moon_names", "image"},
	Types: []string{
		"TEXT NOT NULL",
		"TEXT NOT NULL DEFAULT ''",
		"BIGINT NOT NULL DEFAULT 0",
		"TEXT NOT NULL DEFAULT '[]'",
		"TEXT NOT NULL DEFAULT ''",
	},
	Values: func(f domain.PlanetForm) ([]any, error) {
		names := f.MoonNames
		if names == nil {
			names = []string{}
		}
		raw, err := json.Marshal(names)
		if err != nil {
			return nil, fmt.Errorf("encode moon_names: %w", err)
		}
		return []any{f.Name, f.Description, f.Moons, string(raw), f.Image}, nil
	},
	Scan: func(row Scanner) (domain.Planet, error) {
		var p domain.Planet
		var names string
		if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Moons, &names, &p.Image); err != nil {
			return p, err
		}
		if err := json.Unmarshal([]byte(names), &p.MoonNames); err != nil {
			return p, fmt.Errorf("decode moon_names of planet %d: %w", p.ID, err)
		}
		return p, nil
	},
}
