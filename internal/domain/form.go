package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid field value")
)

func (f CountryForm) Fields() []Field {
	return []Field{
		{Key: "name", Label: "Name", Value: f.Name},
		{Key: "description", Label: "Description", Value: f.Description},
		{Key: "goals", Label: "Goals", Value: strconv.FormatInt(f.Goals, 10)},
		{Key: "points", Label: "Points", Value: strconv.FormatInt(f.Points, 10)},
		{Key: "logo", Label: "Logo URL", Value: f.Logo},
	}
}

func (f CountryForm) With(key, value string) (CountryForm, error) {
	var err error
	switch key {
	case "name":
		f.Name = value
	case "description":
		f.Description = value
	case "goals":
		f.Goals, err = parseCount(key, value)
	case "points":
		f.Points, err = parseCount(key, value)
	case "logo":
		f.Logo = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f, err
}

func (f PlanetForm) Fields() []Field {
	return []Field{
		{Key: "name", Label: "Name", Value: f.Name},
		{Key: "description", Label: "Description", Value: f.Description},
		{Key: "moons", Label: "Moons", Value: strconv.FormatInt(f.Moons, 10)},
		{Key: "moon_names", Label: "Moon names", Value: strings.Join(f.MoonNames, ", ")},
		{Key: "image", Label: "Image URL", Value: f.Image},
	}
}

func (f PlanetForm) With(key, value string) (PlanetForm, error) {
	var err error
	switch key {
	case "name":
		f.Name = value
	case "description":
		f.Description = value
	case "moons":
		f.Moons, err = parseCount(key, value)
	case "moon_names":
		f.MoonNames = SplitList(value)
	case "image":
		f.Image = value
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f, err
}

// MarshalJSON always emits moon_names as an array.
func (f PlanetForm) MarshalJSON() ([]byte, error) {
	type plain PlanetForm
	if f.MoonNames == nil {
		f.MoonNames = []string{}
	}
	return json.Marshal(plain(f))
}

func (p Planet) MarshalJSON() ([]byte, error) {
	type plain Planet
	if p.MoonNames == nil {
		p.MoonNames = []string{}
	}
	return json.Marshal(plain(p))
}

// SplitList parses a comma separated list, dropping blank entries.
func SplitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Blank values count as zero.
func parseCount(key, value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", ErrInvalidValue, key, value)
	}
	return n, nil
}
