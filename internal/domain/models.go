package domain

// Record is an entry of a remote collection. F is the form type used to
// create or update it.
type Record[F any] interface {
	Key() int64
	// Rank is the value lists are sorted by, highest first.
	Rank() int64
	Form() F
}

// Form is the editable projection of a record, without its ID.
type Form[F any] interface {
	Fields() []Field
	// With returns a copy of the form with one field set from its text value.
	With(key, value string) (F, error)
}

// Field is one labelled form value in its text representation.
type Field struct {
	Key   string
	Label string
	Value string
}

// Country is a record of the countries collection, ranked by goals.
type Country struct {
	ID          int64  `json:"id" csv:"id"`
	Name        string `json:"name" csv:"name"`
	Description string `json:"description" csv:"description"`
	Goals       int64  `json:"goals" csv:"goals"`
	Points      int64  `json:"points" csv:"points"`
	Logo        string `json:"logo" csv:"logo"`
}

func (c Country) Key() int64  { return c.ID }
func (c Country) Rank() int64 { return c.Goals }

func (c Country) Form() CountryForm {
	return CountryForm{
		Name:        c.Name,
		Description: c.Description,
		Goals:       c.Goals,
		Points:      c.Points,
		Logo:        c.Logo,
	}
}

// CountryForm is the payload of country create and update requests.
type CountryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Goals       int64  `json:"goals"`
	Points      int64  `json:"points"`
	Logo        string `json:"logo"`
}

// Record builds the country the form describes under the given ID.
func (f CountryForm) Record(id int64) Country {
	return Country{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Goals:       f.Goals,
		Points:      f.Points,
		Logo:        f.Logo,
	}
}

// Planet is a record of the planets collection, ranked by moons.
type Planet struct {
	ID          int64    `json:"id" csv:"id"`
	Name        string   `json:"name" csv:"name"`
	Description string   `json:"description" csv:"description"`
	Moons       int64    `json:"moons" csv:"moons"`
	MoonNames   []string `json:"moon_names" csv:"moon_names"`
	Image       string   `json:"image" csv:"image"`
}

func (p Planet) Key() int64  { return p.ID }
func (p Planet) Rank() int64 { return p.Moons }

func (p Planet) Form() PlanetForm {
	return PlanetForm{
		Name:        p.Name,
		Description: p.Description,
		Moons:       p.Moons,
		MoonNames:   append([]string{}, p.MoonNames...),
		Image:       p.Image,
	}
}

// PlanetForm is the payload of planet create and update requests.
type PlanetForm struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Moons       int64    `json:"moons"`
	MoonNames   []string `json:"moon_names"`
	Image       string   `json:"image"`
}

// Record builds the planet the form describes under the given ID.
func (f PlanetForm) Record(id int64) Planet {
	return Planet{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Moons:       f.Moons,
		MoonNames:   append([]string{}, f.MoonNames...),
		Image:       f.Image,
	}
}
