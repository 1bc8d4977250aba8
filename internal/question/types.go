package question

import (
	"strings"

	"github.com/google/uuid"
)

// Category is a fixed topical partition of the question pool.
type Category string

const (
	CategoryPlaces           Category = "Places"
	CategoryArt              Category = "Art"
	CategoryActors           Category = "Actors"
	CategorySingers          Category = "Singers"
	CategoryPainters         Category = "Painters"
	CategoryFootballers      Category = "Footballers"
	CategoryFlags            Category = "Flags"
	CategoryPhilosophers     Category = "Philosophers"
	CategoryNationalAthletes Category = "NationalAthletes"
	CategoryScientists       Category = "Scientists"
)

// Categories lists every supported category in a stable order.
var Categories = []Category{
	CategoryPlaces,
	CategoryArt,
	CategoryActors,
	CategorySingers,
	CategoryPainters,
	CategoryFootballers,
	CategoryFlags,
	CategoryPhilosophers,
	CategoryNationalAthletes,
	CategoryScientists,
}

var statements = map[Category]string{
	CategoryPlaces:           "¿Qué lugar es este?",
	CategoryArt:              "¿Quién pintó esta obra?",
	CategoryActors:           "¿Quién es este actor o actriz?",
	CategorySingers:          "¿Quién es este cantante?",
	CategoryPainters:         "¿Quién es este pintor?",
	CategoryFootballers:      "¿Quién es este futbolista?",
	CategoryFlags:            "¿De qué país es esta bandera?",
	CategoryPhilosophers:     "¿Quién es este filósofo?",
	CategoryNationalAthletes: "¿Qué deporte practica este deportista?",
	CategoryScientists:       "¿Quién es este científico?",
}

// ParseCategory matches raw case-insensitively against the supported set.
func ParseCategory(raw string) (Category, bool) {
	raw = strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(string(c), raw) {
			return c, true
		}
	}
	return "", false
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	_, ok := statements[c]
	return ok
}

// Statement is the prompt shown for every question of the category.
func (c Category) Statement() string {
	return statements[c]
}

// Question is a multiple choice item of the pool. Options holds the correct
// answer exactly once plus its distractors, in display order.
type Question struct {
	ID            uuid.UUID
	Statement     string
	CorrectAnswer string
	Image         string
	Category      Category
	Options       []string
}
