package catalog

import "strconv"

// Book is a catalog record as stored in the document store. Its field set is not
// enforced here; records are returned exactly as stored.
type Book map[string]interface{}

// Filterable fields, in the order predicates are built.
const (
	FieldAge    = "age"
	FieldRating = "rating"
	FieldGenre  = "genre"
	FieldAuthor = "author"
	FieldTitle  = "title"
)

// Filter holds the optional exact-match filters of a listing query. Empty fields impose no constraint.
type Filter struct {
	Age    string
	Rating string
	Genre  string
	Author string
	Title  string
}

// Predicate is a single field equality constraint.
type Predicate struct {
	Field string
	Value string
}

// Predicates returns one predicate per non-empty filter field. All predicates must hold.
func (f Filter) Predicates() []Predicate {
	all := []Predicate{
		{FieldAge, f.Age},
		{FieldRating, f.Rating},
		{FieldGenre, f.Genre},
		{FieldAuthor, f.Author},
		{FieldTitle, f.Title},
	}
	out := make([]Predicate, 0, len(all))
	for _, p := range all {
		if p.Value != "" {
			out = append(out, p)
		}
	}
	return out
}

// Candidates lists the stored values the predicate accepts: the raw string and,
// when it parses as one, its numeric form.
func (p Predicate) Candidates() []interface{} {
	out := []interface{}{p.Value}
	if n, err := strconv.ParseFloat(p.Value, 64); err == nil {
		out = append(out, n)
	}
	return out
}

// Matches reports whether a stored field value satisfies the predicate.
func (p Predicate) Matches(stored interface{}) bool {
	switch v := stored.(type) {
	case string:
		return v == p.Value
	case int:
		return p.matchesNumber(float64(v))
	case int32:
		return p.matchesNumber(float64(v))
	case int64:
		return p.matchesNumber(float64(v))
	case float32:
		return p.matchesNumber(float64(v))
	case float64:
		return p.matchesNumber(v)
	}
	return false
}

func (p Predicate) matchesNumber(v float64) bool {
	n, err := strconv.ParseFloat(p.Value, 64)
	return err == nil && n == v
}
