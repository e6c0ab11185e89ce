package filter

import (
	"strings"

	"github.com/byxorna/cafes/pkg/types/v1"
)

// Amenities are independent on/off narrowing criteria.
type Amenities struct {
	WiFi bool
	AC   bool
	// Sockets keeps only cafes with medium or high socket availability
	Sockets bool
}

// State is everything the user has chosen to narrow the cafe list by. The zero
// value has no active criteria.
type State struct {
	SearchQuery     string
	SelectedPurpose v1.Purpose
	Amenities       Amenities
}

// Result is the outcome of one filter pass.
type Result struct {
	Cafes []*v1.Cafe
	Count int
}

// Predicate reports whether a cafe should be kept.
type Predicate func(*v1.Cafe) bool

// Apply filters records by state. Records are never modified and the result
// keeps store order.
func Apply(records []*v1.Cafe, state State) Result {
	cafes := Filter(records, state)
	return Result{Cafes: cafes, Count: len(cafes)}
}

func Filter(records []*v1.Cafe, state State) []*v1.Cafe {
	return Narrow(records, Predicates(state)...)
}

// Predicates returns one predicate per active criterion in state. An empty
// slice means nothing is filtered out.
func Predicates(state State) []Predicate {
	preds := []Predicate{}

	if q := strings.TrimSpace(state.SearchQuery); q != "" {
		preds = append(preds, MatchesSearch(q))
	}
	if state.SelectedPurpose != "" {
		preds = append(preds, IsBestFor(state.SelectedPurpose))
	}
	if state.Amenities.WiFi {
		preds = append(preds, HasWiFi)
	}
	if state.Amenities.AC {
		preds = append(preds, HasAC)
	}
	if state.Amenities.Sockets {
		preds = append(preds, HasCharging)
	}

	return preds
}

// Narrow applies each predicate as a successive pass. The order of preds does
// not change the outcome.
func Narrow(records []*v1.Cafe, preds ...Predicate) []*v1.Cafe {
	narrowed := make([]*v1.Cafe, len(records))
	copy(narrowed, records)

	for _, keep := range preds {
		next := make([]*v1.Cafe, 0, len(narrowed))
		for _, c := range narrowed {
			if keep(c) {
				next = append(next, c)
			}
		}
		narrowed = next
	}
	return narrowed
}

// MatchesSearch does a case-insensitive substring match against the name,
// city and address. Missing city or address never match.
func MatchesSearch(query string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(query))
	return func(c *v1.Cafe) bool {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return true
		}
		return containsOptional(c.City, needle) || containsOptional(c.Address, needle)
	}
}

func containsOptional(field *string, needle string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), needle)
}

func IsBestFor(p v1.Purpose) Predicate {
	return func(c *v1.Cafe) bool { return c.IsBestFor(p) }
}

func HasWiFi(c *v1.Cafe) bool     { return c.WiFi }
func HasAC(c *v1.Cafe) bool       { return c.AC }
func HasCharging(c *v1.Cafe) bool { return c.HasCharging() }
