package character

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

// SortKey selects a roster ordering.
type SortKey string

// Roster orderings. Name sorts ascending; the numeric keys sort descending.
const (
	SortNone       SortKey = ""
	SortName       SortKey = "name"
	SortLevel      SortKey = "level"
	SortExperience SortKey = "experience"
	SortPower      SortKey = "power"
)

// ParseSortKey validates s as a SortKey. The empty string means no ordering.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortName, SortLevel, SortExperience, SortPower:
		return k, nil
	}
	return "", errors.InvalidArgumentf("unknown sort key %q", s)
}

// Filter narrows a roster. Zero values disable each criterion.
type Filter struct {
	Class    Class
	MinLevel int
}

// Query returns a new slice holding the characters of roster that match f,
// ordered by key. roster itself is not reordered.
func Query(roster []*Character, f Filter, key SortKey) []*Character {
	out := make([]*Character, 0, len(roster))
	for _, c := range roster {
		if f.Class != "" && c.Class() != f.Class {
			continue
		}
		if c.Level < f.MinLevel {
			continue
		}
		out = append(out, c)
	}

	switch key {
	case SortName:
		slices.SortStableFunc(out, func(a, b *Character) int { return cmp.Compare(a.Name, b.Name) })
	case SortLevel:
		slices.SortStableFunc(out, func(a, b *Character) int { return cmp.Compare(b.Level, a.Level) })
	case SortExperience:
		slices.SortStableFunc(out, func(a, b *Character) int { return cmp.Compare(b.Experience, a.Experience) })
	case SortPower:
		slices.SortStableFunc(out, func(a, b *Character) int { return cmp.Compare(b.Power(), a.Power()) })
	}
	return out
}
