// Package guild defines the guild aggregate.
package guild

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

// Name and level bounds.
const (
	MinNameLength = 3
	MaxNameLength = 100
	MinLevel      = 1
)

// Guild is a named group of characters.
//
// MemberCount is derived: it always equals the number of characters whose
// GuildID references this guild. Only the guild store changes it.
type Guild struct {
	ID          int64     `json:"id"`
	Name        string    `json:"guildName"`
	Level       int       `json:"level"`
	MemberCount int       `json:"memberCount"`
	CreatedAt   time.Time `json:"createdDate"`
}

// New constructs an unsaved level 1 guild with no members.
//
// Postcondition: Returns a valid Guild, or a non-nil INVALID_ARGUMENT error.
func New(name string) (*Guild, error) {
	g := &Guild{Name: name, Level: MinLevel}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks every invariant of g.
func (g *Guild) Validate() error {
	if err := validateName(g.Name); err != nil {
		return err
	}
	if g.Level < MinLevel {
		return errors.InvalidArgumentf("guild level must be at least %d", MinLevel)
	}
	if g.MemberCount < 0 {
		return errors.InvalidArgument("member count cannot be negative")
	}
	return nil
}

// SetName replaces the name of g after validation.
func (g *Guild) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	g.Name = name
	return nil
}

// SetLevel replaces the level of g after validation.
func (g *Guild) SetLevel(level int) error {
	if level < MinLevel {
		return errors.InvalidArgumentf("guild level must be at least %d", MinLevel)
	}
	g.Level = level
	return nil
}

// LevelUp raises g by one level.
func (g *Guild) LevelUp() {
	g.Level++
}

// SameName reports whether a and b name the same guild, ignoring case and
// surrounding whitespace.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("guild name cannot be empty")
	}
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return errors.InvalidArgumentf("guild name must be between %d and %d characters", MinNameLength, MaxNameLength)
	}
	return nil
}
