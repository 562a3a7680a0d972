// Package character defines the character domain model: a shared root with a
// closed set of class-specific stat blocks, plus validation and progression rules.
package character

import (
	"strings"
	"time"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

// Class identifies a character variant.
type Class string

// Character classes.
const (
	ClassWarrior Class = "WARRIOR"
	ClassMage    Class = "MAGE"
	ClassRogue   Class = "ROGUE"
)

// Classes lists every class in a stable order.
var Classes = []Class{ClassWarrior, ClassMage, ClassRogue}

// ParseClass maps s case-insensitively to a Class.
//
// Postcondition: Returns an INVALID_ARGUMENT error for unknown names.
func ParseClass(s string) (Class, error) {
	switch Class(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassWarrior:
		return ClassWarrior, nil
	case ClassMage:
		return ClassMage, nil
	case ClassRogue:
		return ClassRogue, nil
	}
	return "", errors.InvalidArgumentf("unknown character type %q", s)
}

// Stats is the class-specific payload of a Character. It is implemented only
// by WarriorStats, MageStats, and RogueStats.
type Stats interface {
	Class() Class
	isStats()
}

// WarriorStats holds the warrior stat block.
type WarriorStats struct {
	Strength   int    `json:"strength"`
	Armor      int    `json:"armor"`
	WeaponType string `json:"weaponType"`
}

// MageStats holds the mage stat block.
type MageStats struct {
	Mana         int    `json:"mana"`
	Intelligence int    `json:"intelligence"`
	SpellSchool  string `json:"spellSchool"`
}

// RogueStats holds the rogue stat block. CriticalChance is a probability in [0, 1].
type RogueStats struct {
	Agility        int     `json:"agility"`
	Stealth        int     `json:"stealth"`
	CriticalChance float64 `json:"criticalChance"`
}

func (WarriorStats) Class() Class { return ClassWarrior }
func (MageStats) Class() Class    { return ClassMage }
func (RogueStats) Class() Class   { return ClassRogue }

func (WarriorStats) isStats() {}
func (MageStats) isStats()    {}
func (RogueStats) isStats()   {}

// Character is a persisted game character.
//
// ID and CreatedAt are set by the persistence layer; zero values indicate an
// unsaved character. GuildID is 0 when the character belongs to no guild.
type Character struct {
	ID           int64
	Name         string
	Level        int
	Experience   int
	HealthPoints int
	GuildID      int64
	CreatedAt    time.Time
	Stats        Stats
}

// Class returns the variant tag of c.
func (c *Character) Class() Class {
	if c.Stats == nil {
		return ""
	}
	return c.Stats.Class()
}

// Clone returns a copy of c that shares no mutable state with it.
func (c *Character) Clone() *Character {
	cp := *c
	return &cp
}
