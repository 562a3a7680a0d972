package character

import "github.com/cory-johannsen/guildhall/internal/errors"

// New constructs an unsaved character of the class carried by stats.
// Experience starts at 0 and health at DefaultHealthPoints.
//
// Precondition: stats must be one of WarriorStats, MageStats, RogueStats.
// Postcondition: Returns a valid Character, or a non-nil INVALID_ARGUMENT error.
func New(name string, level int, stats Stats) (*Character, error) {
	c := &Character{
		Name:         name,
		Level:        level,
		HealthPoints: DefaultHealthPoints,
		Stats:        stats,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWarrior constructs an unsaved warrior.
func NewWarrior(name string, level, strength, armor int, weaponType string) (*Character, error) {
	return New(name, level, WarriorStats{Strength: strength, Armor: armor, WeaponType: weaponType})
}

// NewMage constructs an unsaved mage.
func NewMage(name string, level, mana, intelligence int, spellSchool string) (*Character, error) {
	return New(name, level, MageStats{Mana: mana, Intelligence: intelligence, SpellSchool: spellSchool})
}

// NewRogue constructs an unsaved rogue.
func NewRogue(name string, level, agility, stealth int, criticalChance float64) (*Character, error) {
	return New(name, level, RogueStats{Agility: agility, Stealth: stealth, CriticalChance: criticalChance})
}

// DefaultStats returns the starting stat block for class, used when a
// create request does not supply one.
func DefaultStats(class Class) (Stats, error) {
	switch class {
	case ClassWarrior:
		return WarriorStats{Strength: 50, Armor: 30, WeaponType: "Sword"}, nil
	case ClassMage:
		return MageStats{Mana: 200, Intelligence: 45, SpellSchool: "Fire"}, nil
	case ClassRogue:
		return RogueStats{Agility: 40, Stealth: 35, CriticalChance: 0.25}, nil
	}
	return nil, errors.InvalidArgumentf("unknown character type %q", class)
}
