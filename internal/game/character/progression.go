package character

import (
	"math"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

// XPPerLevel is the experience required per current level before a gain
// triggers a level-up.
const XPPerLevel = 1000

// Power returns the combat rating of c:
//
//	warrior: strength*2 + armor + level*5
//	mage:    intelligence*3 + mana/2 + level*4
//	rogue:   floor(agility*2 + stealth + level*3*(1+criticalChance))
func (c *Character) Power() int {
	switch st := c.Stats.(type) {
	case WarriorStats:
		return st.Strength*2 + st.Armor + c.Level*5
	case MageStats:
		return st.Intelligence*3 + st.Mana/2 + c.Level*4
	case RogueStats:
		return int(float64(st.Agility*2+st.Stealth) + float64(c.Level*3)*(1+st.CriticalChance))
	}
	return 0
}

// levelUpStats applies the fixed per-class deltas for one level.
func levelUpStats(s Stats) Stats {
	switch st := s.(type) {
	case WarriorStats:
		st.Strength += 3
		st.Armor += 2
		return st
	case MageStats:
		st.Mana += 10
		st.Intelligence += 4
		return st
	case RogueStats:
		st.Agility += 4
		st.Stealth += 2
		// Rounded to avoid float drift across many levels; capped at certainty.
		st.CriticalChance = math.Min(1, math.Round((st.CriticalChance+0.02)*1e6)/1e6)
		return st
	}
	return s
}

// LevelUp raises c by one level and applies the class stat deltas.
//
// Postcondition: On error c is unchanged; a character already at MaxLevel
// yields a FAILED_PRECONDITION error.
func (c *Character) LevelUp() error {
	if c.Level >= MaxLevel {
		return errors.FailedPreconditionf("%s is already at the maximum level %d", c.Name, MaxLevel)
	}
	next := *c
	next.Level++
	next.Stats = levelUpStats(c.Stats)
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// CanLevelUp reports whether accumulated experience meets the threshold for
// the current level.
func (c *Character) CanLevelUp() bool {
	return c.Experience >= c.Level*XPPerLevel && c.Level < MaxLevel
}

// GainExperience adds xp to c. When the new total reaches Level*XPPerLevel a
// single level-up fires, even if the gain would cover several thresholds.
//
// Precondition: xp > 0.
// Postcondition: Returns whether a level-up fired. On error c is unchanged.
func (c *Character) GainExperience(xp int) (bool, error) {
	if xp <= 0 {
		return false, errors.InvalidArgument("experience points must be positive")
	}
	if xp > MaxAttribute-c.Experience {
		return false, errors.InvalidArgumentf("experience cannot exceed %d", MaxAttribute)
	}
	next := *c
	next.Experience += xp
	leveled := false
	if next.CanLevelUp() {
		if err := next.LevelUp(); err != nil {
			return false, err
		}
		leveled = true
	}
	if err := next.Validate(); err != nil {
		return false, err
	}
	*c = next
	return leveled, nil
}

// SetName replaces the name of c after validation.
func (c *Character) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = name
	return nil
}

// SetLevel replaces the level of c after validation.
func (c *Character) SetLevel(level int) error {
	if err := validateLevel(level); err != nil {
		return err
	}
	c.Level = level
	return nil
}

// SetExperience replaces the experience of c after validation.
func (c *Character) SetExperience(xp int) error {
	if err := validateExperience(xp); err != nil {
		return err
	}
	c.Experience = xp
	return nil
}

// SetStats replaces the class stat block of c after validation. The class
// may not change once the character is persisted.
func (c *Character) SetStats(s Stats) error {
	if err := ValidateStats(s); err != nil {
		return err
	}
	if c.ID != 0 && c.Stats != nil && c.Stats.Class() != s.Class() {
		return errors.InvalidArgumentf("cannot change character type from %s to %s", c.Stats.Class(), s.Class())
	}
	c.Stats = s
	return nil
}
