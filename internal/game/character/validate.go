package character

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/cory-johannsen/guildhall/internal/errors"
)

// Field bounds shared by every class.
const (
	MinNameLength = 3
	MaxNameLength = 50
	MinLevel      = 1
	MaxLevel      = 100

	DefaultHealthPoints = 100

	// MaxAttribute bounds every integer counter and stat; they are stored as
	// 32-bit INTEGER columns.
	MaxAttribute = math.MaxInt32
	// MaxLabelLength bounds WeaponType and SpellSchool.
	MaxLabelLength = 50
)

// Validate checks every invariant of c.
//
// Postcondition: Returns nil or an INVALID_ARGUMENT error naming the first
// violated field.
func (c *Character) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if err := validateLevel(c.Level); err != nil {
		return err
	}
	if err := validateExperience(c.Experience); err != nil {
		return err
	}
	if c.HealthPoints < 0 || c.HealthPoints > MaxAttribute {
		return errors.InvalidArgumentf("health points must be between 0 and %d", MaxAttribute)
	}
	if c.GuildID < 0 {
		return errors.InvalidArgument("guild id cannot be negative")
	}
	return ValidateStats(c.Stats)
}

// ValidateStats checks the class-specific ranges of s.
func ValidateStats(s Stats) error {
	switch st := s.(type) {
	case WarriorStats:
		if st.Strength <= 0 {
			return errors.InvalidArgument("strength must be greater than 0")
		}
		if st.Armor < 0 {
			return errors.InvalidArgument("armor cannot be negative")
		}
		if err := atMost("strength", st.Strength); err != nil {
			return err
		}
		if err := atMost("armor", st.Armor); err != nil {
			return err
		}
		return validateLabel("weapon type", st.WeaponType)
	case MageStats:
		if st.Mana <= 0 {
			return errors.InvalidArgument("mana must be greater than 0")
		}
		if st.Intelligence <= 0 {
			return errors.InvalidArgument("intelligence must be greater than 0")
		}
		if err := atMost("mana", st.Mana); err != nil {
			return err
		}
		if err := atMost("intelligence", st.Intelligence); err != nil {
			return err
		}
		return validateLabel("spell school", st.SpellSchool)
	case RogueStats:
		if st.Agility <= 0 {
			return errors.InvalidArgument("agility must be greater than 0")
		}
		if st.Stealth <= 0 {
			return errors.InvalidArgument("stealth must be greater than 0")
		}
		if err := atMost("agility", st.Agility); err != nil {
			return err
		}
		if err := atMost("stealth", st.Stealth); err != nil {
			return err
		}
		if st.CriticalChance < 0 || st.CriticalChance > 1 {
			return errors.InvalidArgument("critical chance must be between 0 and 1")
		}
	case nil:
		return errors.InvalidArgument("character stats are required")
	default:
		return errors.InvalidArgumentf("unsupported stats type %T", s)
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.InvalidArgument("name cannot be blank")
	}
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		return errors.InvalidArgumentf("name must be between %d and %d characters", MinNameLength, MaxNameLength)
	}
	return nil
}

func validateLevel(level int) error {
	if level < MinLevel || level > MaxLevel {
		return errors.InvalidArgumentf("level must be between %d and %d", MinLevel, MaxLevel)
	}
	return nil
}

func validateExperience(xp int) error {
	if xp < 0 || xp > MaxAttribute {
		return errors.InvalidArgumentf("experience must be between 0 and %d", MaxAttribute)
	}
	return nil
}

func atMost(field string, v int) error {
	if v > MaxAttribute {
		return errors.InvalidArgumentf("%s cannot exceed %d", field, MaxAttribute)
	}
	return nil
}

func validateLabel(field, v string) error {
	if utf8.RuneCountInString(v) > MaxLabelLength {
		return errors.InvalidArgumentf("%s cannot exceed %d characters", field, MaxLabelLength)
	}
	return nil
}
