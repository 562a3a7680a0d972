package postgres

import (
	"math"
	"slices"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
)

// attributeColumns is the fixed column layout of character_attributes,
// excluding the character_id key.
var attributeColumns = []string{
	"strength", "armor", "weapon_type",
	"mana", "intelligence", "spell_school",
	"agility", "stealth", "critical_chance",
}

// attributeRow is one character_attributes row. Only the columns of the
// owning character's class are valid; the rest are NULL.
type attributeRow struct {
	Strength       pgtype.Int4
	Armor          pgtype.Int4
	WeaponType     pgtype.Text
	Mana           pgtype.Int4
	Intelligence   pgtype.Int4
	SpellSchool    pgtype.Text
	Agility        pgtype.Int4
	Stealth        pgtype.Int4
	CriticalChance pgtype.Float8
}

// args returns the row values in attributeColumns order.
func (a *attributeRow) args() []any {
	return []any{
		a.Strength, a.Armor, a.WeaponType,
		a.Mana, a.Intelligence, a.SpellSchool,
		a.Agility, a.Stealth, a.CriticalChance,
	}
}

// targets returns scan destinations in attributeColumns order.
func (a *attributeRow) targets() []any {
	return []any{
		&a.Strength, &a.Armor, &a.WeaponType,
		&a.Mana, &a.Intelligence, &a.SpellSchool,
		&a.Agility, &a.Stealth, &a.CriticalChance,
	}
}

// populated returns the names of the non-NULL columns.
func (a *attributeRow) populated() []string {
	valid := []bool{
		a.Strength.Valid, a.Armor.Valid, a.WeaponType.Valid,
		a.Mana.Valid, a.Intelligence.Valid, a.SpellSchool.Valid,
		a.Agility.Valid, a.Stealth.Valid, a.CriticalChance.Valid,
	}
	var out []string
	for i, v := range valid {
		if v {
			out = append(out, attributeColumns[i])
		}
	}
	return out
}

// variantMapping binds a class to the attribute columns it owns and the
// conversions between its stat block and an attributeRow. A row decodes
// only when exactly its class's columns are populated.
type variantMapping struct {
	columns []string
	encode  func(character.Stats) (attributeRow, error)
	decode  func(attributeRow) character.Stats
}

var variants = map[character.Class]variantMapping{
	character.ClassWarrior: {
		columns: []string{"strength", "armor", "weapon_type"},
		encode: func(s character.Stats) (attributeRow, error) {
			st := s.(character.WarriorStats)
			var (
				row attributeRow
				err error
			)
			if row.Strength, err = int4("strength", st.Strength); err != nil {
				return attributeRow{}, err
			}
			if row.Armor, err = int4("armor", st.Armor); err != nil {
				return attributeRow{}, err
			}
			row.WeaponType = pgtype.Text{String: st.WeaponType, Valid: true}
			return row, nil
		},
		decode: func(a attributeRow) character.Stats {
			return character.WarriorStats{
				Strength:   int(a.Strength.Int32),
				Armor:      int(a.Armor.Int32),
				WeaponType: a.WeaponType.String,
			}
		},
	},
	character.ClassMage: {
		columns: []string{"mana", "intelligence", "spell_school"},
		encode: func(s character.Stats) (attributeRow, error) {
			st := s.(character.MageStats)
			var (
				row attributeRow
				err error
			)
			if row.Mana, err = int4("mana", st.Mana); err != nil {
				return attributeRow{}, err
			}
			if row.Intelligence, err = int4("intelligence", st.Intelligence); err != nil {
				return attributeRow{}, err
			}
			row.SpellSchool = pgtype.Text{String: st.SpellSchool, Valid: true}
			return row, nil
		},
		decode: func(a attributeRow) character.Stats {
			return character.MageStats{
				Mana:         int(a.Mana.Int32),
				Intelligence: int(a.Intelligence.Int32),
				SpellSchool:  a.SpellSchool.String,
			}
		},
	},
	character.ClassRogue: {
		columns: []string{"agility", "stealth", "critical_chance"},
		encode: func(s character.Stats) (attributeRow, error) {
			st := s.(character.RogueStats)
			var (
				row attributeRow
				err error
			)
			if row.Agility, err = int4("agility", st.Agility); err != nil {
				return attributeRow{}, err
			}
			if row.Stealth, err = int4("stealth", st.Stealth); err != nil {
				return attributeRow{}, err
			}
			row.CriticalChance = pgtype.Float8{Float64: st.CriticalChance, Valid: true}
			return row, nil
		},
		decode: func(a attributeRow) character.Stats {
			return character.RogueStats{
				Agility:        int(a.Agility.Int32),
				Stealth:        int(a.Stealth.Int32),
				CriticalChance: a.CriticalChance.Float64,
			}
		},
	},
}

// encodeStats maps a stat block to its attribute row.
//
// Postcondition: Returns INVALID_ARGUMENT for nil stats, an unknown class, or
// a value that does not fit its column.
func encodeStats(s character.Stats) (attributeRow, error) {
	if s == nil {
		return attributeRow{}, errors.InvalidArgument("character stats are required")
	}
	m, ok := variants[s.Class()]
	if !ok {
		return attributeRow{}, errors.InvalidArgumentf("unsupported character type %q", s.Class())
	}
	return m.encode(s)
}

// decodeStats rebuilds the stat block of the given class from row.
func decodeStats(class string, row attributeRow) (character.Stats, error) {
	m, ok := variants[character.Class(class)]
	if !ok {
		return nil, errors.Internal("unknown character_type " + class)
	}
	if !slices.Equal(row.populated(), m.columns) {
		return nil, errors.Newf(errors.CodeInternal,
			"character_attributes row for %s has columns %v, want %v", class, row.populated(), m.columns)
	}
	return m.decode(row), nil
}

// int4 converts v to an INTEGER column value without wrapping.
func int4(field string, v int) (pgtype.Int4, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return pgtype.Int4{}, errors.InvalidArgumentf("%s %d is out of range", field, v)
	}
	return pgtype.Int4{Int32: int32(v), Valid: true}, nil
}
