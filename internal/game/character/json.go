package character

import (
	"encoding/json"
	"fmt"
	"time"
)

// characterJSON is the serialized form of a Character. Exactly one of the
// stat blocks is present, selected by Type.
type characterJSON struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Type         Class         `json:"type"`
	Level        int           `json:"level"`
	Experience   int           `json:"experience"`
	HealthPoints int           `json:"healthPoints"`
	GuildID      int64         `json:"guildId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Warrior      *WarriorStats `json:"warrior,omitempty"`
	Mage         *MageStats    `json:"mage,omitempty"`
	Rogue        *RogueStats   `json:"rogue,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c *Character) MarshalJSON() ([]byte, error) {
	out := characterJSON{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Class(),
		Level:        c.Level,
		Experience:   c.Experience,
		HealthPoints: c.HealthPoints,
		GuildID:      c.GuildID,
		CreatedAt:    c.CreatedAt,
	}
	switch st := c.Stats.(type) {
	case WarriorStats:
		out.Warrior = &st
	case MageStats:
		out.Mage = &st
	case RogueStats:
		out.Rogue = &st
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The decoded value is not validated.
func (c *Character) UnmarshalJSON(data []byte) error {
	var in characterJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var stats Stats
	switch in.Type {
	case ClassWarrior:
		if in.Warrior == nil {
			return fmt.Errorf("character %d: missing warrior stats", in.ID)
		}
		stats = *in.Warrior
	case ClassMage:
		if in.Mage == nil {
			return fmt.Errorf("character %d: missing mage stats", in.ID)
		}
		stats = *in.Mage
	case ClassRogue:
		if in.Rogue == nil {
			return fmt.Errorf("character %d: missing rogue stats", in.ID)
		}
		stats = *in.Rogue
	default:
		return fmt.Errorf("character %d: unknown type %q", in.ID, in.Type)
	}
	*c = Character{
		ID:           in.ID,
		Name:         in.Name,
		Level:        in.Level,
		Experience:   in.Experience,
		HealthPoints: in.HealthPoints,
		GuildID:      in.GuildID,
		CreatedAt:    in.CreatedAt,
		Stats:        stats,
	}
	return nil
}
