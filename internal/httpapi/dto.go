package httpapi

import (
	"time"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
)

// characterRequest is the body of character create and update requests.
// A missing stat block for the requested type is filled with the class
// defaults.
type characterRequest struct {
	Name         string                  `json:"name"`
	Type         string                  `json:"type"`
	Level        *int                    `json:"level"`
	Experience   int                     `json:"experience"`
	HealthPoints *int                    `json:"healthPoints"`
	Warrior      *character.WarriorStats `json:"warrior"`
	Mage         *character.MageStats    `json:"mage"`
	Rogue        *character.RogueStats   `json:"rogue"`
}

func (req characterRequest) toCharacter() (*character.Character, error) {
	class, err := character.ParseClass(req.Type)
	if err != nil {
		return nil, err
	}

	var stats character.Stats
	blocks := 0
	if req.Warrior != nil {
		blocks++
		stats = *req.Warrior
	}
	if req.Mage != nil {
		blocks++
		stats = *req.Mage
	}
	if req.Rogue != nil {
		blocks++
		stats = *req.Rogue
	}
	switch {
	case blocks > 1:
		return nil, errors.InvalidArgument("at most one stat block may be given")
	case blocks == 0:
		if stats, err = character.DefaultStats(class); err != nil {
			return nil, err
		}
	case stats.Class() != class:
		return nil, errors.InvalidArgumentf("%s stats given for a %s character", stats.Class(), class)
	}

	c := &character.Character{
		Name:         req.Name,
		Level:        character.MinLevel,
		Experience:   req.Experience,
		HealthPoints: character.DefaultHealthPoints,
		Stats:        stats,
	}
	if req.Level != nil {
		c.Level = *req.Level
	}
	if req.HealthPoints != nil {
		c.HealthPoints = *req.HealthPoints
	}
	return c, nil
}

// characterResponse is the rendered form of a character.
type characterResponse struct {
	ID           int64                   `json:"id"`
	Name         string                  `json:"name"`
	Type         character.Class         `json:"type"`
	Level        int                     `json:"level"`
	Experience   int                     `json:"experience"`
	HealthPoints int                     `json:"healthPoints"`
	GuildID      *int64                  `json:"guildId"`
	CreatedAt    time.Time               `json:"createdDate"`
	Power        int                     `json:"power"`
	Warrior      *character.WarriorStats `json:"warrior,omitempty"`
	Mage         *character.MageStats    `json:"mage,omitempty"`
	Rogue        *character.RogueStats   `json:"rogue,omitempty"`
}

func newCharacterResponse(c *character.Character) characterResponse {
	out := characterResponse{
		ID:           c.ID,
		Name:         c.Name,
		Type:         c.Class(),
		Level:        c.Level,
		Experience:   c.Experience,
		HealthPoints: c.HealthPoints,
		CreatedAt:    c.CreatedAt,
		Power:        c.Power(),
	}
	if c.GuildID != 0 {
		id := c.GuildID
		out.GuildID = &id
	}
	switch st := c.Stats.(type) {
	case character.WarriorStats:
		out.Warrior = &st
	case character.MageStats:
		out.Mage = &st
	case character.RogueStats:
		out.Rogue = &st
	}
	return out
}

func newCharacterResponses(cs []*character.Character) []characterResponse {
	out := make([]characterResponse, len(cs))
	for i, c := range cs {
		out[i] = newCharacterResponse(c)
	}
	return out
}

type guildRequest struct {
	Name  string `json:"guildName"`
	Level *int   `json:"level"`
}

func (req guildRequest) toGuild() *guild.Guild {
	g := &guild.Guild{Name: req.Name, Level: guild.MinLevel}
	if req.Level != nil {
		g.Level = *req.Level
	}
	return g
}

type experienceRequest struct {
	XP int `json:"xp"`
}

type experienceResponse struct {
	Character characterResponse `json:"character"`
	LeveledUp bool              `json:"leveledUp"`
}

type sparResponse struct {
	Attacker characterResponse `json:"attacker"`
	Defender characterResponse `json:"defender"`
	Attack   int               `json:"attack"`
	Defense  int               `json:"defense"`
	Damage   int               `json:"damage"`
	Critical bool              `json:"critical"`
}

type membershipResponse struct {
	Message string       `json:"message"`
	Guild   *guild.Guild `json:"guild"`
}
