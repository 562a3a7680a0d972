// Package seed loads a YAML roster of guilds and characters and applies it
// through the services.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
)

// yamlRoster is the top-level YAML structure for roster files.
type yamlRoster struct {
	Guilds     []yamlGuild     `yaml:"guilds"`
	Characters []yamlCharacter `yaml:"characters"`
}

type yamlGuild struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// yamlCharacter is a roster character. At most one stat block may be set;
// when none is, the class defaults apply.
type yamlCharacter struct {
	Name       string       `yaml:"name"`
	Type       string       `yaml:"type"`
	Level      int          `yaml:"level"`
	Experience int          `yaml:"experience"`
	Guild      string       `yaml:"guild"`
	Warrior    *yamlWarrior `yaml:"warrior"`
	Mage       *yamlMage    `yaml:"mage"`
	Rogue      *yamlRogue   `yaml:"rogue"`
}

type yamlWarrior struct {
	Strength   int    `yaml:"strength"`
	Armor      int    `yaml:"armor"`
	WeaponType string `yaml:"weapon_type"`
}

type yamlMage struct {
	Mana         int    `yaml:"mana"`
	Intelligence int    `yaml:"intelligence"`
	SpellSchool  string `yaml:"spell_school"`
}

type yamlRogue struct {
	Agility        int     `yaml:"agility"`
	Stealth        int     `yaml:"stealth"`
	CriticalChance float64 `yaml:"critical_chance"`
}

// Entry is one roster character together with the guild it joins.
type Entry struct {
	Character *character.Character
	// Guild names the guild to join; empty means none.
	Guild string
}

// Roster is a validated seed roster.
type Roster struct {
	Guilds     []*guild.Guild
	Characters []Entry
}

// Load reads and validates a roster YAML file.
//
// Precondition: path must point to a readable YAML roster.
// Postcondition: Returns a validated Roster or a non-nil error.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file %s: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a roster from YAML bytes. Every character
// and guild is validated, and every guild a character names must be
// declared in the same roster.
func LoadBytes(data []byte) (*Roster, error) {
	var file yamlRoster
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}

	r := &Roster{}
	declared := make(map[string]bool, len(file.Guilds))
	for i, yg := range file.Guilds {
		g, err := guild.New(yg.Name)
		if err != nil {
			return nil, fmt.Errorf("guild %d: %w", i, err)
		}
		if yg.Level != 0 {
			if err := g.SetLevel(yg.Level); err != nil {
				return nil, fmt.Errorf("guild %q: %w", yg.Name, err)
			}
		}
		declared[foldName(g.Name)] = true
		r.Guilds = append(r.Guilds, g)
	}

	for i, yc := range file.Characters {
		c, err := yc.toCharacter()
		if err != nil {
			return nil, fmt.Errorf("character %d (%s): %w", i, yc.Name, err)
		}
		if yc.Guild != "" && !declared[foldName(yc.Guild)] {
			return nil, fmt.Errorf("character %q: guild %q is not declared", yc.Name, yc.Guild)
		}
		r.Characters = append(r.Characters, Entry{Character: c, Guild: yc.Guild})
	}
	return r, nil
}

func (yc yamlCharacter) toCharacter() (*character.Character, error) {
	class, err := character.ParseClass(yc.Type)
	if err != nil {
		return nil, err
	}

	var stats character.Stats
	switch {
	case yc.Warrior != nil && class == character.ClassWarrior:
		stats = character.WarriorStats{Strength: yc.Warrior.Strength, Armor: yc.Warrior.Armor, WeaponType: yc.Warrior.WeaponType}
	case yc.Mage != nil && class == character.ClassMage:
		stats = character.MageStats{Mana: yc.Mage.Mana, Intelligence: yc.Mage.Intelligence, SpellSchool: yc.Mage.SpellSchool}
	case yc.Rogue != nil && class == character.ClassRogue:
		stats = character.RogueStats{Agility: yc.Rogue.Agility, Stealth: yc.Rogue.Stealth, CriticalChance: yc.Rogue.CriticalChance}
	case yc.Warrior != nil || yc.Mage != nil || yc.Rogue != nil:
		return nil, errors.InvalidArgumentf("stat block does not match type %s", class)
	default:
		if stats, err = character.DefaultStats(class); err != nil {
			return nil, err
		}
	}

	level := yc.Level
	if level == 0 {
		level = character.MinLevel
	}
	c, err := character.New(yc.Name, level, stats)
	if err != nil {
		return nil, err
	}
	if err := c.SetExperience(yc.Experience); err != nil {
		return nil, err
	}
	return c, nil
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Characters is the character surface used by Apply.
type Characters interface {
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	List(ctx context.Context) ([]*character.Character, error)
}

// Guilds is the guild surface used by Apply.
type Guilds interface {
	Create(ctx context.Context, g *guild.Guild) (*guild.Guild, error)
	List(ctx context.Context) ([]*guild.Guild, error)
	AddCharacter(ctx context.Context, guildID, characterID int64) (*guild.Guild, error)
}

// Result summarizes an Apply run.
type Result struct {
	GuildsCreated     int
	CharactersCreated int
	Skipped           int
	Memberships       int
}

// Apply creates the roster's guilds, then its characters, then their
// memberships. Entries whose name already exists are skipped and reused for
// membership, so applying a roster twice is harmless.
//
// Precondition: r must come from Load or LoadBytes.
// Postcondition: Returns the counts of what was written, or the first
// error other than ALREADY_EXISTS.
func Apply(ctx context.Context, r *Roster, chars Characters, guilds Guilds, logger *zap.Logger) (Result, error) {
	var res Result

	for _, g := range r.Guilds {
		_, err := guilds.Create(ctx, g)
		switch {
		case err == nil:
			res.GuildsCreated++
		case errors.IsAlreadyExists(err):
			res.Skipped++
			logger.Info("guild exists, skipping", zap.String("name", g.Name))
		default:
			return res, fmt.Errorf("seeding guild %q: %w", g.Name, err)
		}
	}

	for _, e := range r.Characters {
		_, err := chars.Create(ctx, e.Character)
		switch {
		case err == nil:
			res.CharactersCreated++
		case errors.IsAlreadyExists(err):
			res.Skipped++
			logger.Info("character exists, skipping", zap.String("name", e.Character.Name))
		default:
			return res, fmt.Errorf("seeding character %q: %w", e.Character.Name, err)
		}
	}

	if err := applyMemberships(ctx, r, chars, guilds, &res); err != nil {
		return res, err
	}
	logger.Info("roster applied",
		zap.Int("guilds_created", res.GuildsCreated),
		zap.Int("characters_created", res.CharactersCreated),
		zap.Int("skipped", res.Skipped),
		zap.Int("memberships", res.Memberships),
	)
	return res, nil
}

func applyMemberships(ctx context.Context, r *Roster, chars Characters, guilds Guilds, res *Result) error {
	gs, err := guilds.List(ctx)
	if err != nil {
		return fmt.Errorf("listing guilds: %w", err)
	}
	guildIDs := make(map[string]int64, len(gs))
	for _, g := range gs {
		guildIDs[foldName(g.Name)] = g.ID
	}
	cs, err := chars.List(ctx)
	if err != nil {
		return fmt.Errorf("listing characters: %w", err)
	}
	charIDs := make(map[string]*character.Character, len(cs))
	for _, c := range cs {
		charIDs[foldName(c.Name)] = c
	}

	for _, e := range r.Characters {
		if e.Guild == "" {
			continue
		}
		c, ok := charIDs[foldName(e.Character.Name)]
		if !ok {
			return fmt.Errorf("character %q missing after seeding", e.Character.Name)
		}
		gid, ok := guildIDs[foldName(e.Guild)]
		if !ok {
			return fmt.Errorf("guild %q missing after seeding", e.Guild)
		}
		if c.GuildID == gid {
			continue
		}
		if _, err := guilds.AddCharacter(ctx, gid, c.ID); err != nil {
			return fmt.Errorf("adding %q to guild %q: %w", e.Character.Name, e.Guild, err)
		}
		res.Memberships++
	}
	return nil
}
