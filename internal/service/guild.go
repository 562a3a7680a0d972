package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
	"github.com/cory-johannsen/guildhall/internal/observability"
)

// GuildService implements the guild use cases, including membership.
type GuildService struct {
	guilds GuildStore
	chars  CharacterStore
	roster RosterCache
	rules  Rules
	logger *zap.Logger
}

// NewGuildService creates a GuildService.
//
// Precondition: all arguments must be non-nil.
func NewGuildService(guilds GuildStore, chars CharacterStore, roster RosterCache, rules Rules, logger *zap.Logger) *GuildService {
	return &GuildService{
		guilds: guilds,
		chars:  chars,
		roster: roster,
		rules:  rules,
		logger: logger,
	}
}

// Create validates g, rejects a case-insensitive duplicate name, and
// persists a new guild with no members.
func (s *GuildService) Create(ctx context.Context, g *guild.Guild) (*guild.Guild, error) {
	if g == nil {
		return nil, errors.InvalidArgument("guild is required")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.guilds.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "checking for duplicate guild names")
	}
	for _, e := range existing {
		if guild.SameName(e.Name, g.Name) {
			return nil, errors.AlreadyExistsf("guild with name %q already exists", g.Name)
		}
	}

	in := *g
	in.ID = 0
	in.MemberCount = 0
	created, err := s.guilds.Create(ctx, &in)
	if err != nil {
		return nil, err
	}
	observability.For(ctx, s.logger).Info("guild created",
		zap.Int64("id", created.ID),
		zap.String("name", created.Name),
	)
	return created, nil
}

// List returns every guild.
func (s *GuildService) List(ctx context.Context) ([]*guild.Guild, error) {
	return s.guilds.List(ctx)
}

// Get returns guild id.
func (s *GuildService) Get(ctx context.Context, id int64) (*guild.Guild, error) {
	if id <= 0 {
		return nil, errors.NotFoundf("guild %d not found", id)
	}
	return s.guilds.GetByID(ctx, id)
}

// Update replaces the name and level of guild id. The member count is
// maintained by membership operations only.
func (s *GuildService) Update(ctx context.Context, id int64, g *guild.Guild) (*guild.Guild, error) {
	if g == nil {
		return nil, errors.InvalidArgument("guild is required")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, errors.NotFoundf("guild %d not found", id)
	}
	return s.guilds.Update(ctx, id, g)
}

// Delete removes guild id.
//
// Postcondition: A guild that still has members yields FAILED_PRECONDITION.
func (s *GuildService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.NotFoundf("guild %d not found", id)
	}
	if err := s.guilds.Delete(ctx, id); err != nil {
		return err
	}
	observability.For(ctx, s.logger).Info("guild deleted", zap.Int64("id", id))
	return nil
}

// LevelUp raises guild id by one level.
func (s *GuildService) LevelUp(ctx context.Context, id int64) (*guild.Guild, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	g.LevelUp()
	return s.guilds.Update(ctx, id, g)
}

// AddCharacter places character characterID in guild guildID, leaving any
// previous guild. Adding a character to its current guild is a no-op.
//
// Postcondition: Returns the target guild with its updated member count, or
// NOT_FOUND for a missing character or guild, or FAILED_PRECONDITION when
// the guild is full.
func (s *GuildService) AddCharacter(ctx context.Context, guildID, characterID int64) (*guild.Guild, error) {
	if guildID <= 0 {
		return nil, errors.NotFoundf("guild %d not found", guildID)
	}
	if characterID <= 0 {
		return nil, errors.NotFoundf("character %d not found", characterID)
	}
	if err := s.guilds.AddMember(ctx, characterID, guildID, s.rules.MaxGuildMembers); err != nil {
		return nil, err
	}
	invalidateRoster(ctx, s.roster, s.logger)

	g, err := s.guilds.GetByID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	observability.For(ctx, s.logger).Info("character joined guild",
		zap.Int64("character_id", characterID),
		zap.Int64("guild_id", guildID),
		zap.Int("member_count", g.MemberCount),
	)
	return g, nil
}

// RemoveCharacter removes character characterID from its guild. A character
// without a guild is left unchanged.
func (s *GuildService) RemoveCharacter(ctx context.Context, characterID int64) error {
	if characterID <= 0 {
		return errors.NotFoundf("character %d not found", characterID)
	}
	left, err := s.guilds.RemoveMember(ctx, characterID)
	if err != nil {
		return err
	}
	invalidateRoster(ctx, s.roster, s.logger)
	if left != 0 {
		observability.For(ctx, s.logger).Info("character left guild",
			zap.Int64("character_id", characterID),
			zap.Int64("guild_id", left),
		)
	}
	return nil
}

// Members returns the characters belonging to guild id.
func (s *GuildService) Members(ctx context.Context, id int64) ([]*character.Character, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	all, err := s.chars.List(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]*character.Character, 0, len(all))
	for _, c := range all {
		if c.GuildID == id {
			members = append(members, c)
		}
	}
	return members, nil
}
