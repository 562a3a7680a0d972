// Package service orchestrates validation, duplicate checks, cache
// invalidation, and guild membership over the character and guild stores.
package service

//go:generate mockgen -destination=mock/mock_store.go -package=servicemock github.com/cory-johannsen/guildhall/internal/service CharacterStore,GuildStore

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/cache"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/guild"
	"github.com/cory-johannsen/guildhall/internal/observability"
)

// RosterKey is the cache key holding the full character list.
const RosterKey = "characters:all"

// CharacterStore persists characters.
type CharacterStore interface {
	Create(ctx context.Context, c *character.Character) (*character.Character, error)
	List(ctx context.Context) ([]*character.Character, error)
	GetByID(ctx context.Context, id int64) (*character.Character, error)
	Update(ctx context.Context, id int64, c *character.Character) (*character.Character, error)
	Delete(ctx context.Context, id int64) error
}

// GuildStore persists guilds and their membership counters.
type GuildStore interface {
	Create(ctx context.Context, g *guild.Guild) (*guild.Guild, error)
	List(ctx context.Context) ([]*guild.Guild, error)
	GetByID(ctx context.Context, id int64) (*guild.Guild, error)
	Update(ctx context.Context, id int64, g *guild.Guild) (*guild.Guild, error)
	Delete(ctx context.Context, id int64) error
	AddMember(ctx context.Context, characterID, guildID int64, maxMembers int) error
	RemoveMember(ctx context.Context, characterID int64) (int64, error)
}

// RosterCache caches the full character list.
type RosterCache = cache.Cache[[]*character.Character]

// Rules holds the configurable business limits.
type Rules struct {
	// MaxLevel caps character levels on create, update, and level-up.
	MaxLevel int
	// MaxGuildMembers caps guild size; 0 disables the cap.
	MaxGuildMembers int
	// RosterTTL is how long a cached roster is served; 0 keeps it until invalidated.
	RosterTTL time.Duration
}

// DefaultRules returns the stock limits.
func DefaultRules() Rules {
	return Rules{
		MaxLevel:        character.MaxLevel,
		MaxGuildMembers: 50,
		RosterTTL:       5 * time.Minute,
	}
}

func cloneRoster(in []*character.Character) []*character.Character {
	out := make([]*character.Character, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// invalidateRoster drops the cached roster after a write. The write has
// already committed, so a failure is logged rather than returned; the cache
// stops serving the entry either way.
func invalidateRoster(ctx context.Context, roster RosterCache, logger *zap.Logger) {
	if err := roster.Invalidate(ctx, RosterKey); err != nil {
		observability.For(ctx, logger).Warn("roster invalidation deferred", zap.Error(err))
	}
}
