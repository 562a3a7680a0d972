package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/game/dice"
	"github.com/cory-johannsen/guildhall/internal/observability"
)

// CharacterService implements the character use cases.
type CharacterService struct {
	store  CharacterStore
	roster RosterCache
	rules  Rules
	logger *zap.Logger
	roll   character.Roller
}

// NewCharacterService creates a CharacterService.
//
// Precondition: store, roster, and logger must be non-nil; rules.MaxLevel >= 1.
func NewCharacterService(store CharacterStore, roster RosterCache, rules Rules, logger *zap.Logger) *CharacterService {
	return &CharacterService{
		store:  store,
		roster: roster,
		rules:  rules,
		logger: logger,
		roll:   dice.NewLoggedSource(dice.NewCryptoSource(), logger),
	}
}

// WithRoller replaces the random source used by Spar.
func (s *CharacterService) WithRoller(r character.Roller) *CharacterService {
	s.roll = r
	return s
}

// Create validates c, rejects a case-insensitive duplicate name, persists c,
// and invalidates the cached roster. c is not modified.
//
// Postcondition: Returns the stored character or a coded error:
// INVALID_ARGUMENT, ALREADY_EXISTS, or a store error.
func (s *CharacterService) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "checking for duplicate character names")
	}
	for _, e := range existing {
		if strings.EqualFold(e.Name, c.Name) {
			return nil, errors.AlreadyExistsf("character with name %q already exists", c.Name)
		}
	}

	in := c.Clone()
	in.ID = 0
	in.GuildID = 0
	created, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	observability.For(ctx, s.logger).Info("character created",
		zap.Int64("id", created.ID),
		zap.String("name", created.Name),
		zap.String("type", string(created.Class())),
	)
	return created, nil
}

// List returns every character, served from the roster cache when present.
// The returned characters are copies and may be modified by the caller.
func (s *CharacterService) List(ctx context.Context) ([]*character.Character, error) {
	if cached, ok := s.roster.Get(ctx, RosterKey); ok {
		return cloneRoster(cached), nil
	}

	chars, err := s.store.List(ctx)
	if err != nil {
		observability.For(ctx, s.logger).Error("listing characters", zap.Error(err))
		return nil, err
	}
	s.roster.Put(ctx, RosterKey, cloneRoster(chars), s.rules.RosterTTL)
	return chars, nil
}

// Query returns the characters matching f ordered by key.
func (s *CharacterService) Query(ctx context.Context, f character.Filter, key character.SortKey) ([]*character.Character, error) {
	chars, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return character.Query(chars, f, key), nil
}

// Get returns character id.
//
// Postcondition: Non-positive ids yield NOT_FOUND without a store call.
func (s *CharacterService) Get(ctx context.Context, id int64) (*character.Character, error) {
	if id <= 0 {
		return nil, errors.NotFoundf("character %d not found", id)
	}
	return s.store.GetByID(ctx, id)
}

// Update replaces the name, level, experience, health, and stats of
// character id with those of c. The character type cannot change.
//
// Postcondition: Returns the stored character or a coded error.
func (s *CharacterService) Update(ctx context.Context, id int64, c *character.Character) (*character.Character, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Class() != c.Class() {
		return nil, errors.InvalidArgumentf("cannot change character type from %s to %s", current.Class(), c.Class())
	}

	updated, err := s.store.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete removes character id, leaving its guild if it had one.
func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.NotFoundf("character %d not found", id)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	observability.For(ctx, s.logger).Info("character deleted", zap.Int64("id", id))
	return nil
}

// LevelUp applies one level-up to character id and persists it.
//
// Postcondition: A character at the configured maximum level yields FAILED_PRECONDITION.
func (s *CharacterService) LevelUp(ctx context.Context, id int64) (*character.Character, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Level >= s.rules.MaxLevel {
		return nil, errors.FailedPreconditionf("%s is already at the maximum level %d", c.Name, s.rules.MaxLevel)
	}
	if err := c.LevelUp(); err != nil {
		return nil, err
	}
	return s.save(ctx, id, c)
}

// AddExperience grants xp to character id and persists the result. At most
// one level-up fires per call; none fires at the configured maximum level.
//
// Postcondition: Returns the stored character and whether it leveled up.
func (s *CharacterService) AddExperience(ctx context.Context, id int64, xp int) (*character.Character, bool, error) {
	if xp <= 0 {
		return nil, false, errors.InvalidArgument("experience points must be positive")
	}
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	leveled := false
	if c.Level >= s.rules.MaxLevel {
		if err := c.SetExperience(c.Experience + xp); err != nil {
			return nil, false, err
		}
	} else if leveled, err = c.GainExperience(xp); err != nil {
		return nil, false, err
	}

	saved, err := s.save(ctx, id, c)
	if err != nil {
		return nil, false, err
	}
	if leveled {
		observability.For(ctx, s.logger).Info("character leveled up",
			zap.Int64("id", id),
			zap.Int("level", saved.Level),
		)
	}
	return saved, leveled, nil
}

// Spar resolves one attack from attacker against defender. Neither
// character is modified.
func (s *CharacterService) Spar(ctx context.Context, attackerID, defenderID int64) (*character.Character, *character.Character, character.SparResult, error) {
	if attackerID == defenderID {
		return nil, nil, character.SparResult{}, errors.InvalidArgument("a character cannot spar with itself")
	}
	attacker, err := s.Get(ctx, attackerID)
	if err != nil {
		return nil, nil, character.SparResult{}, err
	}
	defender, err := s.Get(ctx, defenderID)
	if err != nil {
		return nil, nil, character.SparResult{}, err
	}
	return attacker, defender, character.Spar(attacker, defender, s.roll), nil
}

// ClearCache drops every cached roster entry.
func (s *CharacterService) ClearCache(ctx context.Context) {
	s.roster.Clear(ctx)
	observability.For(ctx, s.logger).Info("character cache cleared")
}

func (s *CharacterService) save(ctx context.Context, id int64, c *character.Character) (*character.Character, error) {
	saved, err := s.store.Update(ctx, id, c)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return saved, nil
}

func (s *CharacterService) invalidate(ctx context.Context) {
	invalidateRoster(ctx, s.roster, s.logger)
}

func (s *CharacterService) validate(c *character.Character) error {
	if c == nil {
		return errors.InvalidArgument("character is required")
	}
	if c.Level > s.rules.MaxLevel {
		return errors.InvalidArgumentf("level cannot exceed %d", s.rules.MaxLevel)
	}
	return c.Validate()
}
