package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/guildhall/internal/errors"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/storage/postgres"
	"github.com/cory-johannsen/guildhall/internal/testutil"
)

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func setupRepos(t *testing.T) (*postgres.Pool, *postgres.CharacterRepository, *postgres.GuildRepository) {
	t.Helper()
	pool := testutil.NewPool(t)
	return pool, postgres.NewCharacterRepository(pool), postgres.NewGuildRepository(pool)
}

// mustCharacter adapts a constructor result, failing the test on error:
// mustCharacter(t)(character.NewWarrior(...)).
func mustCharacter(t *testing.T) func(*character.Character, error) *character.Character {
	t.Helper()
	return func(c *character.Character, err error) *character.Character {
		t.Helper()
		require.NoError(t, err)
		return c
	}
}

func attributeRowCount(t *testing.T, pool *postgres.Pool, characterID int64) int {
	t.Helper()
	var n int
	err := pool.DB().QueryRow(context.Background(),
		`SELECT count(*) FROM character_attributes WHERE character_id = $1`, characterID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestCharacterRepository_RoundTripEachVariant(t *testing.T) {
	_, repo, _ := setupRepos(t)
	ctx := context.Background()

	inputs := []*character.Character{
		mustCharacter(t)(character.NewWarrior("Brakka", 5, 50, 30, "Axe")),
		mustCharacter(t)(character.NewMage("Aldric", 7, 200, 45, "Frost")),
		mustCharacter(t)(character.NewRogue("Corvin", 3, 40, 35, 0.25)),
	}
	for _, in := range inputs {
		in.Experience = 250
		in.HealthPoints = 80

		created, err := repo.Create(ctx, in)
		require.NoError(t, err)
		assert.Greater(t, created.ID, int64(0))
		assert.False(t, created.CreatedAt.IsZero())
		assert.Equal(t, int64(0), in.ID, "input is not mutated")

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, got)
		assert.Equal(t, in.Name, got.Name)
		assert.Equal(t, in.Level, got.Level)
		assert.Equal(t, 250, got.Experience)
		assert.Equal(t, 80, got.HealthPoints)
		assert.Equal(t, in.Stats, got.Stats)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, character.ClassWarrior, all[0].Class())
	assert.Equal(t, character.ClassMage, all[1].Class())
	assert.Equal(t, character.ClassRogue, all[2].Class())
}

func TestCharacterRepository_GetByIDNotFound(t *testing.T) {
	_, repo, _ := setupRepos(t)
	_, err := repo.GetByID(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestCharacterRepository_DuplicateNameIsCaseInsensitive(t *testing.T) {
	_, repo, _ := setupRepos(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, mustCharacter(t)(character.NewWarrior("Brakka", 1, 10, 1, "Axe")))
	require.NoError(t, err)

	_, err = repo.Create(ctx, mustCharacter(t)(character.NewMage("BRAKKA", 1, 10, 1, "Fire")))
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCharacterRepository_RejectsInvalidCharacter(t *testing.T) {
	_, repo, _ := setupRepos(t)
	bad := &character.Character{Name: "x", Level: 1, Stats: character.WarriorStats{Strength: 1}}
	_, err := repo.Create(context.Background(), bad)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestCharacterRepository_Update(t *testing.T) {
	_, repo, _ := setupRepos(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, mustCharacter(t)(character.NewWarrior("Brakka", 1, 10, 1, "Axe")))
	require.NoError(t, err)

	next := created.Clone()
	require.NoError(t, next.LevelUp())
	require.NoError(t, next.SetName("Brakka the Bold"))
	updated, err := repo.Update(ctx, created.ID, next)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Brakka the Bold", updated.Name)
	assert.Equal(t, 2, updated.Level)
	assert.Equal(t, character.WarriorStats{Strength: 13, Armor: 3, WeaponType: "Axe"}, updated.Stats)
}

func TestCharacterRepository_UpdateNullsOtherVariantColumns(t *testing.T) {
	pool, repo, _ := setupRepos(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, mustCharacter(t)(character.NewWarrior("Brakka", 1, 10, 1, "Axe")))
	require.NoError(t, err)

	asMage := created.Clone()
	asMage.Stats = character.MageStats{Mana: 50, Intelligence: 9, SpellSchool: "Fire"}
	updated, err := repo.Update(ctx, created.ID, asMage)
	require.NoError(t, err)
	assert.Equal(t, asMage.Stats, updated.Stats)

	var strengthNull, manaNull bool
	err = pool.DB().QueryRow(ctx,
		`SELECT strength IS NULL, mana IS NULL FROM character_attributes WHERE character_id = $1`,
		created.ID).Scan(&strengthNull, &manaNull)
	require.NoError(t, err)
	assert.True(t, strengthNull)
	assert.False(t, manaNull)
}

func TestCharacterRepository_UpdateNotFound(t *testing.T) {
	_, repo, _ := setupRepos(t)
	_, err := repo.Update(context.Background(), 424242,
		mustCharacter(t)(character.NewWarrior("Brakka", 1, 10, 1, "Axe")))
	assert.True(t, errors.IsNotFound(err))
}

func TestCharacterRepository_DeleteRemovesAttributesAndDecrementsGuild(t *testing.T) {
	pool, repo, guilds := setupRepos(t)
	ctx := context.Background()

	g, err := guilds.Create(ctx, mustGuild(t, "Iron Vanguard"))
	require.NoError(t, err)
	c, err := repo.Create(ctx, mustCharacter(t)(character.NewRogue("Corvin", 3, 40, 35, 0.25)))
	require.NoError(t, err)
	require.NoError(t, guilds.AddMember(ctx, c.ID, g.ID, 0))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.GetByID(ctx, c.ID)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 0, attributeRowCount(t, pool, c.ID))

	got, err := guilds.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.MemberCount)
}

func TestCharacterRepository_DeleteNotFound(t *testing.T) {
	_, repo, _ := setupRepos(t)
	err := repo.Delete(context.Background(), 31337)
	assert.True(t, errors.IsNotFound(err))
}

func TestCharacterRepository_QueryTimeout(t *testing.T) {
	_, repo, _ := setupRepos(t)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := repo.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsDeadlineExceeded(err))
}

func TestProperty_CharacterRoundTrip(t *testing.T) {
	_, repo, _ := setupRepos(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		name := uniqueName(rapid.StringMatching(`[A-Za-z]{3,10}`).Draw(rt, "name"))
		level := rapid.IntRange(1, 100).Draw(rt, "level")
		var stats character.Stats
		switch rapid.IntRange(0, 2).Draw(rt, "variant") {
		case 0:
			stats = character.WarriorStats{
				Strength:   rapid.IntRange(1, 500).Draw(rt, "strength"),
				Armor:      rapid.IntRange(0, 500).Draw(rt, "armor"),
				WeaponType: rapid.StringMatching(`[A-Za-z]{0,12}`).Draw(rt, "weapon"),
			}
		case 1:
			stats = character.MageStats{
				Mana:         rapid.IntRange(1, 2000).Draw(rt, "mana"),
				Intelligence: rapid.IntRange(1, 500).Draw(rt, "intelligence"),
				SpellSchool:  rapid.StringMatching(`[A-Za-z]{0,12}`).Draw(rt, "school"),
			}
		default:
			stats = character.RogueStats{
				Agility:        rapid.IntRange(1, 500).Draw(rt, "agility"),
				Stealth:        rapid.IntRange(1, 500).Draw(rt, "stealth"),
				CriticalChance: float64(rapid.IntRange(0, 100).Draw(rt, "critPct")) / 100,
			}
		}

		in, err := character.New(name, level, stats)
		if err != nil {
			rt.Fatalf("new: %v", err)
		}
		created, err := repo.Create(ctx, in)
		if err != nil {
			rt.Fatalf("create: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			rt.Fatalf("get: %v", err)
		}
		if got.Name != in.Name || got.Level != in.Level || got.Stats != in.Stats {
			rt.Fatalf("round trip mismatch: got %+v want %+v", got, in)
		}
	})
}
