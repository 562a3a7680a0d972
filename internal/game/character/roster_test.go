package character_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/guildhall/internal/game/character"
)

func roster(t *testing.T) []*character.Character {
	t.Helper()
	w, err := character.NewWarrior("Brakka", 10, 50, 30, "Axe")
	require.NoError(t, err)
	w.Experience = 300
	m, err := character.NewMage("Aldric", 3, 200, 45, "Fire")
	require.NoError(t, err)
	m.Experience = 900
	r, err := character.NewRogue("Corvin", 7, 40, 35, 0.25)
	require.NoError(t, err)
	r.Experience = 100
	return []*character.Character{w, m, r}
}

func names(cs []*character.Character) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestQuery_Sorts(t *testing.T) {
	rs := roster(t)
	assert.Equal(t, []string{"Aldric", "Brakka", "Corvin"}, names(character.Query(rs, character.Filter{}, character.SortName)))
	assert.Equal(t, []string{"Brakka", "Corvin", "Aldric"}, names(character.Query(rs, character.Filter{}, character.SortLevel)))
	assert.Equal(t, []string{"Aldric", "Brakka", "Corvin"}, names(character.Query(rs, character.Filter{}, character.SortExperience)))
	// powers: Brakka 180, Aldric 247, Corvin 141
	assert.Equal(t, []string{"Aldric", "Brakka", "Corvin"}, names(character.Query(rs, character.Filter{}, character.SortPower)))

	// input order is untouched
	assert.Equal(t, []string{"Brakka", "Aldric", "Corvin"}, names(rs))
}

func TestQuery_Filters(t *testing.T) {
	rs := roster(t)
	assert.Equal(t, []string{"Corvin"}, names(character.Query(rs, character.Filter{Class: character.ClassRogue}, character.SortNone)))
	assert.Equal(t, []string{"Brakka", "Corvin"}, names(character.Query(rs, character.Filter{MinLevel: 5}, character.SortNone)))
	assert.Empty(t, character.Query(rs, character.Filter{Class: character.ClassMage, MinLevel: 5}, character.SortNone))
}

func TestParseSortKey(t *testing.T) {
	k, err := character.ParseSortKey("Power")
	require.NoError(t, err)
	assert.Equal(t, character.SortPower, k)

	_, err = character.ParseSortKey("height")
	assert.Error(t, err)
}

func TestCharacterJSON_PreservesVariant(t *testing.T) {
	for _, c := range roster(t) {
		c.ID = 12
		c.GuildID = 3
		c.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		data, err := json.Marshal(c)
		require.NoError(t, err)

		var got character.Character
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, *c, got)
	}
}

func TestCharacterJSON_RejectsUnknownType(t *testing.T) {
	var c character.Character
	err := json.Unmarshal([]byte(`{"id":1,"type":"BARD"}`), &c)
	assert.Error(t, err)
}
