package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cory-johannsen/guildhall/internal/game/character"
)

type stubRoll float64

func (s stubRoll) Float64() float64 { return float64(s) }

func TestCombat_Warrior(t *testing.T) {
	w, _ := character.NewWarrior("Conan", 5, 50, 30, "Axe")
	assert.Equal(t, 100, w.Attack(nil))
	assert.Equal(t, 30, w.Defend())
	assert.Equal(t, 105, w.Damage())
}

func TestCombat_Mage(t *testing.T) {
	m, _ := character.NewMage("Merlin", 2, 200, 45, "Fire")
	assert.Equal(t, 135, m.Attack(nil))
	assert.Equal(t, 20, m.Defend())
	assert.Equal(t, 137, m.Damage())
}

func TestCombat_RogueCritical(t *testing.T) {
	r, _ := character.NewRogue("Shade", 4, 40, 35, 0.25)
	assert.Equal(t, 160, r.Attack(stubRoll(0.1)))
	assert.Equal(t, 80, r.Attack(stubRoll(0.9)))
	assert.Equal(t, 55, r.Defend())
	// 80*1.25 + 4
	assert.Equal(t, 104, r.Damage())
}

func TestSpar_DamageFloorsAtZero(t *testing.T) {
	m, _ := character.NewMage("Merlin", 1, 100, 1, "Fire")
	w, _ := character.NewWarrior("Conan", 1, 10, 50, "Axe")

	res := character.Spar(m, w, nil)
	assert.Equal(t, 3, res.Attack)
	assert.Equal(t, 50, res.Defense)
	assert.Equal(t, 0, res.Damage)
	assert.False(t, res.Critical)
}

func TestSpar_RogueReportsCritical(t *testing.T) {
	r, _ := character.NewRogue("Shade", 1, 40, 35, 0.5)
	w, _ := character.NewWarrior("Conan", 1, 10, 30, "Axe")

	res := character.Spar(r, w, stubRoll(0.2))
	assert.True(t, res.Critical)
	assert.Equal(t, 160, res.Attack)
	assert.Equal(t, 130, res.Damage)
}
