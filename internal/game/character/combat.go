package character

// Roller supplies uniform random values in [0, 1). *math/rand/v2.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// Attack returns the raw attack value of c for one exchange. Rogues roll
// against CriticalChance and double their attack on a hit.
func (c *Character) Attack(rng Roller) int {
	switch st := c.Stats.(type) {
	case WarriorStats:
		return st.Strength * 2
	case MageStats:
		return st.Intelligence * 3
	case RogueStats:
		base := st.Agility * 2
		if rng != nil && rng.Float64() < st.CriticalChance {
			return base * 2
		}
		return base
	}
	return 0
}

// Defend returns the damage c absorbs from one incoming attack.
func (c *Character) Defend() int {
	switch st := c.Stats.(type) {
	case WarriorStats:
		return st.Armor
	case MageStats:
		return st.Mana / 10
	case RogueStats:
		return st.Stealth + st.Agility/2
	}
	return 0
}

// Damage returns the expected damage rating of c.
func (c *Character) Damage() int {
	switch st := c.Stats.(type) {
	case WarriorStats:
		return st.Strength*2 + c.Level
	case MageStats:
		return st.Intelligence*3 + c.Level
	case RogueStats:
		return int(float64(st.Agility*2)*(1+st.CriticalChance) + float64(c.Level))
	}
	return 0
}

// SparResult describes one exchange between an attacker and a defender.
type SparResult struct {
	Attack   int
	Defense  int
	Damage   int
	Critical bool
}

// Spar resolves a single attack from attacker against defender. Damage is
// the attack minus the defense, floored at 0. Neither character is modified.
func Spar(attacker, defender *Character, rng Roller) SparResult {
	var roll Roller = rng
	critical := false
	if rs, ok := attacker.Stats.(RogueStats); ok && rng != nil {
		v := rng.Float64()
		critical = v < rs.CriticalChance
		roll = fixedRoll(v)
	}
	atk := attacker.Attack(roll)
	def := defender.Defend()
	return SparResult{
		Attack:   atk,
		Defense:  def,
		Damage:   max(0, atk-def),
		Critical: critical,
	}
}

type fixedRoll float64

func (f fixedRoll) Float64() float64 { return float64(f) }
