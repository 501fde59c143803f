package game

import "math"

// Step advances the simulation by one fast tick: input, stamina, entity
// movement, enemy attacks, collection, outcome. It does nothing once the
// session is over.
func Step(s *State) {
	if s.Outcome.Terminal() {
		return
	}
	s.Tick++
	s.Time += s.Tuning.FastTick

	movePlayer(s)
	updateStamina(s)
	moveEntities(s)
	enemyAttacks(s)
	collect(s)
	updateOutcome(s)
}

// SlowStep runs the periodic damage tick: zone, hazards and boss, then heal
// pads.
func SlowStep(s *State) {
	if s.Outcome.Terminal() {
		return
	}
	applyZoneDamage(s)
	hazardAndBossDamage(s)
	heal(s)
	updateOutcome(s)
}

func movePlayer(s *State) {
	p := &s.Player
	if !p.Alive {
		return
	}
	in := s.Input
	if in.DX == 0 && in.DY == 0 {
		return
	}
	t := s.Tuning
	speed := t.WalkSpeed
	if p.Flying {
		speed = t.FlySpeed
	}
	nx := clamp(p.X+in.DX*speed, -t.HalfWorld, t.HalfWorld)
	ny := clamp(p.Y+in.DY*speed, -t.HalfWorld, t.HalfWorld)
	if !p.Flying && blocked(s, nx, ny) {
		return
	}
	p.X, p.Y = nx, ny
}

// blocked reports whether a walking player at (x, y) would touch water.
func blocked(s *State, x, y float64) bool {
	r := s.Tuning.CollisionRadius
	for _, o := range s.Obstacles {
		if x >= o.X-r && x <= o.X+o.W+r && y >= o.Y-r && y <= o.Y+o.H+r {
			return true
		}
	}
	return false
}

func updateStamina(s *State) {
	p := &s.Player
	if !p.Alive {
		return
	}
	t := s.Tuning
	if p.Flying {
		p.Stamina = math.Max(0, p.Stamina-t.StaminaDrain)
		if p.Stamina == 0 {
			p.Flying = false
			s.emit(EventLanded, "player", 0)
		}
		return
	}
	p.Stamina = math.Min(t.MaxStamina, p.Stamina+t.StaminaRegen)
}
