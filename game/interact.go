package game

func hurtPlayer(s *State, amount float64) {
	p := &s.Player
	if !p.Alive {
		return
	}
	p.Health = clamp(p.Health-amount, 0, s.Tuning.MaxHealth)
	s.emit(EventHit, "player", amount)
	if p.Health == 0 {
		p.Alive = false
		p.Flying = false
	}
}

func hurtEntity(s *State, e *Entity, amount float64) {
	if e.damage(amount) {
		s.emit(EventKill, e.ID, amount)
	}
}

// SetInput buffers the direction vector for the next fast tick. Only the
// latest vector is kept.
func SetInput(s *State, in Input) {
	s.Input = Input{DX: clamp(in.DX, -1, 1), DY: clamp(in.DY, -1, 1)}
}

// ToggleFlight switches between walking and flying. Take-off needs stamina.
func ToggleFlight(s *State) {
	p := &s.Player
	if !p.Alive || s.Outcome.Terminal() {
		return
	}
	if p.Flying {
		p.Flying = false
		return
	}
	if p.Stamina > 0 {
		p.Flying = true
	}
}

// Attack damages every live entity within AttackRange of the player at once
// and returns how many were hit.
func Attack(s *State) int {
	p := &s.Player
	if !p.Alive || s.Outcome.Terminal() {
		return 0
	}
	hits := 0
	for _, e := range s.Entities {
		if !e.Kind.Damageable() || !e.Alive() {
			continue
		}
		if dist(p.X, p.Y, e.X, e.Y) <= s.Tuning.AttackRange {
			hurtEntity(s, e, s.Tuning.AttackDamage)
			hits++
		}
	}
	updateOutcome(s)
	return hits
}

func collect(s *State) {
	p := &s.Player
	if !p.Alive {
		return
	}
	for _, c := range s.Collectibles {
		if c.Collected {
			continue
		}
		if withinBox(c.X, c.Y, p.X, p.Y, s.Tuning.PickupReach) {
			c.Collected = true
			p.Collected++
			s.emit(EventPickup, c.ID, 1)
		}
	}
}

// enemyAttacks lets each live enemy strike its nearest target when in range,
// at most once per BotAttackCooldown.
func enemyAttacks(s *State) {
	t := s.Tuning
	for _, e := range s.Entities {
		if e.Kind != KindEnemy || !e.Alive() {
			continue
		}
		if !e.canAttack(s.Time, t.BotAttackCooldown) {
			continue
		}
		tx, ty, target, ok := nearestTarget(s, e)
		if !ok || dist(e.X, e.Y, tx, ty) > t.BotAttackRange {
			continue
		}
		if target == nil {
			hurtPlayer(s, t.BotAttackDamage)
		} else {
			hurtEntity(s, target, t.BotAttackDamage)
		}
		e.LastAttack = s.Time
		e.HasAttacked = true
	}
}

// hazardAndBossDamage is the slow-tick contact check. There is no cooldown:
// a player standing in reach is hurt once per slow tick.
func hazardAndBossDamage(s *State) {
	t := s.Tuning
	p := &s.Player
	for _, e := range s.Entities {
		if !p.Alive {
			return
		}
		if !e.Alive() {
			continue
		}
		switch e.Kind {
		case KindHazard:
			if p.Flying && t.FlightEvadesHazards {
				continue
			}
			if withinBox(e.X, e.Y, p.X, p.Y, e.Reach) {
				hurtPlayer(s, t.HazardDamage)
			}
		case KindBoss:
			if dist(e.X, e.Y, p.X, p.Y) <= t.BossAttackRange {
				hurtPlayer(s, t.BossDamage)
			}
		}
	}
}

func heal(s *State) {
	p := &s.Player
	if !p.Alive || p.Flying || p.Health >= s.Tuning.MaxHealth {
		return
	}
	for _, h := range s.HealPads {
		if withinBox(h.X, h.Y, p.X, p.Y, s.Tuning.HealReach) {
			p.Health = clamp(p.Health+s.Tuning.HealAmount, 0, s.Tuning.MaxHealth)
			return
		}
	}
}

// AliveContenders counts live enemies and bosses.
func AliveContenders(s *State) int {
	n := 0
	for _, e := range s.Entities {
		if e.Kind.Contender() && e.Alive() {
			n++
		}
	}
	return n
}

// hasContenders is false for a world generated without any opponents, which
// can never be won.
func hasContenders(s *State) bool {
	for _, e := range s.Entities {
		if e.Kind.Contender() {
			return true
		}
	}
	return false
}

// AliveCount is the figure shown on the HUD: contenders plus the player.
func AliveCount(s *State) int {
	n := AliveContenders(s)
	if s.Player.Alive {
		n++
	}
	return n
}

// updateOutcome settles the session once. Defeat wins over victory when both
// happen in the same tick.
func updateOutcome(s *State) {
	if s.Outcome.Terminal() {
		return
	}
	switch {
	case !s.Player.Alive:
		s.Outcome = Defeat
		s.emit(EventDefeat, "player", 0)
	case hasContenders(s) && AliveContenders(s) == 0:
		s.Outcome = Victory
		s.emit(EventVictory, "player", 0)
	}
}
