package game

import (
	"math"
	"time"
)

type Kind uint8

const (
	KindEnemy Kind = iota
	KindBoss
	KindHazard
)

func (k Kind) String() string {
	switch k {
	case KindBoss:
		return "boss"
	case KindHazard:
		return "danger"
	default:
		return "enemy"
	}
}

// Damageable reports whether attacks and the zone can hurt this kind.
func (k Kind) Damageable() bool {
	return k != KindHazard
}

// Contender reports whether this kind must be eliminated for a victory.
func (k Kind) Contender() bool {
	return k == KindEnemy || k == KindBoss
}

type Entity struct {
	ID        string
	Name      string
	Kind      Kind
	X, Y      float64
	Health    float64
	MaxHealth float64
	Reach     float64 // hazard box half-extent

	LastAttack  time.Duration
	HasAttacked bool
}

// Alive reports whether the entity still takes part in the session. Hazards
// have no health pool and are always active.
func (e *Entity) Alive() bool {
	if e.Kind == KindHazard {
		return true
	}
	return e.Health > 0
}

// damage applies amount and reports whether this call killed the entity.
// Dead or undamageable entities are left untouched.
func (e *Entity) damage(amount float64) bool {
	if !e.Kind.Damageable() || e.Health <= 0 {
		return false
	}
	e.Health = clamp(e.Health-amount, 0, e.MaxHealth)
	return e.Health == 0
}

func (e *Entity) canAttack(now, cooldown time.Duration) bool {
	return !e.HasAttacked || now-e.LastAttack >= cooldown
}

func dist(ax, ay, bx, by float64) float64 {
	return math.Hypot(ax-bx, ay-by)
}

// withinBox is the axis-aligned threshold check used for pickups, pads and hazards.
func withinBox(ax, ay, bx, by, reach float64) bool {
	return math.Abs(ax-bx) < reach && math.Abs(ay-by) < reach
}

// moveEntities advances every live mobile entity by its kind's policy.
func moveEntities(s *State) {
	t := s.Tuning
	for _, e := range s.Entities {
		if !e.Alive() {
			continue
		}
		switch e.Kind {
		case KindEnemy:
			if t.BotPolicy == PolicyJitter {
				jitter(s, e)
			} else {
				hunt(s, e)
			}
		case KindBoss:
			p := &s.Player
			if p.Alive && dist(e.X, e.Y, p.X, p.Y) <= t.BossAggroRange {
				stepToward(e, p.X, p.Y, t.BossSpeed)
			}
		case KindHazard:
			continue
		}
		e.X = clamp(e.X, -t.HalfWorld, t.HalfWorld)
		e.Y = clamp(e.Y, -t.HalfWorld, t.HalfWorld)
	}
}

func jitter(s *State, e *Entity) {
	j := s.Tuning.BotJitter
	e.X += (s.rng.Float64()*2 - 1) * j
	e.Y += (s.rng.Float64()*2 - 1) * j
}

// hunt: flee into the zone first, then chase the nearest target, else wander.
func hunt(s *State, e *Entity) {
	t := s.Tuning
	if s.Zone.Outside(e.X, e.Y) {
		stepToward(e, s.Zone.X, s.Zone.Y, t.BotSpeed)
		return
	}
	tx, ty, _, ok := nearestTarget(s, e)
	if ok && dist(e.X, e.Y, tx, ty) <= t.BotAggroRange {
		// Stop at attack range instead of stacking on the target.
		if dist(e.X, e.Y, tx, ty) > t.BotAttackRange/2 {
			stepToward(e, tx, ty, t.BotSpeed)
		}
		return
	}
	jitter(s, e)
}

// nearestTarget picks the closest live opponent of an enemy: the player or any
// other contender. A nil entity with ok set means the player.
func nearestTarget(s *State, e *Entity) (x, y float64, target *Entity, ok bool) {
	best := math.Inf(1)
	p := &s.Player
	if p.Alive {
		best = dist(e.X, e.Y, p.X, p.Y)
		x, y, ok = p.X, p.Y, true
	}
	for _, o := range s.Entities {
		if o == e || !o.Kind.Contender() || !o.Alive() {
			continue
		}
		if d := dist(e.X, e.Y, o.X, o.Y); d < best {
			best = d
			x, y, target, ok = o.X, o.Y, o, true
		}
	}
	return x, y, target, ok
}

func stepToward(e *Entity, tx, ty, speed float64) {
	dx, dy := tx-e.X, ty-e.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	if d <= speed {
		e.X, e.Y = tx, ty
		return
	}
	e.X += dx / d * speed
	e.Y += dy / d * speed
}
