package game

import "math"

type Zone struct {
	X, Y    float64
	Size    float64 // diameter
	MinSize float64
	Final   bool
	Shrinks int
}

func (z Zone) Radius() float64 {
	return z.Size / 2
}

// Outside reports whether a point lies strictly beyond the zone radius.
func (z Zone) Outside(x, y float64) bool {
	return math.Hypot(x-z.X, y-z.Y) > z.Radius()
}

// Status is the label shown next to the zone: waiting, shrinking or final.
func (z Zone) Status() string {
	switch {
	case z.Final:
		return "final"
	case z.Shrinks > 0:
		return "shrinking"
	default:
		return "waiting"
	}
}

// ShrinkZone runs one step of the shrink schedule. It reduces the size by a
// fixed amount, floored at MinSize, and nudges the center by a bounded random
// offset. Once the floor has been reached, the next call marks the zone final
// and every later call is a no-op.
func ShrinkZone(s *State) bool {
	z := &s.Zone
	if z.Final {
		return false
	}
	if z.Size <= z.MinSize {
		z.Final = true
		s.emit(EventZone, "", z.Radius())
		return false
	}
	shift := s.Tuning.ZoneMaxShift
	z.Size = math.Max(z.MinSize, z.Size-s.Tuning.ZoneShrinkAmount)
	z.X += s.rng.Float64()*shift - shift/2
	z.Y += s.rng.Float64()*shift - shift/2
	z.Shrinks++
	s.emit(EventShrink, "", z.Radius())
	return true
}

// applyZoneDamage hurts every live actor strictly outside the zone by exactly
// ZoneDamage.
func applyZoneDamage(s *State) {
	dmg := s.Tuning.ZoneDamage
	if s.Player.Alive && s.Zone.Outside(s.Player.X, s.Player.Y) {
		hurtPlayer(s, dmg)
	}
	for _, e := range s.Entities {
		if !e.Kind.Damageable() || !e.Alive() {
			continue
		}
		if s.Zone.Outside(e.X, e.Y) {
			hurtEntity(s, e, dmg)
		}
	}
}
