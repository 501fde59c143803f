package game

import "time"

// Loop turns wall-clock frame deltas into fixed simulation steps. Elapsed
// time accumulates and is consumed in FastTick increments; every SlowEvery
// fast steps a SlowStep runs, and the zone shrinks on its own sim-time
// schedule. Callback jitter in the host therefore never changes step size.
type Loop struct {
	acc        time.Duration
	fastSteps  int
	nextShrink time.Duration
}

func NewLoop(t Tuning) *Loop {
	return &Loop{nextShrink: t.ZoneFirstShrink}
}

// Advance consumes elapsed time and returns the number of fast steps run.
// At most MaxCatchUpSteps run per call; any larger backlog is dropped.
func (l *Loop) Advance(s *State, elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	t := s.Tuning
	l.acc += elapsed
	steps := 0
	for l.acc >= t.FastTick && !s.Outcome.Terminal() {
		if steps == t.MaxCatchUpSteps {
			l.acc = 0
			break
		}
		l.acc -= t.FastTick
		l.step(s)
		steps++
	}
	return steps
}

func (l *Loop) step(s *State) {
	t := s.Tuning
	Step(s)
	l.fastSteps++
	if l.fastSteps%t.SlowEvery() == 0 {
		SlowStep(s)
	}
	if !s.Zone.Final && s.Time >= l.nextShrink {
		ShrinkZone(s)
		l.nextShrink += t.ZoneShrinkInterval
	}
}

// NextShrink is the sim time of the next scheduled shrink.
func (l *Loop) NextShrink() time.Duration {
	return l.nextShrink
}
