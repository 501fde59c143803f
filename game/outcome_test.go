package game

import "testing"

func TestVictoryWhenLastContenderDies(t *testing.T) {
	s := newTestState()
	a := &Entity{ID: "a", Kind: KindEnemy, X: 20, Health: 25, MaxHealth: 100}
	b := &Entity{ID: "b", Kind: KindEnemy, X: 60, Health: 50, MaxHealth: 100}
	s.Entities = []*Entity{a, b, {ID: "d1", Kind: KindHazard, X: 900, Y: 900, Reach: 60}}

	Attack(s)
	if s.Outcome != Running {
		t.Fatalf("outcome after first kill = %s, want running", s.Outcome)
	}
	if AliveContenders(s) != 1 {
		t.Fatalf("alive contenders = %d, want 1", AliveContenders(s))
	}
	Attack(s)
	if s.Outcome != Victory {
		t.Fatalf("outcome after last kill = %s, want victory", s.Outcome)
	}
	if AliveCount(s) != 1 {
		t.Fatalf("alive count = %d, want 1 (the player)", AliveCount(s))
	}
}

func TestDefeatWhenPlayerHealthReachesZero(t *testing.T) {
	s := newTestState()
	s.Zone = Zone{Size: 100, MinSize: 100}
	s.Player.X = 500
	s.Player.Health = 25
	s.Entities = []*Entity{{ID: "bot", Kind: KindEnemy, X: -900, Y: -900, Health: 100, MaxHealth: 100}}

	SlowStep(s)
	SlowStep(s)
	if s.Outcome != Running {
		t.Fatalf("outcome at health %f = %s, want running", s.Player.Health, s.Outcome)
	}
	SlowStep(s)
	if s.Outcome != Defeat {
		t.Fatalf("outcome = %s, want defeat", s.Outcome)
	}
	if s.Player.Health != 0 || s.Player.Alive {
		t.Fatalf("player after defeat: %+v", s.Player)
	}

	defeats := 0
	for _, ev := range s.TakeEvents() {
		if ev.Kind == EventDefeat {
			defeats++
		}
	}
	SlowStep(s)
	for _, ev := range s.TakeEvents() {
		if ev.Kind == EventDefeat {
			defeats++
		}
	}
	if defeats != 1 {
		t.Fatalf("defeat events = %d, want 1", defeats)
	}
}

func TestNoVictoryWithoutContenders(t *testing.T) {
	s := newTestState()
	Step(s)
	SlowStep(s)
	if s.Outcome != Running {
		t.Fatalf("empty world reported %s", s.Outcome)
	}
}

func TestOutcomeIsFinal(t *testing.T) {
	s := newTestState()
	s.Entities = []*Entity{{ID: "a", Kind: KindEnemy, X: 10, Health: 1, MaxHealth: 1}}
	Attack(s)
	if s.Outcome != Victory {
		t.Fatalf("outcome = %s, want victory", s.Outcome)
	}
	s.Player.Health = 0
	s.Player.Alive = false
	SlowStep(s)
	if s.Outcome != Victory {
		t.Fatalf("outcome changed after victory to %s", s.Outcome)
	}
	if Attack(s) != 0 {
		t.Fatalf("attack after outcome should be a no-op")
	}
}

func TestGeneratedWorldLayout(t *testing.T) {
	tun := DefaultTuning()
	s := NewState(tun, 7)
	if got := AliveContenders(s); got != tun.Bots+1 {
		t.Fatalf("contenders = %d, want %d bots + boss", got, tun.Bots+1)
	}
	if len(s.Collectibles) != 5 {
		t.Fatalf("blings = %d, want 5", len(s.Collectibles))
	}
	if s.Zone.Radius() != tun.ZoneStartSize/2 {
		t.Fatalf("zone radius = %f, want %f", s.Zone.Radius(), tun.ZoneStartSize/2)
	}
	for _, e := range s.Entities {
		if e.X < -tun.HalfWorld || e.X > tun.HalfWorld || e.Y < -tun.HalfWorld || e.Y > tun.HalfWorld {
			t.Fatalf("%s spawned outside the world at (%f,%f)", e.ID, e.X, e.Y)
		}
	}

	again := NewState(tun, 7)
	for i := range s.Entities {
		if s.Entities[i].X != again.Entities[i].X || s.Entities[i].Y != again.Entities[i].Y {
			t.Fatalf("same seed produced different layout for %s", s.Entities[i].ID)
		}
	}
}
