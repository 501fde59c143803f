package game

import (
	"testing"
	"time"
)

func TestAttackHitsOnlyEntitiesInRange(t *testing.T) {
	s := newTestState()
	near := &Entity{ID: "near", Kind: KindEnemy, X: 50, Health: 100, MaxHealth: 100}
	far := &Entity{ID: "far", Kind: KindEnemy, X: 150, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{near, far}

	if hits := Attack(s); hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
	if near.Health != 100-s.Tuning.AttackDamage {
		t.Fatalf("near health = %f, want %f", near.Health, 100-s.Tuning.AttackDamage)
	}
	if far.Health != 100 {
		t.Fatalf("far entity was hit: health=%f", far.Health)
	}
}

func TestAttackHitsAllInRangeSimultaneously(t *testing.T) {
	s := newTestState()
	a := &Entity{ID: "a", Kind: KindEnemy, X: 30, Health: 100, MaxHealth: 100}
	b := &Entity{ID: "b", Kind: KindBoss, Y: -90, Health: 300, MaxHealth: 300}
	h := &Entity{ID: "h", Kind: KindHazard, X: 10, Reach: 60}
	s.Entities = []*Entity{a, b, h}

	if hits := Attack(s); hits != 2 {
		t.Fatalf("hits = %d, want 2 (hazards are not damageable)", hits)
	}
}

func TestDeadEntityIsInert(t *testing.T) {
	s := newTestState()
	dead := &Entity{ID: "dead", Kind: KindEnemy, X: 20, Health: 0, MaxHealth: 100}
	alive := &Entity{ID: "alive", Kind: KindEnemy, X: 900, Y: 900, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{dead, alive}
	s.Zone = Zone{Size: 10, MinSize: 10}

	for i := 0; i < 50; i++ {
		Step(s)
		if i%10 == 0 {
			SlowStep(s)
		}
		Attack(s)
	}
	if dead.X != 20 || dead.Y != 0 {
		t.Fatalf("dead entity moved to (%f,%f)", dead.X, dead.Y)
	}
	if dead.Health != 0 {
		t.Fatalf("dead entity health changed to %f", dead.Health)
	}
	if dead.HasAttacked {
		t.Fatalf("dead entity attacked")
	}
}

func TestEntityDeathIsIdempotent(t *testing.T) {
	s := newTestState()
	e := &Entity{ID: "e", Kind: KindEnemy, X: 10, Health: 20, MaxHealth: 100}
	other := &Entity{ID: "o", Kind: KindEnemy, X: 1000, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{e, other}

	Attack(s)
	Attack(s)
	kills := 0
	for _, ev := range s.TakeEvents() {
		if ev.Kind == EventKill && ev.ID == "e" {
			kills++
		}
	}
	if kills != 1 {
		t.Fatalf("kill events = %d, want 1", kills)
	}
	if e.Health != 0 {
		t.Fatalf("health = %f, want 0", e.Health)
	}
}

func TestCollectionIsIrreversible(t *testing.T) {
	s := newTestState()
	c := &Collectible{ID: "b1", X: 30, Y: -30}
	s.Collectibles = []*Collectible{c}
	s.Entities = []*Entity{{ID: "far", Kind: KindEnemy, X: 1000, Health: 1, MaxHealth: 1}}

	Step(s)
	if !c.Collected || s.Player.Collected != 1 {
		t.Fatalf("bling in reach was not collected: %+v, count=%d", c, s.Player.Collected)
	}
	s.Player.X = 500
	Step(s)
	Step(s)
	if !c.Collected || s.Player.Collected != 1 {
		t.Fatalf("collection changed after leaving: %+v, count=%d", c, s.Player.Collected)
	}
	if len(s.Collectibles) != 1 {
		t.Fatalf("collected bling removed from list")
	}
}

func TestCollectionUsesBoxReach(t *testing.T) {
	s := newTestState()
	c := &Collectible{ID: "b1", X: 40, Y: 0}
	s.Collectibles = []*Collectible{c}
	collect(s)
	if c.Collected {
		t.Fatalf("bling at |dx| == reach should not be collected")
	}
}

func TestHazardDamagesEveryTickWithoutCooldown(t *testing.T) {
	s := newTestState()
	s.Entities = []*Entity{
		{ID: "d1", Kind: KindHazard, X: 30, Y: 30, Reach: s.Tuning.HazardReach},
		{ID: "far", Kind: KindEnemy, X: 1000, Health: 1, MaxHealth: 1},
	}
	SlowStep(s)
	SlowStep(s)
	want := s.Tuning.MaxHealth - 2*s.Tuning.HazardDamage
	if s.Player.Health != want {
		t.Fatalf("health = %f, want %f", s.Player.Health, want)
	}
}

func TestHazardIgnoresFlightByDefault(t *testing.T) {
	s := newTestState()
	s.Entities = []*Entity{{ID: "d1", Kind: KindHazard, Reach: s.Tuning.HazardReach}}
	ToggleFlight(s)
	SlowStep(s)
	if s.Player.Health != s.Tuning.MaxHealth-s.Tuning.HazardDamage {
		t.Fatalf("flying player should still be hurt, health=%f", s.Player.Health)
	}

	s.Tuning.FlightEvadesHazards = true
	before := s.Player.Health
	SlowStep(s)
	if s.Player.Health != before {
		t.Fatalf("flight immunity enabled but health dropped to %f", s.Player.Health)
	}
}

func TestBossDamagesInRange(t *testing.T) {
	s := newTestState()
	boss := &Entity{ID: "cat", Kind: KindBoss, X: 60, Health: 300, MaxHealth: 300}
	s.Entities = []*Entity{boss}
	SlowStep(s)
	if s.Player.Health != s.Tuning.MaxHealth-s.Tuning.BossDamage {
		t.Fatalf("health = %f, want %f", s.Player.Health, s.Tuning.MaxHealth-s.Tuning.BossDamage)
	}
}

func TestEnemyAttackCooldown(t *testing.T) {
	s := newTestState()
	s.Tuning.BotAttackCooldown = 500 * time.Millisecond
	bot := &Entity{ID: "bot", Kind: KindEnemy, X: 10, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{bot}

	hits := 0
	for i := 0; i < 20; i++ { // one second of fast ticks
		Step(s)
		for _, ev := range s.TakeEvents() {
			if ev.Kind == EventHit {
				hits++
			}
		}
	}
	if hits != 2 {
		t.Fatalf("hits in 1s with 500ms cooldown = %d, want 2", hits)
	}
}

func TestHealPadHealsWalkingPlayer(t *testing.T) {
	s := newTestState()
	s.HealPads = []HealPad{{ID: "h1", X: 10, Y: 10}}
	s.Player.Health = 50
	SlowStep(s)
	if s.Player.Health != 50+s.Tuning.HealAmount {
		t.Fatalf("health = %f, want %f", s.Player.Health, 50+s.Tuning.HealAmount)
	}
	ToggleFlight(s)
	SlowStep(s)
	if s.Player.Health != 50+s.Tuning.HealAmount {
		t.Fatalf("flying player healed: %f", s.Player.Health)
	}
}

func TestHuntingBotFleesIntoZone(t *testing.T) {
	s := newTestState()
	s.Zone = Zone{Size: 200, MinSize: 100}
	bot := &Entity{ID: "bot", Kind: KindEnemy, X: 500, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{bot}
	s.Player.X = 900 // closer than the zone center, but the zone wins
	s.Player.Y = 0
	moveEntities(s)
	if bot.X != 500-s.Tuning.BotSpeed {
		t.Fatalf("bot x = %f, want %f", bot.X, 500-s.Tuning.BotSpeed)
	}
}

func TestHuntingBotChasesNearestTarget(t *testing.T) {
	s := newTestState()
	bot := &Entity{ID: "bot", Kind: KindEnemy, X: 200, Health: 100, MaxHealth: 100}
	s.Entities = []*Entity{bot}
	moveEntities(s)
	if bot.X != 200-s.Tuning.BotSpeed || bot.Y != 0 {
		t.Fatalf("bot at (%f,%f), want (%f,0)", bot.X, bot.Y, 200-s.Tuning.BotSpeed)
	}
}

func TestHazardsNeverMove(t *testing.T) {
	s := newTestState()
	h := &Entity{ID: "d1", Kind: KindHazard, X: 30, Y: 40, Reach: 60}
	s.Entities = []*Entity{h}
	for i := 0; i < 10; i++ {
		moveEntities(s)
	}
	if h.X != 30 || h.Y != 40 {
		t.Fatalf("hazard moved to (%f,%f)", h.X, h.Y)
	}
}
