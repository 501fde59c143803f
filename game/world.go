package game

import (
	"fmt"
	"math/rand/v2"
)

// NewState generates a fresh session world from a seed. The same seed and
// tuning always produce the same layout.
func NewState(t Tuning, seed uint64) *State {
	s := &State{
		Tuning: t,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		Player: Player{
			Health:  t.MaxHealth,
			Stamina: t.MaxStamina,
			Alive:   true,
		},
		Zone: Zone{
			Size:    t.ZoneStartSize,
			MinSize: t.ZoneMinSize,
		},
	}

	for i, pos := range [][2]float64{{200, 150}, {-450, 300}, {50, -600}, {700, -100}, {-100, 800}} {
		s.Collectibles = append(s.Collectibles, &Collectible{
			ID: fmt.Sprintf("b%d", i+1),
			X:  pos[0],
			Y:  pos[1],
		})
	}
	s.Obstacles = []Obstacle{
		{ID: "w1", X: -200, Y: 60, W: 250, H: 180},
		{ID: "w2", X: 400, Y: 500, W: 100, H: 300},
	}
	s.HealPads = []HealPad{{ID: "h1", X: 800, Y: 800}}

	s.Entities = append(s.Entities,
		&Entity{
			ID:    "d1",
			Name:  "Danger",
			Kind:  KindHazard,
			X:     400,
			Y:     -400,
			Reach: t.HazardReach,
		},
		&Entity{
			ID:        "cat",
			Name:      "Sleeping Cat",
			Kind:      KindBoss,
			X:         -700,
			Y:         -700,
			Health:    t.BossHealth,
			MaxHealth: t.BossHealth,
		},
	)

	// Keep bots clear of the spawn point so the first tick is not a brawl.
	spread := t.HalfWorld * 0.9
	for i := 0; i < t.Bots; i++ {
		var x, y float64
		for attempt := 0; attempt < 16; attempt++ {
			x = (s.rng.Float64()*2 - 1) * spread
			y = (s.rng.Float64()*2 - 1) * spread
			if dist(x, y, 0, 0) > t.BotAggroRange/2 {
				break
			}
		}
		s.Entities = append(s.Entities, &Entity{
			ID:        fmt.Sprintf("bot%d", i+1),
			Name:      fmt.Sprintf("Bot %d", i+1),
			Kind:      KindEnemy,
			X:         x,
			Y:         y,
			Health:    t.BotHealth,
			MaxHealth: t.BotHealth,
		})
	}
	return s
}
