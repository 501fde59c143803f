package session

import (
	"birdroyale/game"
	"birdroyale/protocol"
)

// BuildSnapshot copies the presentation view of s. Dead entities and
// collected blings are left out; the camera is computed for the viewport.
func BuildSnapshot(s *game.State, viewW, viewH float64, events []game.Event) protocol.State {
	p := s.Player
	snapshot := protocol.State{
		Tick:   s.Tick,
		TimeMs: s.Time.Milliseconds(),
		Player: protocol.PlayerSnapshot{
			X:         p.X,
			Y:         p.Y,
			Health:    p.Health,
			Stamina:   p.Stamina,
			Flying:    p.Flying,
			Alive:     p.Alive,
			Collected: p.Collected,
		},
		Entities:     make([]protocol.EntitySnapshot, 0, len(s.Entities)),
		Collectibles: make([]protocol.CollectibleSnapshot, 0, len(s.Collectibles)),
		Obstacles:    make([]protocol.BoxSnapshot, 0, len(s.Obstacles)),
		HealPads:     make([]protocol.PointSnapshot, 0, len(s.HealPads)),
		Zone: protocol.ZoneSnapshot{
			X:      s.Zone.X,
			Y:      s.Zone.Y,
			Radius: s.Zone.Radius(),
			Status: s.Zone.Status(),
		},
		HalfWorld: s.Tuning.HalfWorld,
		Alive:     game.AliveCount(s),
		Outcome:   s.Outcome.String(),
	}
	snapshot.Camera.X, snapshot.Camera.Y = game.Camera(s, viewW, viewH)

	for _, e := range s.Entities {
		if !e.Alive() {
			continue
		}
		snapshot.Entities = append(snapshot.Entities, protocol.EntitySnapshot{
			ID:        e.ID,
			Name:      e.Name,
			Kind:      e.Kind.String(),
			X:         e.X,
			Y:         e.Y,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
			Reach:     e.Reach,
		})
	}
	for _, c := range s.Collectibles {
		if c.Collected {
			continue
		}
		snapshot.Collectibles = append(snapshot.Collectibles, protocol.CollectibleSnapshot{ID: c.ID, X: c.X, Y: c.Y})
	}
	for _, o := range s.Obstacles {
		snapshot.Obstacles = append(snapshot.Obstacles, protocol.BoxSnapshot{ID: o.ID, X: o.X, Y: o.Y, W: o.W, H: o.H})
	}
	for _, h := range s.HealPads {
		snapshot.HealPads = append(snapshot.HealPads, protocol.PointSnapshot{ID: h.ID, X: h.X, Y: h.Y})
	}
	for _, ev := range events {
		snapshot.Events = append(snapshot.Events, protocol.EventSnapshot{Kind: string(ev.Kind), ID: ev.ID, Amount: ev.Amount})
	}
	return snapshot
}
