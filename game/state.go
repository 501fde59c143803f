package game

import (
	"math/rand/v2"
	"time"
)

// Internal truth: the session host owns exactly one State and mutates it only
// through the functions in this package.

type Outcome uint8

const (
	Running Outcome = iota
	Victory
	Defeat
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "running"
	}
}

// Terminal reports whether the session is over.
func (o Outcome) Terminal() bool {
	return o != Running
}

type State struct {
	Tick   int
	Time   time.Duration // simulation time, advanced by FastTick per Step
	Tuning Tuning

	Player       Player
	Input        Input
	Entities     []*Entity
	Collectibles []*Collectible
	Obstacles    []Obstacle
	HealPads     []HealPad
	Zone         Zone

	Outcome Outcome
	// Events lists what happened during the latest Step/SlowStep/action.
	// Hosts drain it with TakeEvents.
	Events []Event

	rng *rand.Rand
}

type Player struct {
	X, Y      float64
	Health    float64
	Stamina   float64
	Flying    bool
	Alive     bool
	Collected int
}

// Input is the buffered direction vector, -1..1 per axis.
type Input struct {
	DX, DY float64
}

type Collectible struct {
	ID        string
	X, Y      float64
	Collected bool
}

// Obstacle is water: an axis-aligned box with a top-left origin.
type Obstacle struct {
	ID         string
	X, Y, W, H float64
}

type HealPad struct {
	ID   string
	X, Y float64
}

type EventKind string

const (
	EventHit     EventKind = "hit"     // the player took damage
	EventPickup  EventKind = "pickup"  // a bling was collected
	EventKill    EventKind = "kill"    // an entity died
	EventShrink  EventKind = "shrink"  // the zone shrank
	EventZone    EventKind = "zone"    // the zone reached its floor
	EventLanded  EventKind = "landed"  // stamina ran out mid-flight
	EventVictory EventKind = "victory" // no contenders left
	EventDefeat  EventKind = "defeat"  // the player died
)

type Event struct {
	Kind   EventKind
	ID     string
	Amount float64
}

func (s *State) emit(kind EventKind, id string, amount float64) {
	s.Events = append(s.Events, Event{Kind: kind, ID: id, Amount: amount})
}

// TakeEvents returns the pending events and clears the list.
func (s *State) TakeEvents() []Event {
	ev := s.Events
	s.Events = nil
	return ev
}

// Camera returns the world-layer translation for a viewport of the given size:
// the negated player position plus the world-center constant.
func Camera(s *State, viewW, viewH float64) (float64, float64) {
	half := s.Tuning.HalfWorld
	return viewW/2 - half - s.Player.X, viewH/2 - half - s.Player.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
