package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"birdroyale/game"
)

// Terminals report key presses but never releases, and auto-repeat fires
// every ~30-50ms while a key is held. A direction stays held until it has
// not repeated for keyTimeout.
const keyTimeout = 150 * time.Millisecond

type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionFly
	ActionAttack
	ActionQuit
)

type direction int

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
)

// Keys tracks held directions from repeated key presses.
type Keys struct {
	held map[direction]time.Time
}

func NewKeys() *Keys {
	return &Keys{held: make(map[direction]time.Time)}
}

// Press records a key event and reports what it means.
func (k *Keys) Press(ev *tcell.EventKey, now time.Time) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		return k.hold(dirLeft, now)
	case tcell.KeyRight:
		return k.hold(dirRight, now)
	case tcell.KeyUp:
		return k.hold(dirUp, now)
	case tcell.KeyDown:
		return k.hold(dirDown, now)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return k.hold(dirLeft, now)
		case 'd', 'D':
			return k.hold(dirRight, now)
		case 'w', 'W':
			return k.hold(dirUp, now)
		case 's', 'S':
			return k.hold(dirDown, now)
		case 'f', 'F':
			return ActionFly
		case ' ':
			return ActionAttack
		case 'q', 'Q':
			return ActionQuit
		}
	}
	return ActionNone
}

func (k *Keys) hold(d direction, now time.Time) Action {
	// Pressing one side cancels the other immediately.
	switch d {
	case dirLeft:
		delete(k.held, dirRight)
	case dirRight:
		delete(k.held, dirLeft)
	case dirUp:
		delete(k.held, dirDown)
	case dirDown:
		delete(k.held, dirUp)
	}
	k.held[d] = now
	return ActionMove
}

func (k *Keys) down(d direction, now time.Time) bool {
	last, ok := k.held[d]
	return ok && now.Sub(last) < keyTimeout
}

// Vector returns the direction currently held, y pointing down.
func (k *Keys) Vector(now time.Time) game.Input {
	var in game.Input
	if k.down(dirLeft, now) {
		in.DX--
	}
	if k.down(dirRight, now) {
		in.DX++
	}
	if k.down(dirUp, now) {
		in.DY--
	}
	if k.down(dirDown, now) {
		in.DY++
	}
	return in
}
