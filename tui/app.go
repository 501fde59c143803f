package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"birdroyale/game"
	"birdroyale/protocol"
)

var ErrDisconnected = errors.New("disconnected from session")

// Sounds plays event cues; audio.SoundManager satisfies it.
type Sounds interface {
	Play(kind game.EventKind)
}

type silent struct{}

func (silent) Play(game.EventKind) {}

// Result is how a game ended for the terminal client.
type Result struct {
	Outcome   string // victory, defeat, or empty when the player quit
	Tick      int
	Collected int
}

type App struct {
	screen tcell.Screen
	link   Link
	sounds Sounds
	log    zerolog.Logger
	keys   *Keys
	now    func() time.Time

	role      string
	state     protocol.State
	hasState  bool
	lastInput game.Input
}

func NewApp(screen tcell.Screen, link Link, sounds Sounds, log zerolog.Logger) *App {
	if sounds == nil {
		sounds = silent{}
	}
	return &App{
		screen: screen,
		link:   link,
		sounds: sounds,
		log:    log,
		keys:   NewKeys(),
		now:    time.Now,
		role:   protocol.RoleSpectator,
	}
}

// Run drives the screen until the session is over, the player quits, or the
// link drops.
func (a *App) Run(ctx context.Context) (Result, error) {
	quit := make(chan struct{})
	defer close(quit)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / protocol.FrameHz)
	defer ticker.Stop()

	msgs := a.link.Messages()
	for {
		select {
		case <-ctx.Done():
			return Result{}, nil
		case ev := <-events:
			if stop := a.handleEvent(ev); stop {
				return Result{}, nil
			}
		case env, ok := <-msgs:
			if !ok {
				return Result{}, ErrDisconnected
			}
			if res, over := a.handleMessage(env); over {
				return res, nil
			}
		case <-ticker.C:
			a.sendInput()
			a.draw()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch a.keys.Press(ev, a.now()) {
		case ActionQuit:
			return true
		case ActionMove:
			a.sendInput()
		case ActionFly:
			a.send(protocol.MsgFly, protocol.Fly{})
		case ActionAttack:
			a.send(protocol.MsgAttack, protocol.Attack{})
		}
	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ViewSize(a.screen.Size())
		a.send(protocol.MsgHello, protocol.Hello{V: protocol.Version, ViewW: w, ViewH: h})
	}
	return false
}

// sendInput sends the held direction when it changes; the session keeps the
// last vector until told otherwise.
func (a *App) sendInput() {
	if a.role != protocol.RolePilot {
		return
	}
	in := a.keys.Vector(a.now())
	if in == a.lastInput {
		return
	}
	a.lastInput = in
	a.send(protocol.MsgInput, protocol.Input{Dx: in.DX, Dy: in.DY})
}

func (a *App) send(msgType string, payload any) {
	if err := a.link.Send(msgType, payload); err != nil {
		a.log.Warn().Err(err).Str("type", msgType).Msg("send failed")
	}
}

func (a *App) handleMessage(env protocol.Envelope) (Result, bool) {
	switch env.T {
	case protocol.MsgWelcome:
		w, err := protocol.DecodePayload[protocol.Welcome](env)
		if err != nil {
			a.log.Warn().Err(err).Msg("bad welcome")
			return Result{}, false
		}
		a.role = w.Role
		a.log.Info().Str("session", w.SessionID).Str("role", w.Role).Int("tick_hz", w.TickHz).Msg("joined")
	case protocol.MsgState:
		st, err := protocol.DecodePayload[protocol.State](env)
		if err != nil {
			a.log.Warn().Err(err).Msg("bad state")
			return Result{}, false
		}
		a.state, a.hasState = st, true
		for _, ev := range st.Events {
			a.sounds.Play(game.EventKind(ev.Kind))
		}
	case protocol.MsgOver:
		over, err := protocol.DecodePayload[protocol.Over](env)
		if err != nil {
			a.log.Warn().Err(err).Msg("bad over")
			return Result{}, false
		}
		a.draw()
		return Result{Outcome: over.Outcome, Tick: over.Tick, Collected: over.Collected}, true
	case protocol.MsgError:
		e, _ := protocol.DecodePayload[protocol.Error](env)
		a.log.Error().Str("message", e.Message).Msg("server error")
	}
	return Result{}, false
}

func (a *App) draw() {
	if !a.hasState {
		return
	}
	Draw(a.screen, &a.state, a.role)
}
