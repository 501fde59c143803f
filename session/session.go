package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"birdroyale/game"
	"birdroyale/protocol"
)

var ErrStopped = errors.New("session stopped")

type Options struct {
	Tuning      game.Tuning
	Seed        uint64
	FrameHz     int
	BroadcastHz int
	Clock       Clock
	Logger      zerolog.Logger
}

// Info is the summary the session list exposes. It is republished after
// every frame so other goroutines never touch the game state.
type Info struct {
	ID      string `json:"id"`
	Tick    int    `json:"tick"`
	Alive   int    `json:"alive"`
	Outcome string `json:"outcome"`
	Clients int    `json:"clients"`
}

type client struct {
	conn         Conn
	name         string
	role         string
	viewW, viewH float64
}

// Session owns one game.State. Run is the only goroutine that touches it;
// everything else talks to the session through Inbox.
type Session struct {
	Inbox          chan any
	ID             string
	OnEmpty        func(id string) // called when the last client leaves
	frameInterval  time.Duration
	broadcastEvery int
	clock          Clock
	log            zerolog.Logger

	state   *game.State
	loop    *game.Loop
	clients map[string]*client
	pilot   string
	nextID  int
	pending []game.Event
	frames  int
	last    time.Time
	over    bool

	info     atomic.Pointer[Info]
	quit     chan struct{}
	stopOnce sync.Once
}

func New(id string, opts Options) *Session {
	frameHz := opts.FrameHz
	if frameHz <= 0 {
		frameHz = protocol.FrameHz
	}
	broadcastHz := opts.BroadcastHz
	if broadcastHz <= 0 {
		broadcastHz = protocol.BroadcastHz
	}
	broadcastEvery := frameHz / broadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	clock := opts.Clock
	if clock == nil {
		clock = systemClock{}
	}
	r := &Session{
		Inbox:          make(chan any, 256),
		ID:             id,
		frameInterval:  time.Second / time.Duration(frameHz),
		broadcastEvery: broadcastEvery,
		clock:          clock,
		log:            opts.Logger.With().Str("session", id).Logger(),
		state:          game.NewState(opts.Tuning, opts.Seed),
		loop:           game.NewLoop(opts.Tuning),
		clients:        make(map[string]*client),
		nextID:         1,
		quit:           make(chan struct{}),
	}
	r.publishInfo()
	return r
}

func (r *Session) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
	})
}

// Done is closed once the session has been stopped.
func (r *Session) Done() <-chan struct{} {
	return r.quit
}

func (r *Session) Info() Info {
	return *r.info.Load()
}

// Post delivers a command unless the session has been stopped.
func (r *Session) Post(cmd any) bool {
	select {
	case r.Inbox <- cmd:
		return true
	case <-r.quit:
		return false
	}
}

// Snapshot returns the current snapshot for a default-sized viewport.
func (r *Session) Snapshot(ctx context.Context) (protocol.State, error) {
	reply := make(chan protocol.State, 1)
	select {
	case r.Inbox <- SnapshotRequest{Reply: reply}:
	case <-r.quit:
		return protocol.State{}, ErrStopped
	case <-ctx.Done():
		return protocol.State{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-r.quit:
		return protocol.State{}, ErrStopped
	case <-ctx.Done():
		return protocol.State{}, ctx.Err()
	}
}

func (r *Session) Run() {
	ticker := time.NewTicker(r.frameInterval)
	defer ticker.Stop()
	tick := ticker.C
	r.last = r.clock.Now()

	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-tick:
			r.frame()
		}
		if r.over && tick != nil {
			// Both timers stop together: the loop drives fast and slow ticks.
			ticker.Stop()
			tick = nil
		}
	}
}

// frame measures elapsed wall time and lets the loop turn it into fixed steps.
func (r *Session) frame() {
	if r.over {
		return
	}
	now := r.clock.Now()
	elapsed := now.Sub(r.last)
	r.last = now

	r.loop.Advance(r.state, elapsed)
	r.pending = append(r.pending, r.state.TakeEvents()...)
	r.frames++
	r.publishInfo()

	if r.state.Outcome.Terminal() {
		r.finish()
		return
	}
	if r.frames%r.broadcastEvery == 0 {
		r.broadcastState()
	}
}

func (r *Session) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		r.handleJoin(c)
	case Input:
		if c.ClientID != r.pilot || r.pilot == "" {
			return
		}
		game.SetInput(r.state, c.Input)
	case ToggleFlight:
		if c.ClientID != r.pilot || r.pilot == "" {
			return
		}
		game.ToggleFlight(r.state)
	case Attack:
		if c.ClientID != r.pilot || r.pilot == "" {
			return
		}
		if hits := game.Attack(r.state); hits > 0 {
			r.log.Debug().Int("hits", hits).Msg("attack landed")
		}
		r.pending = append(r.pending, r.state.TakeEvents()...)
		if r.state.Outcome.Terminal() && !r.over {
			r.publishInfo()
			r.finish()
		}
	case Resize:
		if cl, ok := r.clients[c.ClientID]; ok {
			cl.viewW, cl.viewH = r.viewport(c.ViewW, c.ViewH)
		}
	case Leave:
		r.handleLeave(c.ClientID)
	case SnapshotRequest:
		t := r.state.Tuning
		c.Reply <- BuildSnapshot(r.state, t.ViewWidth, t.ViewHeight, nil)
	default:
		r.log.Warn().Str("type", fmt.Sprintf("%T", cmd)).Msg("unknown session command")
	}
}

func (r *Session) handleJoin(c Join) {
	clientID := fmt.Sprintf("c%d", r.nextID)
	r.nextID++
	role := protocol.RoleSpectator
	if r.pilot == "" && !r.over {
		role = protocol.RolePilot
		r.pilot = clientID
	}
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("Bird %d", r.nextID-1)
	}
	cl := &client{conn: c.Conn, name: name, role: role}
	cl.viewW, cl.viewH = r.viewport(c.ViewW, c.ViewH)
	r.clients[clientID] = cl
	r.publishInfo()
	r.log.Info().Str("client", clientID).Str("name", name).Str("role", role).Msg("client joined")

	c.Reply <- JoinResult{ClientID: clientID, Role: role}

	welcome, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{
		SessionID: r.ID,
		Role:      role,
		TickHz:    int(time.Second / r.state.Tuning.FastTick),
	})
	if err == nil {
		_ = cl.conn.Send(welcome)
	}
	r.sendStateTo(cl, nil)
	if r.over {
		r.sendOverTo(cl)
	}
}

func (r *Session) viewport(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return r.state.Tuning.ViewWidth, r.state.Tuning.ViewHeight
	}
	return w, h
}

func (r *Session) handleLeave(clientID string) {
	c, ok := r.clients[clientID]
	if !ok {
		return
	}
	_ = c.Close()
	delete(r.clients, clientID)
	if r.pilot == clientID {
		r.pilot = ""
		game.SetInput(r.state, game.Input{})
	}
	r.publishInfo()
	r.log.Info().Str("client", clientID).Msg("client left")
	if len(r.clients) == 0 && r.OnEmpty != nil {
		r.OnEmpty(r.ID)
	}
}

func (c *client) Close() error {
	return c.conn.Close()
}

func (r *Session) removeClient(clientID string) {
	if c, ok := r.clients[clientID]; ok {
		_ = c.Close()
	}
	delete(r.clients, clientID)
	if r.pilot == clientID {
		r.pilot = ""
		game.SetInput(r.state, game.Input{})
	}
}

// finish sends the last snapshot and the result, then freezes the session.
func (r *Session) finish() {
	r.over = true
	r.broadcastState()
	for _, c := range r.clients {
		r.sendOverTo(c)
	}
	r.log.Info().
		Str("outcome", r.state.Outcome.String()).
		Int("tick", r.state.Tick).
		Int("collected", r.state.Player.Collected).
		Msg("session over")
}

func (r *Session) broadcastState() {
	events := r.pending
	r.pending = nil

	var failed []string
	for id, c := range r.clients {
		if err := r.sendStateTo(c, events); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.log.Warn().Str("client", id).Msg("dropping client after failed send")
		r.removeClient(id)
	}
	if len(failed) > 0 {
		r.publishInfo()
		if len(r.clients) == 0 && r.OnEmpty != nil {
			r.OnEmpty(r.ID)
		}
	}
}

func (r *Session) sendStateTo(c *client, events []game.Event) error {
	snapshot := BuildSnapshot(r.state, c.viewW, c.viewH, events)
	b, err := protocol.Encode(protocol.MsgState, snapshot)
	if err != nil {
		return nil
	}
	return c.conn.Send(b)
}

func (r *Session) sendOverTo(c *client) {
	b, err := protocol.Encode(protocol.MsgOver, protocol.Over{
		Outcome:   r.state.Outcome.String(),
		Tick:      r.state.Tick,
		Collected: r.state.Player.Collected,
	})
	if err != nil {
		return
	}
	_ = c.conn.Send(b)
}

func (r *Session) publishInfo() {
	r.info.Store(&Info{
		ID:      r.ID,
		Tick:    r.state.Tick,
		Alive:   game.AliveCount(r.state),
		Outcome: r.state.Outcome.String(),
		Clients: len(r.clients),
	})
}
