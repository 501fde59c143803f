package network

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"birdroyale/game"
	"birdroyale/protocol"
	"birdroyale/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *session.Manager) {
	t.Helper()
	tuning := game.DefaultTuning()
	tuning.Bots = 0
	mgr := session.NewManager(session.Options{
		Tuning:      tuning,
		FrameHz:     100,
		BroadcastHz: 50,
		Logger:      zerolog.Nop(),
	})
	srv := httptest.NewServer(NewServer(mgr, zerolog.Nop()))
	t.Cleanup(func() {
		srv.Close()
		mgr.StopAll()
	})
	return srv, mgr
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", typ, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

// readUntil reads envelopes until one of type typ arrives.
func readUntil(t *testing.T, conn *websocket.Conn, typ string) protocol.Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("waiting for %s: %v", typ, err)
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.T == typ {
			return env
		}
	}
}

func hello(t *testing.T, conn *websocket.Conn) protocol.Welcome {
	t.Helper()
	send(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Name: "tester", ViewW: 800, ViewH: 600})
	w, err := protocol.DecodePayload[protocol.Welcome](readUntil(t, conn, protocol.MsgWelcome))
	if err != nil {
		t.Fatalf("welcome: %v", err)
	}
	return w
}

func TestWSCreatesSessionAndWelcomesPilot(t *testing.T) {
	srv, mgr := newTestServer(t)
	conn := dial(t, srv, "/ws")

	w := hello(t, conn)
	if w.Role != protocol.RolePilot {
		t.Fatalf("role = %q, want pilot", w.Role)
	}
	if w.TickHz != 20 {
		t.Fatalf("tickHz = %d, want 20", w.TickHz)
	}
	if _, err := mgr.Get(w.SessionID); err != nil {
		t.Fatalf("session %s not registered: %v", w.SessionID, err)
	}
	readUntil(t, conn, protocol.MsgState)
}

func TestWSSecondClientSpectates(t *testing.T) {
	srv, _ := newTestServer(t)
	first := dial(t, srv, "/ws")
	w := hello(t, first)

	second := dial(t, srv, "/ws/"+w.SessionID)
	w2 := hello(t, second)
	if w2.SessionID != w.SessionID || w2.Role != protocol.RoleSpectator {
		t.Fatalf("second welcome = %+v, want spectator of %s", w2, w.SessionID)
	}
}

func TestWSInputMovesPlayer(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "/ws")
	hello(t, conn)
	send(t, conn, protocol.MsgInput, protocol.Input{Dx: 1})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st, err := protocol.DecodePayload[protocol.State](readUntil(t, conn, protocol.MsgState))
		if err != nil {
			t.Fatalf("state: %v", err)
		}
		if st.Player.X > 0 {
			return
		}
	}
	t.Fatalf("player never moved right")
}

func TestWSRejectsMissingHello(t *testing.T) {
	srv, mgr := newTestServer(t)
	conn := dial(t, srv, "/ws")
	send(t, conn, protocol.MsgInput, protocol.Input{Dx: 1})

	e, err := protocol.DecodePayload[protocol.Error](readUntil(t, conn, protocol.MsgError))
	if err != nil || e.Message != "expected hello" {
		t.Fatalf("error = %+v, %v", e, err)
	}
	if n := len(mgr.List()); n != 0 {
		t.Fatalf("sessions = %d, want none created", n)
	}
}

func TestWSRejectsWrongVersion(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "/ws")
	send(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version + 1})

	e, err := protocol.DecodePayload[protocol.Error](readUntil(t, conn, protocol.MsgError))
	if err != nil || e.Message != "unsupported protocol version" {
		t.Fatalf("error = %+v, %v", e, err)
	}
}

func TestWSUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("resp = %v, want 404", resp)
	}
}

func TestWSLeaveDropsSession(t *testing.T) {
	srv, mgr := newTestServer(t)
	conn := dial(t, srv, "/ws")
	w := hello(t, conn)
	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := mgr.Get(w.SessionID); err != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("session %s still registered after last client left", w.SessionID)
}

func TestRESTLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(`{"seed":7,"bots":0}`))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated || created.ID == "" {
		t.Fatalf("create status=%d id=%q", resp.StatusCode, created.ID)
	}

	resp, err = http.Get(srv.URL + "/api/sessions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var list []session.Info
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("list = %+v", list)
	}

	resp, err = http.Get(srv.URL + "/api/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var st protocol.State
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	resp.Body.Close()
	if st.Outcome != "running" || len(st.Collectibles) != 5 {
		t.Fatalf("state outcome=%q collectibles=%d", st.Outcome, len(st.Collectibles))
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/sessions/" + created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestRESTRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(`{"seed":`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRESTRejectsTooManyBots(t *testing.T) {
	srv, mgr := newTestServer(t)
	body := fmt.Sprintf(`{"bots":%d}`, game.MaxBots+1)
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if n := len(mgr.List()); n != 0 {
		t.Fatalf("sessions = %d, want none created", n)
	}

	resp, err = http.Post(srv.URL+"/api/sessions", "application/json", strings.NewReader(fmt.Sprintf(`{"bots":%d}`, game.MaxBots)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status at the cap = %d, want 201", resp.StatusCode)
	}
}
