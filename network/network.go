package network

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"birdroyale/protocol"
	"birdroyale/session"
)

const (
	readLimit    = 1 << 20 // 1MB
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingEvery    = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// For dev, allow all origins. Lock this down in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsConn adapts a websocket to session.Conn. Sends come from the session
// goroutine and pings from the ping loop, so writes are serialized.
type wsConn struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	closeOnce sync.Once
	done      chan struct{}
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn, done: make(chan struct{})}
}

func (c *wsConn) Send(b []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func (c *wsConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

func (c *wsConn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// handleWS joins an existing session (/ws/{id}) or a fresh one (/ws).
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	var sess *session.Session
	if id, ok := mux.Vars(r)["id"]; ok {
		found, err := s.sessions.Get(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		sess = found
	}

	// Upgrade HTTP -> WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	s.serveConn(sess, newWSConn(conn))
}

// serveConn runs one client connection. A nil sess creates a fresh session
// once the hello has been accepted.
func (s *Server) serveConn(sess *session.Session, c *wsConn) {
	defer c.Close()

	// Basic timeouts + pong handling (keeps connections healthy)
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go func() {
		ticker := time.NewTicker(pingEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := c.ping(); err != nil {
					return
				}
			case <-c.done:
				return
			}
		}
	}()

	hello, ok := s.readHello(c)
	if !ok {
		return
	}
	if sess == nil {
		sess = s.sessions.Create(session.CreateParams{})
	}
	log := s.log.With().Str("session", sess.ID).Logger()
	reply := make(chan session.JoinResult, 1)
	if !sess.Post(session.Join{Conn: c, Name: hello.Name, ViewW: hello.ViewW, ViewH: hello.ViewH, Reply: reply}) {
		s.sendError(c, "session is closed")
		return
	}
	var res session.JoinResult
	select {
	case res = <-reply:
	case <-sess.Done():
		return
	}
	log.Debug().Str("client", res.ClientID).Str("role", res.Role).Msg("ws joined")
	defer sess.Post(session.Leave{ClientID: res.ClientID})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("ws read")
			}
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			log.Debug().Err(err).Msg("dropping malformed message")
			continue
		}
		cmd, err := session.CommandFor(res.ClientID, env)
		if err != nil {
			log.Debug().Err(err).Msg("dropping message")
			continue
		}
		if !sess.Post(cmd) {
			return
		}
	}
}

// readHello waits for the opening hello message.
func (s *Server) readHello(c *wsConn) (protocol.Hello, bool) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return protocol.Hello{}, false
	}
	env, err := protocol.DecodeEnvelope(msg)
	if err != nil || env.T != protocol.MsgHello {
		s.sendError(c, "expected hello")
		return protocol.Hello{}, false
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		s.sendError(c, "malformed hello")
		return protocol.Hello{}, false
	}
	if hello.V != protocol.Version {
		s.sendError(c, "unsupported protocol version")
		return protocol.Hello{}, false
	}
	return hello, true
}

func (s *Server) sendError(c *wsConn, message string) {
	b, err := protocol.Encode(protocol.MsgError, protocol.Error{Message: message})
	if err != nil {
		return
	}
	_ = c.Send(b)
}
