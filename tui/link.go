package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"birdroyale/protocol"
	"birdroyale/session"
)

// Link carries protocol messages between the terminal client and a session,
// either in-process or over a websocket.
type Link interface {
	Send(msgType string, payload any) error
	Messages() <-chan protocol.Envelope
	Close() error
}

// LocalLink runs a private session in-process and joins it as the pilot.
type LocalLink struct {
	sess     *session.Session
	clientID string
	in       chan protocol.Envelope
	done     chan struct{}
	once     sync.Once
}

// localConn is the session side of a LocalLink.
type localConn struct {
	link *LocalLink
}

func (c localConn) Send(b []byte) error {
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		return err
	}
	if env.T == protocol.MsgState {
		// A newer state supersedes a dropped one.
		select {
		case c.link.in <- env:
		default:
		}
		return nil
	}
	select {
	case c.link.in <- env:
		return nil
	case <-c.link.done:
		return fmt.Errorf("link closed")
	}
}

func (c localConn) Close() error { return nil }

func NewLocalLink(opts session.Options, hello protocol.Hello) (*LocalLink, error) {
	l := &LocalLink{
		sess: session.New("local", opts),
		in:   make(chan protocol.Envelope, 64),
		done: make(chan struct{}),
	}
	go l.sess.Run()

	reply := make(chan session.JoinResult, 1)
	if !l.sess.Post(session.Join{Conn: localConn{link: l}, Name: hello.Name, ViewW: hello.ViewW, ViewH: hello.ViewH, Reply: reply}) {
		return nil, session.ErrStopped
	}
	select {
	case res := <-reply:
		l.clientID = res.ClientID
	case <-time.After(5 * time.Second):
		l.sess.Stop()
		return nil, fmt.Errorf("join local session: timed out")
	}
	return l, nil
}

// Send goes through the same envelope path as a network client.
func (l *LocalLink) Send(msgType string, payload any) error {
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	env, err := protocol.DecodeEnvelope(b)
	if err != nil {
		return err
	}
	cmd, err := session.CommandFor(l.clientID, env)
	if err != nil {
		return err
	}
	if !l.sess.Post(cmd) {
		return session.ErrStopped
	}
	return nil
}

func (l *LocalLink) Messages() <-chan protocol.Envelope { return l.in }

func (l *LocalLink) Close() error {
	l.once.Do(func() {
		close(l.done)
		l.sess.Stop()
	})
	return nil
}

// RemoteLink talks to a birdroyale server over a websocket.
type RemoteLink struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	in      chan protocol.Envelope
	done    chan struct{}
	once    sync.Once
}

// DialRemote connects to url (ws://host/ws or ws://host/ws/{id}) and sends hello.
func DialRemote(ctx context.Context, url string, hello protocol.Hello) (*RemoteLink, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	l := &RemoteLink{
		conn: conn,
		in:   make(chan protocol.Envelope, 64),
		done: make(chan struct{}),
	}
	if err := l.Send(protocol.MsgHello, hello); err != nil {
		conn.Close()
		return nil, err
	}
	go l.readLoop()
	return l, nil
}

func (l *RemoteLink) readLoop() {
	defer close(l.in)
	for {
		_, msg, err := l.conn.ReadMessage()
		if err != nil {
			return
		}
		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			continue
		}
		select {
		case l.in <- env:
		case <-l.done:
			return
		}
	}
}

func (l *RemoteLink) Send(msgType string, payload any) error {
	b, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	_ = l.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return l.conn.WriteMessage(websocket.TextMessage, b)
}

func (l *RemoteLink) Messages() <-chan protocol.Envelope { return l.in }

func (l *RemoteLink) Close() error {
	var err error
	l.once.Do(func() {
		close(l.done)
		l.writeMu.Lock()
		_ = l.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		l.writeMu.Unlock()
		err = l.conn.Close()
	})
	return err
}
