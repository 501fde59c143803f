package session

import (
	"errors"
	"fmt"

	"birdroyale/game"
	"birdroyale/protocol"
)

var ErrUnknownMessage = errors.New("unknown message type")

// CommandFor maps a client envelope from an already joined client to the
// session command it stands for. A repeated hello only updates the viewport.
func CommandFor(clientID string, env protocol.Envelope) (any, error) {
	switch env.T {
	case protocol.MsgInput:
		in, err := protocol.DecodePayload[protocol.Input](env)
		if err != nil {
			return nil, err
		}
		return Input{ClientID: clientID, Input: game.Input{DX: in.Dx, DY: in.Dy}}, nil
	case protocol.MsgFly:
		return ToggleFlight{ClientID: clientID}, nil
	case protocol.MsgAttack:
		return Attack{ClientID: clientID}, nil
	case protocol.MsgHello:
		hello, err := protocol.DecodePayload[protocol.Hello](env)
		if err != nil {
			return nil, err
		}
		return Resize{ClientID: clientID, ViewW: hello.ViewW, ViewH: hello.ViewH}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, env.T)
	}
}
