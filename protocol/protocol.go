package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgInput   = "input"
	MsgFly     = "fly"
	MsgAttack  = "attack"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgOver    = "over"
	MsgError   = "error"
)

const (
	Version     = 1
	FrameHz     = 60
	BroadcastHz = 20
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes
}
