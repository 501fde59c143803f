package session

import (
	"birdroyale/game"
	"birdroyale/protocol"
)

type Conn interface {
	Send([]byte) error
	Close() error
}

// Join: issued once after hello parsed
type Join struct {
	Conn         Conn
	Name         string
	ViewW, ViewH float64
	Reply        chan<- JoinResult
}

type JoinResult struct {
	ClientID string
	Role     string
}

// Input: latest direction vector from the pilot
type Input struct {
	ClientID string
	Input    game.Input
}

// ToggleFlight and Attack are momentary pilot actions, applied on receipt.
type ToggleFlight struct {
	ClientID string
}

type Attack struct {
	ClientID string
}

// Resize updates the viewport used for a client's camera offset.
type Resize struct {
	ClientID     string
	ViewW, ViewH float64
}

// Leave: issued on disconnect
type Leave struct {
	ClientID string
}

// SnapshotRequest asks for the current snapshot outside the broadcast cadence.
type SnapshotRequest struct {
	Reply chan<- protocol.State
}
