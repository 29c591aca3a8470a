package room

import (
	"graphio/game"
	"graphio/protocol"
)

// Conn is the transport side of a player. Send must not block the room.
type Conn interface {
	Send([]byte) error
	Close() error
	Codec() protocol.Codec
}

// Join: issued once after the connection is upgraded
type Join struct {
	Conn    Conn
	Session string
	Reply   chan<- JoinResult
}

type JoinResult struct {
	PlayerID game.PlayerID
}

// Click: a click or drag request from a player
type Click struct {
	PlayerID game.PlayerID
	Click    protocol.Click
}

// Leave: issued on disconnect
type Leave struct {
	PlayerID game.PlayerID
}

// StatusRequest asks the room loop for a point-in-time Status.
type StatusRequest struct {
	Reply chan<- Status
}

// Status is returned by the API for monitoring.
type Status struct {
	Tick    int `json:"tick"`
	Players int `json:"players"`
	Dots    int `json:"dots"`
}
