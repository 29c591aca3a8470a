package protocol

const (
	MsgInit    = "init"
	MsgState   = "state"
	MsgRespawn = "respawn"
	MsgClick   = "click"
)

const (
	SimTickHz   = 60
	BroadcastHz = 60
)

// Envelope is a decoded frame: the message type and its still-encoded payload.
type Envelope struct {
	T string
	P []byte
}
