package protocol

type Init struct {
	ID         uint32  `json:"id" msgpack:"id"`
	MapWidth   float64 `json:"mapWidth" msgpack:"mapWidth"`
	MapHeight  float64 `json:"mapHeight" msgpack:"mapHeight"`
	ClickRange float64 `json:"clickRange" msgpack:"clickRange"`
}

// State is the per-tick snapshot. Connection indices point into Dots of the
// same message. Stamina is the recipient's own.
type State struct {
	Tick        int           `json:"tick" msgpack:"tick"`
	Dots        []DotSnapshot `json:"dots" msgpack:"dots"`
	Connections [][2]int      `json:"connections" msgpack:"connections"`
	Stamina     float64       `json:"stamina" msgpack:"stamina"`
}

// DotSnapshot carries Owner 0 for a neutral dot.
type DotSnapshot struct {
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	Owner uint32  `json:"owner" msgpack:"owner"`
}

type Respawn struct{}

// ClickBroadcast echoes an accepted click to the other players.
type ClickBroadcast struct {
	ID   uint32   `json:"id" msgpack:"id"`
	X    float64  `json:"x" msgpack:"x"`
	Y    float64  `json:"y" msgpack:"y"`
	PX   *float64 `json:"px,omitempty" msgpack:"px,omitempty"`
	PY   *float64 `json:"py,omitempty" msgpack:"py,omitempty"`
	Stam float64  `json:"stam" msgpack:"stam"`
}
