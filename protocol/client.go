package protocol

import "errors"

//input structs coming in from the client.

var (
	ErrMissingTarget = errors.New("click without x/y")
	ErrHalfDrag      = errors.New("drag origin needs both px and py")
)

// Click requests a point click at (X,Y), or a drag from (PX,PY) to (X,Y)
// when both origin fields are present. Fields are pointers so a frame that
// leaves one out can be told apart from one that sends zero.
type Click struct {
	X  *float64 `json:"x" msgpack:"x"`
	Y  *float64 `json:"y" msgpack:"y"`
	PX *float64 `json:"px,omitempty" msgpack:"px,omitempty"`
	PY *float64 `json:"py,omitempty" msgpack:"py,omitempty"`
}

func PointClick(x, y float64) Click {
	return Click{X: &x, Y: &y}
}

func DragClick(px, py, x, y float64) Click {
	return Click{X: &x, Y: &y, PX: &px, PY: &py}
}

// Validate rejects clicks with a missing target or half a drag origin.
func (c Click) Validate() error {
	if c.X == nil || c.Y == nil {
		return ErrMissingTarget
	}
	if (c.PX == nil) != (c.PY == nil) {
		return ErrHalfDrag
	}
	return nil
}

// IsDrag reports whether the click carries a drag origin.
func (c Click) IsDrag() bool {
	return c.PX != nil && c.PY != nil
}
