package motion

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/flowpath/core"
)

// Direction is an 8-way compass heading, North is +Y, numbered clockwise
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var directionOffsets = [8]core.Point{
	{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: -1},
	{X: 0, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 0}, {X: -1, Y: 1},
}

func (d Direction) String() string {
	if d > NorthWest {
		return fmt.Sprintf("Direction(%d)", d)
	}
	return directionNames[d]
}

// ParseDirection accepts the short compass names (N, NE, ...) and the long forms
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "N", "n", "north":
		return North, nil
	case "NE", "ne", "northeast":
		return NorthEast, nil
	case "E", "e", "east":
		return East, nil
	case "SE", "se", "southeast":
		return SouthEast, nil
	case "S", "s", "south", "":
		return South, nil
	case "SW", "sw", "southwest":
		return SouthWest, nil
	case "W", "w", "west":
		return West, nil
	case "NW", "nw", "northwest":
		return NorthWest, nil
	}
	return South, fmt.Errorf("motion: unknown direction %q", s)
}

// Offset returns the unit grid step, components in {-1,0,1}
func (d Direction) Offset() core.Point {
	return directionOffsets[d&7]
}

// Vector returns the unnormalized step as a float vector
func (d Direction) Vector() cp.Vector {
	o := d.Offset()
	return cp.Vector{X: float64(o.X), Y: float64(o.Y)}
}

// IsDiagonal reports whether d is one of the four intercardinal headings
func (d Direction) IsDiagonal() bool {
	return d&1 == 1
}

// CW45 rotates d one step clockwise
func (d Direction) CW45() Direction { return (d + 1) & 7 }

// CCW45 rotates d one step counter-clockwise
func (d Direction) CCW45() Direction { return (d + 7) & 7 }

// Opposite returns the reverse heading
func (d Direction) Opposite() Direction { return (d + 4) & 7 }

// Perpendicular reports whether two cardinal headings are at right angles
func (d Direction) Perpendicular(o Direction) bool {
	if d.IsDiagonal() || o.IsDiagonal() {
		return false
	}
	diff := (d - o) & 7
	return diff == 2 || diff == 6
}

// DominantAxis maps a step to a cardinal heading, x takes precedence over y
func DominantAxis(delta core.Point) Direction {
	switch {
	case delta.X > 0:
		return East
	case delta.X < 0:
		return West
	case delta.Y > 0:
		return North
	default:
		return South
	}
}

// DiagonalOf returns the intercardinal between two perpendicular cardinals
// ok is false when a and b are not perpendicular cardinals
func DiagonalOf(a, b Direction) (d Direction, ok bool) {
	if !a.Perpendicular(b) {
		return 0, false
	}
	if a.CW45().CW45() == b {
		return a.CW45(), true
	}
	return a.CCW45(), true
}
