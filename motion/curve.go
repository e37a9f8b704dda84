package motion

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/flowpath/vmath"
)

// Advance evaluates seg at t, clamped to [0,1]
func Advance(seg Segment, t float64) cp.Vector {
	t = vmath.Clamp01(t)
	if seg.HasControl {
		return vmath.QuadraticBezier(seg.Start, seg.Control, seg.End, t)
	}
	return vmath.LerpVector(seg.Start, seg.End, t)
}

// Cursor walks a segment list by accumulated time, one segment per unit of time
// A segment finishes when its time reaches 1; the cursor then moves to the next
// segment with time reset to 0
type Cursor struct {
	segments []Segment
	index    int
	t        float64
	pos      cp.Vector
}

// NewCursor starts at the first segment's start
func NewCursor(segments []Segment) *Cursor {
	c := &Cursor{}
	c.Reset(segments)
	return c
}

// Reset replaces the segment list and rewinds
func (c *Cursor) Reset(segments []Segment) {
	c.segments = segments
	c.index = 0
	c.t = 0
	c.pos = cp.Vector{}
	if len(segments) > 0 {
		c.pos = segments[0].Start
	}
}

// Update advances by dt (in segment-time units) and returns the new position
// Leftover time past a segment end is discarded
func (c *Cursor) Update(dt float64) cp.Vector {
	if c.Done() {
		return c.pos
	}
	seg := c.segments[c.index]
	c.t += dt
	if c.t >= 1 {
		c.pos = Advance(seg, 1)
		c.index++
		c.t = 0
		return c.pos
	}
	c.pos = Advance(seg, c.t)
	return c.pos
}

// Position returns the last evaluated position
func (c *Cursor) Position() cp.Vector { return c.pos }

// Index returns the active segment index, len(segments) once done
func (c *Cursor) Index() int { return c.index }

// Progress returns time within the active segment
func (c *Cursor) Progress() float64 { return c.t }

// Done reports whether every segment has finished
func (c *Cursor) Done() bool {
	return c.index >= len(c.segments)
}
