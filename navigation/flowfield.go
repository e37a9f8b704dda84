package navigation

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/vmath"
)

// FlowField stores one unit vector per cell, or the zero vector where all forces cancel
// Fields are immutable once generated; a source change produces a new field
type FlowField struct {
	Width, Height int
	Vectors       []cp.Vector // Row-major, index y*Width + x
}

// GenerateField computes the influence flow field for a width×height grid
//
// Each source contributes direction × strength × 1/(dist²+1), pointing toward Attract
// sources and away from Repel sources; a source on the cell itself contributes nothing
// The per-cell sum is normalized, exact cancellation stays zero
//
// The sign is reversed from the literal offset formula (cell minus source, +1 for Attract),
// so the field points toward the target and moving with the flow is the cheap direction
func GenerateField(width, height int, sources []Source) (*FlowField, error) {
	if width <= 0 || height <= 0 {
		return nil, configErrorf("generate field", "invalid dimensions %dx%d", width, height)
	}
	if len(sources) == 0 {
		return nil, configErrorf("generate field", "no influence sources")
	}
	for i, s := range sources {
		if !(s.Strength > 0) {
			return nil, configErrorf("generate field", "source %d has non-positive strength %g", i, s.Strength)
		}
	}

	f := &FlowField{
		Width:   width,
		Height:  height,
		Vectors: make([]cp.Vector, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Vectors[y*width+x] = flowAt(x, y, sources)
		}
	}
	return f, nil
}

func flowAt(x, y int, sources []Source) cp.Vector {
	var sum cp.Vector
	for _, s := range sources {
		// Offset from source to cell: Repel pushes along it, Attract pulls against it
		d := vmath.FromInts(x-s.Position.X, y-s.Position.Y)
		dist := math.Hypot(d.X, d.Y)
		if dist == 0 {
			continue
		}
		falloff := 1.0 / (dist*dist + 1.0)
		sign := 1.0
		if s.Polarity == Attract {
			sign = -1.0
		}
		k := s.Strength * falloff * sign / dist
		sum.X += d.X * k
		sum.Y += d.Y * k
	}
	return vmath.Normalize(sum)
}

// At returns the vector at p, zero outside the field
func (f *FlowField) At(p core.Point) cp.Vector {
	if f == nil || !p.InBounds(f.Width, f.Height) {
		return cp.Vector{}
	}
	return f.Vectors[p.Y*f.Width+p.X]
}

// Contains reports whether p lies inside the field
func (f *FlowField) Contains(p core.Point) bool {
	return f != nil && p.InBounds(f.Width, f.Height)
}

// Alignment returns dot(normalize(dir), field[p]) in [-1,1]; 0 for a zero field cell or zero dir
func (f *FlowField) Alignment(p core.Point, dir cp.Vector) float64 {
	return vmath.Normalize(dir).Dot(f.At(p))
}

// Octant maps the vector at p to an 8-way index: 0=N(+Y), clockwise to 7=NW, -1 for zero
func (f *FlowField) Octant(p core.Point) int {
	v := f.At(p)
	if vmath.IsZero(v) {
		return -1
	}
	// Angle measured clockwise from +Y
	angle := math.Atan2(v.X, v.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return int(math.Floor(angle/(math.Pi/4)+0.5)) % 8
}
