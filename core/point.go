package core

// Point is an integer grid coordinate, 0-indexed from the grid origin
type Point struct {
	X, Y int
}

// Add returns p translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the difference vector p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Manhattan returns |dx| + |dy| between p and q
func (p Point) Manhattan(q Point) int {
	dx := p.X - q.X
	dy := p.Y - q.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// InBounds reports whether p lies inside a width×height grid
func (p Point) InBounds(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}
