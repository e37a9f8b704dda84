package main

import (
	"strings"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/navigation"
)

// Octant glyphs, index 0 = north, clockwise
var arrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

func arrowAt(field *navigation.FlowField, p core.Point) rune {
	o := field.Octant(p)
	if o < 0 {
		return '·'
	}
	return arrows[o]
}

// cellGlyph picks the character for p, markers first, then walls, path and flow
func cellGlyph(p *navigation.Planner, field *navigation.FlowField, onPath map[core.Point]bool, c core.Point) rune {
	switch {
	case c == p.Start():
		return 'S'
	case c == p.Target():
		return 'T'
	case p.IsBlocked(c):
		return '#'
	case onPath[c]:
		return '*'
	case field != nil:
		return arrowAt(field, c)
	default:
		return '.'
	}
}

// renderMap draws the grid north-up, one rune per cell
func renderMap(p *navigation.Planner, field *navigation.FlowField, path []core.Point) string {
	onPath := make(map[core.Point]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	w := p.World()
	var b strings.Builder
	for y := w.Height() - 1; y >= 0; y-- {
		for x := 0; x < w.Width(); x++ {
			b.WriteRune(cellGlyph(p, field, onPath, core.Point{X: x, Y: y}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
