// Package grid holds the occupancy volume and the parallel driver that fills
// it by running a per-cell evaluator over every coordinate.
package grid

import "fmt"

// Size is the edge length of the cubic grid.
const Size = 30

// Cells is the number of cells in the grid.
const Cells = Size * Size * Size

// Coord is a cell position. Each component is in [0, Size).
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// InBounds reports whether c lies inside the grid.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < Size &&
		c.Y >= 0 && c.Y < Size &&
		c.Z >= 0 && c.Z < Size
}

// Plane is one y×z slice of the volume at a fixed x, indexed [y][z].
type Plane [Size][Size]bool

// Volume is the dense occupancy grid, indexed [x][y][z].
type Volume [Size]Plane

// At reports whether c is occupied.
func (v *Volume) At(c Coord) bool {
	return v[c.X][c.Y][c.Z]
}

// Set marks c occupied or empty.
func (v *Volume) Set(c Coord, occupied bool) {
	v[c.X][c.Y][c.Z] = occupied
}

// Count returns the number of occupied cells.
func (v *Volume) Count() int {
	n := 0
	for x := range v {
		for y := range v[x] {
			for z := range v[x][y] {
				if v[x][y][z] {
					n++
				}
			}
		}
	}
	return n
}
