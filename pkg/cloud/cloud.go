// Package cloud counts the clouds in an occupancy volume.
//
// A cloud is a maximal set of occupied cells joined through shared faces
// (6-connectivity, no diagonals, no wraparound).
package cloud

import (
	"fmt"

	"github.com/chazu/xm4s/pkg/grid"
)

// Result is the outcome of a count.
//
// Blocks counts cells absorbed while expanding a cloud from its seed. The
// seed that opens each cloud is not itself a block, so Blocks equals the total
// occupied cells minus Clouds.
type Result struct {
	Blocks int
	Clouds int
}

// String renders the result as the one-line report.
func (r Result) String() string {
	return fmt.Sprintf("There are %d blocks of snow, making up %d clouds.", r.Blocks, r.Clouds)
}

// frontierCap is the initial frontier capacity; it grows as needed.
const frontierCap = 512

// Count scans v in x, y, z order and flood-fills every cloud it finds.
// Cells are cleared as they are absorbed, so v is empty afterwards.
func Count(v *grid.Volume) Result {
	var res Result
	frontier := make([]grid.Coord, 0, frontierCap)
	var nbuf [6]grid.Coord

	for x := 0; x < grid.Size; x++ {
		for y := 0; y < grid.Size; y++ {
			for z := 0; z < grid.Size; z++ {
				if !v[x][y][z] {
					continue
				}
				// New cloud. The seed is cleared but not counted.
				res.Clouds++
				v[x][y][z] = false
				frontier = append(frontier, grid.Coord{X: x, Y: y, Z: z})
				for len(frontier) > 0 {
					c := frontier[len(frontier)-1]
					frontier = frontier[:len(frontier)-1]
					for _, n := range Neighbors(c, nbuf[:0]) {
						if v.At(n) {
							v.Set(n, false)
							res.Blocks++
							frontier = append(frontier, n)
						}
					}
				}
			}
		}
	}
	return res
}

// Neighbors appends the in-bounds face neighbors of c to dst and returns it.
// The order is -x, -y, -z, +x, +y, +z.
func Neighbors(c grid.Coord, dst []grid.Coord) []grid.Coord {
	if c.X > 0 {
		dst = append(dst, grid.Coord{X: c.X - 1, Y: c.Y, Z: c.Z})
	}
	if c.Y > 0 {
		dst = append(dst, grid.Coord{X: c.X, Y: c.Y - 1, Z: c.Z})
	}
	if c.Z > 0 {
		dst = append(dst, grid.Coord{X: c.X, Y: c.Y, Z: c.Z - 1})
	}
	if c.X < grid.Size-1 {
		dst = append(dst, grid.Coord{X: c.X + 1, Y: c.Y, Z: c.Z})
	}
	if c.Y < grid.Size-1 {
		dst = append(dst, grid.Coord{X: c.X, Y: c.Y + 1, Z: c.Z})
	}
	if c.Z < grid.Size-1 {
		dst = append(dst, grid.Coord{X: c.X, Y: c.Y, Z: c.Z + 1})
	}
	return dst
}
