package components

import (
	"math"
	"strings"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/models"
)

const (
	TrailRune    = '#'
	InFlightRune = '+'
	emptyRune    = ' '
)

// turtle glyphs counter-clockwise from east, one per 45 degrees
var turtleRunes = []rune("→↗↑↖←↙↓↘")

// Canvas is a character grid with the world origin at its center. One cell
// spans scale units horizontally and twice that vertically, since terminal
// cells are about twice as tall as they are wide.
type Canvas struct {
	width, height int
	scale         float64
	cells         [][]rune
}

func NewCanvas(width, height int, scale float64) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if scale <= 0 {
		scale = 1
	}
	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(string(emptyRune), width))
	}
	return &Canvas{width: width, height: height, scale: scale, cells: cells}
}

// offset maps a world point to cell units relative to the center cell.
func (c *Canvas) offset(p models.Point) (u, v float64) {
	return p.X / c.scale, -p.Y / (2 * c.scale)
}

// Cell maps a world point to its grid column and row.
func (c *Canvas) Cell(p models.Point) (col, row int) {
	u, v := c.offset(p)
	return c.width/2 + int(math.Round(u)), c.height/2 + int(math.Round(v))
}

// bounds returns the offsets covered by the grid, half a cell past the
// outermost centers.
func (c *Canvas) bounds() (umin, umax, vmin, vmax float64) {
	cx, cy := float64(c.width/2), float64(c.height/2)
	return -cx - 0.5, float64(c.width-1) - cx + 0.5, -cy - 0.5, float64(c.height-1) - cy + 0.5
}

func (c *Canvas) set(col, row int, r rune) {
	if row < 0 || row >= c.height || col < 0 || col >= c.width {
		return
	}
	c.cells[row][col] = r
}

// Line draws between two world points with Bresenham's algorithm. The
// segment is clipped to the grid first, so the work is bounded by the grid
// size however far the points are.
func (c *Canvas) Line(from, to models.Point, r rune) {
	u0, v0 := c.offset(from)
	u1, v1 := c.offset(to)
	umin, umax, vmin, vmax := c.bounds()
	u0, v0, u1, v1, ok := clipSegment(u0, v0, u1, v1, umin, umax, vmin, vmax)
	if !ok {
		return
	}

	x0, y0 := c.width/2+int(math.Round(u0)), c.height/2+int(math.Round(v0))
	x1, y1 := c.width/2+int(math.Round(u1)), c.height/2+int(math.Round(v1))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		c.set(x0, y0, r)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Turtle draws the marker for pose. A turtle off the grid is not drawn.
func (c *Canvas) Turtle(pose models.Pose) {
	u, v := c.offset(pose.Position())
	umin, umax, vmin, vmax := c.bounds()
	if !(u >= umin && u <= umax && v >= vmin && v <= vmax) {
		return
	}
	col, row := c.width/2+int(math.Round(u)), c.height/2+int(math.Round(v))
	c.set(col, row, TurtleRune(pose.Angle))
}

// clipSegment clips a segment to a rectangle (Liang-Barsky). It reports
// false when nothing of the segment lies inside or a coordinate is not finite.
func clipSegment(x0, y0, x1, y1, xmin, xmax, ymin, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	for _, f := range []float64{x0, y0, dx, dy} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, 0, 0, 0, false
		}
	}

	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			if r < t1 {
				t1 = r
			}
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func (c *Canvas) String() string {
	lines := make([]string, c.height)
	for i, row := range c.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// TurtleRune picks the glyph closest to angle.
func TurtleRune(angle float64) rune {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	idx := int(math.Round(a/45)) % len(turtleRunes)
	return turtleRunes[idx]
}

// RenderCanvas rasterizes scene: committed trail first, then the in-flight
// line, then the turtle on top.
func RenderCanvas(scene animation.Scene, width, height int, scale float64) string {
	c := NewCanvas(width, height, scale)
	for _, seg := range scene.Trail {
		c.Line(seg.From, seg.To, TrailRune)
	}
	if scene.InFlight != nil {
		c.Line(scene.InFlight.From, scene.InFlight.To, InFlightRune)
	}
	c.Turtle(scene.Pose)
	return c.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
