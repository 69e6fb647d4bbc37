package draw

import (
	"io"
	"math"
	"sort"
	"strings"

	"github.com/tomz197/asteroids-classic/internal/physics"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockEmpty     = ' '
)

// cell is what was last written to one terminal cell.
type cell struct {
	ch  rune
	pen Pen
}

// staleCell never matches a rendered cell, forcing a rewrite.
var staleCell = cell{ch: -1}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Drawing happens in logical (arena) coordinates which are scaled to the canvas.
// Render only emits the cells that changed since the previous Render.
type Canvas struct {
	cols    int   // Terminal columns covered by the canvas
	rows    int   // Terminal rows covered by the canvas
	subRows int   // rows * 2
	pixels  []Pen // Flat slice: [y * cols + x], PenNone when unset
	prev    []cell

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets for centering the canvas.
	offsetCol int
	offsetRow int

	pen Pen

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder
	numBuf          [20]byte
	scaledBuf       []physics.Vec2
	intersectionBuf []float64
}

// NewCanvas creates a canvas of cols x rows terminal cells showing a
// logicalWidth x logicalHeight area.
func NewCanvas(cols, rows int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           PenWhite,
	}
	c.Resize(cols, rows)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping the
// logical size. A size change invalidates everything already on screen.
func (c *Canvas) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)

	if cols != c.cols || rows != c.rows {
		c.cols = cols
		c.rows = rows
		c.subRows = rows * 2
		c.pixels = make([]Pen, c.subRows*cols)
		c.prev = make([]cell, rows*cols)
		c.ForceRedraw()
	}

	c.scaleX = float64(cols) / c.logicalWidth
	c.scaleY = float64(c.subRows) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the number of terminal columns the canvas covers.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the number of terminal rows the canvas covers.
func (c *Canvas) TerminalHeight() int { return c.rows }

// SetPen selects the color used by subsequent drawing calls.
func (c *Canvas) SetPen(p Pen) {
	c.pen = p
}

// Clear resets all pixels. What is on screen is kept for diffing.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = staleCell
	}
}

// MarkTextDirty flags n cells starting at the 1-based canvas position
// (col, row) as overwritten by text, so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	if row < 1 || row > c.rows {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+n, c.cols)
	base := (row - 1) * c.cols
	for i := start; i < end; i++ {
		c.prev[base+i] = staleCell
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = c.pen
	}
}

// Pixel reports the pen of a pixel in canvas pixel coordinates.
func (c *Canvas) Pixel(x, y int) Pen {
	if x < 0 || x >= c.cols || y < 0 || y >= c.subRows {
		return PenNone
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) toPixel(p physics.Vec2) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// Plot sets the pixel under a logical point.
func (c *Canvas) Plot(p physics.Vec2) {
	c.setPixel(c.toPixel(p))
}

// Line draws a line between two logical points using Bresenham's algorithm.
func (c *Canvas) Line(p1, p2 physics.Vec2) {
	x1, y1 := c.toPixel(p1)
	x2, y2 := c.toPixel(p2)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Polygon draws a closed outline through points, optionally filled.
func (c *Canvas) Polygon(points []physics.Vec2, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points)
	}

	n := len(points)
	for i := range n {
		c.Line(points[i], points[(i+1)%n])
	}
}

// Rect draws the outline of an axis-aligned box.
func (c *Canvas) Rect(b physics.Box) {
	tl := physics.Vec2{X: b.MinX, Y: b.MinY}
	tr := physics.Vec2{X: b.MaxX, Y: b.MinY}
	br := physics.Vec2{X: b.MaxX, Y: b.MaxY}
	bl := physics.Vec2{X: b.MinX, Y: b.MaxY}
	c.Line(tl, tr)
	c.Line(tr, br)
	c.Line(br, bl)
	c.Line(bl, tl)
}

// fillPolygon fills a polygon using a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []physics.Vec2) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]physics.Vec2, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = physics.Vec2{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subRows-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		intersections := c.intersectionBuf[:0]
		n := len(scaled)
		for i := range n {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// halfBlock maps a vertical pixel pair to a character and its color.
// When both halves are set the top pixel's pen wins.
func halfBlock(top, bottom Pen) cell {
	switch {
	case top != PenNone && bottom != PenNone:
		return cell{BlockFull, top}
	case top != PenNone:
		return cell{BlockUpperHalf, top}
	case bottom != PenNone:
		return cell{BlockLowerHalf, bottom}
	default:
		return cell{BlockEmpty, PenNone}
	}
}

// Render writes the changed cells to w using half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	nextCol, nextRow := -1, -1 // Where the cursor sits after the last write
	current := PenNone
	for row := range c.rows {
		top := c.pixels[row*2*c.cols : (row*2+1)*c.cols]
		bottom := c.pixels[(row*2+1)*c.cols : (row*2+2)*c.cols]

		for col := range c.cols {
			cl := halfBlock(top[col], bottom[col])
			idx := row*c.cols + col
			if c.prev[idx] == cl {
				continue
			}
			c.prev[idx] = cl

			if col != nextCol || row != nextRow {
				c.moveCursor(col+1, row+1)
			}
			if cl.pen != PenNone && cl.pen != current {
				c.renderBuf.WriteString(cl.pen.Code())
				current = cl.pen
			}
			c.renderBuf.WriteRune(cl.ch)
			nextCol, nextRow = col+1, row
		}
	}
	if current != PenNone {
		c.renderBuf.WriteString(ColorReset)
	}

	io.WriteString(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	appendCursor(&c.renderBuf, c.numBuf[:], col+c.offsetCol, row+c.offsetRow)
}

// RenderBorder draws a frame around the canvas on the sides where the
// centering offset leaves room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right bars
	hasV := c.offsetRow >= 1 // Room for top/bottom bars

	left := c.offsetCol
	right := c.offsetCol + c.cols + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.rows + 1
	line := strings.Repeat("─", c.cols)

	var buf strings.Builder
	if hasV {
		if hasH {
			buf.WriteString(cursorTo(left, top) + "┌" + line + "┐")
			buf.WriteString(cursorTo(left, bottom) + "└" + line + "┘")
		} else {
			buf.WriteString(cursorTo(c.offsetCol+1, top) + line)
			buf.WriteString(cursorTo(c.offsetCol+1, bottom) + line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.rows; row++ {
			buf.WriteString(cursorTo(left, row) + "│" + cursorTo(right, row) + "│")
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalToTerminal converts a logical point to a 1-based canvas position (col, row).
func (c *Canvas) LogicalToTerminal(p physics.Vec2) (col, row int) {
	px, py := c.toPixel(p)
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
