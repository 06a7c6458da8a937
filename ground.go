package loam

import "math"

// Default ground layer extent, matching the editor's stock ground plane:
// a 400-unit square split into 40-unit cells.
const (
	DefaultGroundSize     = 400.0
	DefaultGroundCellSize = 40.0
)

// BrushMode selects how a brush stamp modifies cell values.
type BrushMode uint8

const (
	BrushRaise  BrushMode = iota // add strength, scaled by falloff
	BrushLower                   // subtract strength, scaled by falloff
	BrushSmooth                  // pull cells toward the stamp-area average
	BrushSet                     // blend cells toward Brush.Value by the stamp weight
)

// Brush describes a circular ground brush.
type Brush struct {
	// Radius is the stamp radius in world units.
	Radius float64
	// Strength is the value applied per stamp at the stamp center.
	Strength float64
	// Falloff in [0, 1] controls how quickly influence fades toward the
	// stamp edge: 0 is a hard disc, 1 fades linearly to zero.
	Falloff float64
	// Mode selects the stamp operation.
	Mode BrushMode
	// Value is the target cell value for BrushSet.
	Value float32
}

// GroundLayer is a row-major grid of editable cell values covering a
// world-space region. Values are interpreted by the host: heights for
// sculpting, weights for texture painting.
type GroundLayer struct {
	// Origin is the world position of the grid's top-left corner.
	Origin Vec2

	cols     int
	rows     int
	cellSize float64
	cells    []float32
}

// NewGroundLayer creates a layer of cols x rows cells of the given size in
// world units, with the top-left corner at origin. All cells start at zero.
// Panics if cols, rows, or cellSize is not positive.
func NewGroundLayer(origin Vec2, cols, rows int, cellSize float64) *GroundLayer {
	if cols <= 0 || rows <= 0 || cellSize <= 0 {
		panic("loam: ground layer dimensions must be positive")
	}
	return &GroundLayer{
		Origin:   origin,
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		cells:    make([]float32, cols*rows),
	}
}

// Cols returns the grid width in cells.
func (g *GroundLayer) Cols() int { return g.cols }

// Rows returns the grid height in cells.
func (g *GroundLayer) Rows() int { return g.rows }

// CellSize returns the edge length of one cell in world units.
func (g *GroundLayer) CellSize() float64 { return g.cellSize }

// Bounds returns the layer's covered region in world space.
func (g *GroundLayer) Bounds() Rect {
	return Rect{
		X:      g.Origin.X,
		Y:      g.Origin.Y,
		Width:  float64(g.cols) * g.cellSize,
		Height: float64(g.rows) * g.cellSize,
	}
}

// CellAt maps a world position to grid coordinates.
// ok is false when the position falls outside the layer.
func (g *GroundLayer) CellAt(wx, wy float64) (col, row int, ok bool) {
	col = int(math.Floor((wx - g.Origin.X) / g.cellSize))
	row = int(math.Floor((wy - g.Origin.Y) / g.cellSize))
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return 0, 0, false
	}
	return col, row, true
}

// CellCenter returns the world position of the center of cell (col, row).
func (g *GroundLayer) CellCenter(col, row int) (wx, wy float64) {
	wx = g.Origin.X + (float64(col)+0.5)*g.cellSize
	wy = g.Origin.Y + (float64(row)+0.5)*g.cellSize
	return
}

// Value returns the cell value at (col, row).
// Panics if the coordinates are out of range.
func (g *GroundLayer) Value(col, row int) float32 {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		panic("loam: ground cell out of range")
	}
	return g.cells[row*g.cols+col]
}

// SetValue writes the cell value at (col, row).
// Panics if the coordinates are out of range.
func (g *GroundLayer) SetValue(col, row int, v float32) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		panic("loam: ground cell out of range")
	}
	g.cells[row*g.cols+col] = v
}

// Fill sets every cell to v.
func (g *GroundLayer) Fill(v float32) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

// --- Ground editor ---

// GroundEditor applies brush strokes to a ground layer. A stroke begins on
// pointer down over the layer, consumes every pointer move until pointer up,
// and stamps the brush along the dragged path.
type GroundEditor struct {
	layer *GroundLayer
	brush Brush

	painting     bool
	lastX, lastY float64
	applied      bool // a stamp landed since the last takeStrokeApplied
}

func newGroundEditor(gc GroundConfig, bc BrushConfig) *GroundEditor {
	cols := int(gc.Size / gc.CellSize)
	if cols < 1 {
		cols = 1
	}
	half := gc.Size / 2
	return &GroundEditor{
		layer: NewGroundLayer(Vec2{X: -half, Y: -half}, cols, cols, gc.CellSize),
		brush: Brush{
			Radius:   bc.Radius,
			Strength: bc.Strength,
			Falloff:  bc.Falloff,
			Mode:     bc.mode,
			Value:    float32(bc.Value),
		},
	}
}

// Layer returns the layer being edited.
func (ge *GroundEditor) Layer() *GroundLayer { return ge.layer }

// SetLayer replaces the layer being edited and cancels any active stroke.
func (ge *GroundEditor) SetLayer(layer *GroundLayer) {
	ge.layer = layer
	ge.painting = false
}

// Brush returns the current brush settings.
func (ge *GroundEditor) Brush() Brush { return ge.brush }

// SetBrush replaces the brush settings.
func (ge *GroundEditor) SetBrush(b Brush) { ge.brush = b }

// Painting reports whether a stroke is in progress.
func (ge *GroundEditor) Painting() bool { return ge.painting }

// BeginStroke starts a brush stroke at the event position. Returns false
// when the position is outside the layer, in which case no stroke starts.
func (ge *GroundEditor) BeginStroke(ev PointerContext) bool {
	if ge.layer == nil {
		return false
	}
	if _, _, ok := ge.layer.CellAt(ev.GlobalX, ev.GlobalY); !ok {
		return false
	}
	ge.painting = true
	ge.lastX = ev.GlobalX
	ge.lastY = ev.GlobalY
	ge.stamp(ev.GlobalX, ev.GlobalY)
	return true
}

// HandlePointerMove offers a pointer move to the active stroke. Returns true
// only while a stroke is in progress; the brush is then stamped along the
// segment from the previous position. Moves arriving with no active stroke
// are not the ground editor's to consume.
func (ge *GroundEditor) HandlePointerMove(ev PointerContext) bool {
	if !ge.painting {
		return false
	}
	ge.stampSegment(ge.lastX, ge.lastY, ev.GlobalX, ev.GlobalY)
	ge.lastX = ev.GlobalX
	ge.lastY = ev.GlobalY
	return true
}

// EndStroke finishes the active stroke. Returns whether one was in progress.
func (ge *GroundEditor) EndStroke() bool {
	if !ge.painting {
		return false
	}
	ge.painting = false
	return true
}

// takeStrokeApplied reports and clears the stamp-landed flag.
func (ge *GroundEditor) takeStrokeApplied() bool {
	a := ge.applied
	ge.applied = false
	return a
}

// stampSegment stamps the brush at intervals of half a cell along the
// segment, so fast drags leave a continuous stroke instead of dots.
func (ge *GroundEditor) stampSegment(x0, y0, x1, y1 float64) {
	dx := x1 - x0
	dy := y1 - y0
	dist := math.Sqrt(dx*dx + dy*dy)
	step := ge.layer.cellSize / 2
	if step <= 0 {
		return
	}
	steps := int(dist/step) + 1
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ge.stamp(x0+dx*t, y0+dy*t)
	}
}

// stamp applies one brush application centered at (wx, wy). Cells outside
// the layer are clipped; a stamp that covers no cells changes nothing.
func (ge *GroundEditor) stamp(wx, wy float64) {
	g := ge.layer
	b := ge.brush
	if b.Radius <= 0 {
		return
	}

	minCol := int(math.Floor((wx - b.Radius - g.Origin.X) / g.cellSize))
	maxCol := int(math.Floor((wx + b.Radius - g.Origin.X) / g.cellSize))
	minRow := int(math.Floor((wy - b.Radius - g.Origin.Y) / g.cellSize))
	maxRow := int(math.Floor((wy + b.Radius - g.Origin.Y) / g.cellSize))

	if minCol < 0 {
		minCol = 0
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxCol >= g.cols {
		maxCol = g.cols - 1
	}
	if maxRow >= g.rows {
		maxRow = g.rows - 1
	}
	if minCol > maxCol || minRow > maxRow {
		return
	}

	// BrushSmooth needs the stamp-area average before any cell changes.
	var average float32
	if b.Mode == BrushSmooth {
		var sum float32
		var count int
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				if ge.influence(wx, wy, col, row) > 0 {
					sum += g.cells[row*g.cols+col]
					count++
				}
			}
		}
		if count == 0 {
			return
		}
		average = sum / float32(count)
	}

	touched := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			w := ge.influence(wx, wy, col, row)
			if w <= 0 {
				continue
			}
			touched = true
			i := row*g.cols + col
			switch b.Mode {
			case BrushRaise:
				g.cells[i] += float32(b.Strength * w)
			case BrushLower:
				g.cells[i] -= float32(b.Strength * w)
			case BrushSmooth:
				g.cells[i] += (average - g.cells[i]) * float32(b.Strength*w)
			case BrushSet:
				g.cells[i] += (b.Value - g.cells[i]) * float32(w)
			}
		}
	}
	if touched {
		ge.applied = true
	}
}

// influence returns the brush weight for a cell, 0 when the cell center is
// outside the stamp radius. Falloff fades the weight linearly to the edge.
func (ge *GroundEditor) influence(wx, wy float64, col, row int) float64 {
	cx, cy := ge.layer.CellCenter(col, row)
	dx := cx - wx
	dy := cy - wy
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist > ge.brush.Radius {
		return 0
	}
	fade := 1.0 - ge.brush.Falloff*(dist/ge.brush.Radius)
	if fade < 0 {
		return 0
	}
	return fade
}
