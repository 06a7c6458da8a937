package loam

import "testing"

func newTestGroundEditor(b Brush) *GroundEditor {
	ge := newGroundEditor(
		GroundConfig{Size: DefaultGroundSize, CellSize: DefaultGroundCellSize},
		BrushConfig{},
	)
	ge.SetBrush(b)
	return ge
}

func moveAt(x, y float64) PointerContext {
	return PointerContext{GlobalX: x, GlobalY: y, Button: MouseButtonLeft}
}

func TestGroundLayerCellAt(t *testing.T) {
	g := NewGroundLayer(Vec2{X: -200, Y: -200}, 10, 10, 40)

	col, row, ok := g.CellAt(0, 0)
	if !ok || col != 5 || row != 5 {
		t.Errorf("CellAt(0, 0) = (%d, %d, %v), want (5, 5, true)", col, row, ok)
	}
	if _, _, ok := g.CellAt(-201, 0); ok {
		t.Error("position left of the layer should miss")
	}
	if _, _, ok := g.CellAt(0, 200); ok {
		t.Error("the far edge is exclusive")
	}

	cx, cy := g.CellCenter(0, 0)
	if !approxEqual(cx, -180, epsilon) || !approxEqual(cy, -180, epsilon) {
		t.Errorf("CellCenter(0, 0) = (%v, %v), want (-180, -180)", cx, cy)
	}
}

func TestGroundLayerValueRange(t *testing.T) {
	g := NewGroundLayer(Vec2{}, 4, 4, 10)
	g.SetValue(2, 3, 7)
	if g.Value(2, 3) != 7 {
		t.Errorf("value = %v, want 7", g.Value(2, 3))
	}

	expectPanic(t, "value out of range", func() { g.Value(4, 0) })
	expectPanic(t, "set out of range", func() { g.SetValue(0, -1, 1) })
	expectPanic(t, "zero cols", func() { NewGroundLayer(Vec2{}, 0, 4, 10) })
}

func TestGroundLayerFill(t *testing.T) {
	g := NewGroundLayer(Vec2{}, 3, 3, 10)
	g.Fill(2.5)
	if g.Value(0, 0) != 2.5 || g.Value(2, 2) != 2.5 {
		t.Error("fill should set every cell")
	}
}

func TestBrushRaiseStamp(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Falloff: 0, Mode: BrushRaise})

	if !ge.BeginStroke(moveAt(0, 0)) {
		t.Fatal("stroke over the layer should begin")
	}
	g := ge.Layer()
	// Cells whose centers fall inside the radius get the full strength with
	// zero falloff; cell (5, 5) centers at (20, 20), distance ~28.
	if g.Value(5, 5) != 1 {
		t.Errorf("cell (5,5) = %v, want 1", g.Value(5, 5))
	}
	if g.Value(4, 4) != 1 {
		t.Errorf("cell (4,4) = %v, want 1", g.Value(4, 4))
	}
	// A far corner cell is untouched.
	if g.Value(0, 0) != 0 {
		t.Errorf("cell (0,0) = %v, want 0", g.Value(0, 0))
	}
}

func TestBrushLowerStamp(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 2, Falloff: 0, Mode: BrushLower})
	ge.Layer().Fill(10)

	ge.BeginStroke(moveAt(0, 0))
	if v := ge.Layer().Value(5, 5); v != 8 {
		t.Errorf("cell (5,5) = %v, want 8", v)
	}
}

func TestBrushSetStamp(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Falloff: 0, Mode: BrushSet, Value: 5})

	ge.BeginStroke(moveAt(0, 0))
	// Full weight blends the cell all the way to the target value.
	if v := ge.Layer().Value(5, 5); v != 5 {
		t.Errorf("cell (5,5) = %v, want 5", v)
	}
}

func TestBrushSmoothPullsTowardAverage(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Falloff: 0, Mode: BrushSmooth})
	g := ge.Layer()
	g.SetValue(5, 5, 8) // one spike among zeros

	ge.BeginStroke(moveAt(20, 20)) // exactly the spike cell's center

	if v := g.Value(5, 5); v >= 8 {
		t.Errorf("spike cell = %v, should move down toward the average", v)
	}
	if v := g.Value(4, 5); v <= 0 {
		t.Errorf("neighbor cell = %v, should move up toward the average", v)
	}
}

func TestBrushFalloffFades(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Falloff: 1, Mode: BrushRaise})

	// Stamp on a cell center so that cell gets full weight.
	ge.BeginStroke(moveAt(20, 20))
	g := ge.Layer()
	center := g.Value(5, 5)
	neighbor := g.Value(4, 5) // center distance 40, weight 1 - 40/60

	if !approxEqual(float64(center), 1, 1e-6) {
		t.Errorf("center cell = %v, want 1", center)
	}
	if !approxEqual(float64(neighbor), 1.0/3.0, 1e-6) {
		t.Errorf("neighbor cell = %v, want 1/3", neighbor)
	}
}

func TestStrokeSegmentCoversPath(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 25, Strength: 1, Falloff: 0, Mode: BrushRaise})

	ge.BeginStroke(moveAt(-100, 20))
	if !ge.HandlePointerMove(moveAt(100, 20)) {
		t.Fatal("move during a stroke should be consumed")
	}

	// Every cell along the dragged row should have been stamped at least once.
	g := ge.Layer()
	_, row, _ := g.CellAt(0, 20)
	for col := 3; col <= 7; col++ {
		if g.Value(col, row) <= 0 {
			t.Errorf("cell (%d,%d) = %v, want > 0", col, row, g.Value(col, row))
		}
	}
}

func TestMoveWithoutStrokeNotConsumed(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 25, Strength: 1, Mode: BrushRaise})
	if ge.HandlePointerMove(moveAt(0, 0)) {
		t.Error("moves with no active stroke are not the ground editor's")
	}
}

func TestStampClipsAtLayerEdge(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 80, Strength: 1, Falloff: 0, Mode: BrushRaise})

	// A stamp near the corner must clip its window, not panic.
	ge.BeginStroke(moveAt(-195, -195))
	if v := ge.Layer().Value(0, 0); v != 1 {
		t.Errorf("corner cell = %v, want 1", v)
	}
}

func TestTakeStrokeApplied(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Mode: BrushRaise})

	if ge.takeStrokeApplied() {
		t.Error("no stamp landed yet")
	}
	ge.BeginStroke(moveAt(0, 0))
	if !ge.takeStrokeApplied() {
		t.Error("stamp should set the applied flag")
	}
	if ge.takeStrokeApplied() {
		t.Error("take should clear the flag")
	}
}

func TestSetLayerCancelsStroke(t *testing.T) {
	ge := newTestGroundEditor(Brush{Radius: 60, Strength: 1, Mode: BrushRaise})
	ge.BeginStroke(moveAt(0, 0))
	ge.SetLayer(NewGroundLayer(Vec2{}, 4, 4, 10))
	if ge.Painting() {
		t.Error("replacing the layer should cancel the stroke")
	}
}
