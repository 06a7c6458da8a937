package loam

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestLocalToWorldTranslation(t *testing.T) {
	root := NewGroup("root")
	child := NewSprite("child", nil)
	child.SetPosition(10, 20)
	root.AddChild(child)
	updateWorldTransform(root, identityTransform, 1.0, false)

	wx, wy := child.LocalToWorld(5, 5)
	if !approxEqual(wx, 15, epsilon) || !approxEqual(wy, 25, epsilon) {
		t.Errorf("LocalToWorld(5, 5) = (%v, %v), want (15, 25)", wx, wy)
	}
}

func TestNestedTransformCompose(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	parent.SetPosition(100, 0)
	parent.SetScale(2, 2)
	child := NewSprite("child", nil)
	child.SetPosition(10, 5)
	root.AddChild(parent)
	parent.AddChild(child)
	updateWorldTransform(root, identityTransform, 1.0, false)

	// Child origin: parent translate + 2x scaled child offset.
	wx, wy := child.LocalToWorld(0, 0)
	if !approxEqual(wx, 120, epsilon) || !approxEqual(wy, 10, epsilon) {
		t.Errorf("child origin = (%v, %v), want (120, 10)", wx, wy)
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	root := NewGroup("root")
	n := NewSprite("n", nil)
	n.SetRotation(math.Pi / 2)
	root.AddChild(n)
	updateWorldTransform(root, identityTransform, 1.0, false)

	// (1, 0) rotates to (0, 1) for a clockwise quarter turn in screen space.
	wx, wy := n.LocalToWorld(1, 0)
	if !approxEqual(wx, 0, 1e-12) || !approxEqual(wy, 1, 1e-12) {
		t.Errorf("rotated point = (%v, %v), want (0, 1)", wx, wy)
	}
}

func TestPivotOffsetsOrigin(t *testing.T) {
	root := NewGroup("root")
	n := NewSprite("n", nil)
	n.SetPosition(50, 50)
	n.SetPivot(10, 10)
	root.AddChild(n)
	updateWorldTransform(root, identityTransform, 1.0, false)

	// The pivot point lands at the node position.
	wx, wy := n.LocalToWorld(10, 10)
	if !approxEqual(wx, 50, epsilon) || !approxEqual(wy, 50, epsilon) {
		t.Errorf("pivot point = (%v, %v), want (50, 50)", wx, wy)
	}
}

func TestWorldToLocalRoundTrip(t *testing.T) {
	root := NewGroup("root")
	n := NewSprite("n", nil)
	n.SetPosition(33, -12)
	n.SetScale(1.5, 0.75)
	n.SetRotation(0.4)
	root.AddChild(n)
	updateWorldTransform(root, identityTransform, 1.0, false)

	lx, ly := 7.0, 19.0
	wx, wy := n.LocalToWorld(lx, ly)
	bx, by := n.WorldToLocal(wx, wy)
	if !approxEqual(bx, lx, 1e-9) || !approxEqual(by, ly, 1e-9) {
		t.Errorf("round trip = (%v, %v), want (%v, %v)", bx, by, lx, ly)
	}
}

func TestInvertSingularReturnsIdentity(t *testing.T) {
	inv := invertAffine([6]float64{0, 0, 0, 0, 3, 4})
	if inv != identityTransform {
		t.Errorf("singular inverse = %v, want identity", inv)
	}
}

func TestWorldAlphaMultiplies(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	parent.SetAlpha(0.5)
	child := NewSprite("child", nil)
	child.SetAlpha(0.5)
	root.AddChild(parent)
	parent.AddChild(child)
	updateWorldTransform(root, identityTransform, 1.0, false)

	if !approxEqual(child.worldAlpha, 0.25, epsilon) {
		t.Errorf("world alpha = %v, want 0.25", child.worldAlpha)
	}
}

func TestDirtyPropagatesToDescendants(t *testing.T) {
	root := NewGroup("root")
	parent := NewGroup("parent")
	child := NewSprite("child", nil)
	root.AddChild(parent)
	parent.AddChild(child)
	updateWorldTransform(root, identityTransform, 1.0, false)

	// Moving the parent must recompute the child's world position even
	// though the child itself was never touched.
	parent.SetPosition(100, 100)
	updateWorldTransform(root, identityTransform, 1.0, false)

	wx, wy := child.LocalToWorld(0, 0)
	if !approxEqual(wx, 100, epsilon) || !approxEqual(wy, 100, epsilon) {
		t.Errorf("child origin after parent move = (%v, %v), want (100, 100)", wx, wy)
	}
}
