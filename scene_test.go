package loam

import "testing"

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() == nil || s.Root().Kind != NodeKindGroup {
		t.Fatal("scene should start with a root group")
	}
	if !s.Root().Interactable {
		t.Error("root must be interactable or nothing below it is hit-testable")
	}
}

func TestSceneCameraList(t *testing.T) {
	s := NewScene()
	a := s.NewCamera(Rect{Width: 800, Height: 600})
	b := s.NewCamera(Rect{Width: 200, Height: 200})

	if len(s.Cameras()) != 2 {
		t.Fatalf("cameras = %d, want 2", len(s.Cameras()))
	}
	s.RemoveCamera(a)
	if len(s.Cameras()) != 1 || s.Cameras()[0] != b {
		t.Error("remove should drop only the given camera")
	}
	s.RemoveCamera(a) // removing twice is a no-op
}

func TestRunOnUpdateWalksTree(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	grandchild := NewSprite("grandchild", nil)
	root.AddChild(child)
	child.AddChild(grandchild)

	var order []string
	root.OnUpdate = func(float64) { order = append(order, "root") }
	grandchild.OnUpdate = func(dt float64) {
		order = append(order, "grandchild")
		if dt <= 0 {
			t.Errorf("dt = %v, want positive", dt)
		}
	}

	runOnUpdate(root, 1.0/60.0)
	if len(order) != 2 || order[0] != "root" || order[1] != "grandchild" {
		t.Errorf("order = %v, want depth-first [root grandchild]", order)
	}
}

func TestSetEditorAttachesAndDetaches(t *testing.T) {
	s := NewScene()
	e := NewEditor(s, DefaultConfig())
	s.SetEditor(e)
	if s.Editor() != e {
		t.Fatal("editor should attach")
	}
	s.SetEditor(nil)
	if s.Editor() != nil {
		t.Error("nil should detach the editor")
	}

	// With no editor, moves route straight to the default stages.
	var moves int
	s.OnPointerMove(func(PointerContext) { moves++ })
	s.processPointer(10, 10, false, MouseButtonLeft, 0)
	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
}
