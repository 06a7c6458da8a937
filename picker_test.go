package loam

import "testing"

func buildPickScene(t *testing.T) (*Scene, *Node, *Node) {
	t.Helper()
	s := NewScene()

	under := NewSprite("under", nil)
	under.Width, under.Height = 100, 100
	under.Interactable = true

	over := NewSprite("over", nil)
	over.Width, over.Height = 100, 100
	over.Interactable = true
	over.SetZIndex(1)

	s.Root().AddChild(under)
	s.Root().AddChild(over)
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	return s, under, over
}

func TestPickAtReturnsTopmost(t *testing.T) {
	s, _, over := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)

	hit := p.PickAt(PointerContext{GlobalX: 50, GlobalY: 50})
	if hit == nil {
		t.Fatal("pick over two stacked sprites should hit")
	}
	if hit.Node != over {
		t.Errorf("picked %q, want the higher ZIndex sprite", hit.Node.Name)
	}
	if !approxEqual(hit.WorldX, 50, epsilon) || !approxEqual(hit.LocalX, 50, epsilon) {
		t.Errorf("hit coords = world %v local %v, want 50/50", hit.WorldX, hit.LocalX)
	}
}

func TestPickAtMiss(t *testing.T) {
	s, _, _ := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)

	if hit := p.PickAt(PointerContext{GlobalX: 900, GlobalY: 900}); hit != nil {
		t.Errorf("pick over empty space = %v, want nil", hit)
	}
}

func TestApplyHighlightChangeDetection(t *testing.T) {
	s, under, over := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)

	if !p.ApplyHighlight(&PickHit{Node: over}) {
		t.Error("first highlight should report a change")
	}
	if p.ApplyHighlight(&PickHit{Node: over}) {
		t.Error("re-highlighting the same node is not a change")
	}
	if !p.ApplyHighlight(&PickHit{Node: under}) {
		t.Error("moving to another node should report a change")
	}
	if !p.ApplyHighlight(nil) {
		t.Error("clearing should report a change")
	}
	if p.ApplyHighlight(nil) {
		t.Error("clearing twice is not a change")
	}
}

func TestHighlightTintsAndRestores(t *testing.T) {
	s, _, over := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)
	saved := over.Color

	p.ApplyHighlight(&PickHit{Node: over})
	p.update(0.25) // quarter second into the pulse

	if over.Color == saved {
		t.Error("highlighted node should be tinted mid-pulse")
	}

	p.ApplyHighlight(nil)
	if over.Color != saved {
		t.Errorf("color = %v, want restored to %v", over.Color, saved)
	}
}

func TestHighlightPulsePingPongs(t *testing.T) {
	s, _, over := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)

	p.ApplyHighlight(&PickHit{Node: over})

	// Default pulse is one full cycle per second: half a second up, half
	// down. Past the peak the blend level must be falling again.
	p.update(0.5)
	peak := p.highlight.level
	p.update(0.25)
	if p.highlight.level >= peak {
		t.Errorf("level after peak = %v, want below peak %v", p.highlight.level, peak)
	}
}

func TestHighlightDropsDisposedNode(t *testing.T) {
	s, _, over := buildPickScene(t)
	p := newPicker(s, DefaultConfig().Highlight)

	p.ApplyHighlight(&PickHit{Node: over})
	over.Dispose()
	p.update(0.1)

	if p.Picked() != nil {
		t.Error("a disposed node should be dropped from the highlight")
	}
}

func TestNewPickerBadColorFallsBack(t *testing.T) {
	s := NewScene()
	p := newPicker(s, HighlightConfig{Color: "not-a-color", Intensity: 0.5, PulseHz: 1})

	// The fallback target is usable: applying and updating must tint.
	n := NewSprite("n", nil)
	n.Width, n.Height = 10, 10
	s.Root().AddChild(n)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	saved := n.Color
	p.ApplyHighlight(&PickHit{Node: n})
	p.update(0.25)
	if n.Color == saved {
		t.Error("fallback highlight color should still tint")
	}
}
