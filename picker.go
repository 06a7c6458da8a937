package loam

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PickHit describes the topmost node found under the pointer.
type PickHit struct {
	Node   *Node
	WorldX float64
	WorldY float64
	LocalX float64
	LocalY float64
}

// Picker resolves pointer positions to scene nodes and owns the hover
// highlight that visualizes the current pick.
type Picker struct {
	scene     *Scene
	highlight highlightState
}

// highlightState tints the picked node by blending its own color toward the
// configured highlight color. A tween ping-pongs the blend amount so the
// highlight pulses instead of sitting flat.
type highlightState struct {
	target    colorful.Color
	intensity float64 // peak blend amount in [0, 1]
	pulseDur  float32 // seconds per half pulse

	node       *Node
	savedColor Color
	pulse      *gween.Tween
	rising     bool
	level      float32 // current blend amount from the pulse
}

func newPicker(scene *Scene, cfg HighlightConfig) *Picker {
	target, err := colorful.Hex(cfg.Color)
	if err != nil {
		target, _ = colorful.Hex(defaultHighlightColor)
	}
	pulseDur := float32(0.5)
	if cfg.PulseHz > 0 {
		pulseDur = float32(0.5 / cfg.PulseHz)
	}
	return &Picker{
		scene: scene,
		highlight: highlightState{
			target:    target,
			intensity: cfg.Intensity,
			pulseDur:  pulseDur,
		},
	}
}

// PickAt returns the topmost interactable node under the pointer, or nil.
// The query runs against the scene graph hit test in reverse painter order,
// so the node a user sees on top is the node picked.
func (p *Picker) PickAt(ev PointerContext) *PickHit {
	n := p.scene.hitTest(ev.GlobalX, ev.GlobalY)
	if n == nil {
		return nil
	}
	lx, ly := n.WorldToLocal(ev.GlobalX, ev.GlobalY)
	return &PickHit{
		Node:   n,
		WorldX: ev.GlobalX,
		WorldY: ev.GlobalY,
		LocalX: lx,
		LocalY: ly,
	}
}

// Picked returns the currently highlighted node, or nil.
func (p *Picker) Picked() *Node {
	return p.highlight.node
}

// ApplyHighlight moves the hover highlight to the hit's node, or clears it
// when hit is nil. Returns whether the highlighted node changed.
func (p *Picker) ApplyHighlight(hit *PickHit) bool {
	var next *Node
	if hit != nil {
		next = hit.Node
	}
	h := &p.highlight
	if next == h.node {
		return false
	}

	if h.node != nil && !h.node.IsDisposed() {
		h.node.Color = h.savedColor
	}
	h.node = next
	h.pulse = nil
	h.level = 0

	if next != nil {
		h.savedColor = next.Color
		h.rising = true
		h.pulse = gween.New(0, 1, h.pulseDur, ease.InOutQuad)
	}
	return true
}

// update advances the pulse tween and retints the highlighted node.
func (p *Picker) update(dt float32) {
	h := &p.highlight
	if h.node == nil {
		return
	}
	if h.node.IsDisposed() {
		h.node = nil
		h.pulse = nil
		return
	}

	if h.pulse != nil {
		val, done := h.pulse.Update(dt)
		h.level = val
		if done {
			// Ping-pong: restart in the opposite direction.
			if h.rising {
				h.pulse = gween.New(1, 0, h.pulseDur, ease.InOutQuad)
			} else {
				h.pulse = gween.New(0, 1, h.pulseDur, ease.InOutQuad)
			}
			h.rising = !h.rising
		}
	}

	h.node.Color = h.tinted()
}

// tinted blends the saved node color toward the highlight color in a
// perceptually uniform space so mid-pulse tints stay natural.
func (h *highlightState) tinted() Color {
	base := colorful.Color{R: h.savedColor.R, G: h.savedColor.G, B: h.savedColor.B}
	t := h.intensity * float64(h.level)
	blended := base.BlendLuv(h.target, t).Clamped()
	return Color{R: blended.R, G: blended.G, B: blended.B, A: h.savedColor.A}
}
