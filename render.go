package loam

import (
	"image/color"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// toRGBA converts a Color to a premultiplied 8-bit RGBA value.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rebuildSortedChildren refreshes a node's ZIndex-sorted traversal buffer.
// The sort is stable so siblings with equal ZIndex keep insertion order.
func rebuildSortedChildren(n *Node) {
	n.sortedChildren = append(n.sortedChildren[:0], n.children...)
	sort.SliceStable(n.sortedChildren, func(i, j int) bool {
		return n.sortedChildren[i].ZIndex < n.sortedChildren[j].ZIndex
	})
	n.childrenSorted = true
}

// sortedChildrenOf returns the ZIndex-ordered child list, rebuilding the
// cached buffer when stale.
func sortedChildrenOf(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// drawWithCamera renders the scene from a camera's perspective.
// If cam is nil, uses identity view (no camera).
//
// Two painter-order passes: sprites first, then gizmos, so editor overlays
// always draw above scene content regardless of tree position.
func (s *Scene) drawWithCamera(target *ebiten.Image, cam *Camera) {
	var view [6]float64
	if cam != nil {
		view = cam.computeViewMatrix()
	} else {
		view = identityTransform
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drawPass(target, s.root, view, NodeKindSprite, &stats)
	s.drawPass(target, s.root, view, NodeKindGizmo, &stats)

	if s.debug {
		stats.drawTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// drawPass walks the tree in painter order and draws nodes of one kind.
func (s *Scene) drawPass(target *ebiten.Image, n *Node, view [6]float64, kind NodeKind, stats *debugStats) {
	if !n.Visible {
		return
	}
	stats.nodeCount++

	if n.Kind == kind {
		s.drawNode(target, n, view, stats)
	}

	for _, child := range sortedChildrenOf(n) {
		s.drawPass(target, child, view, kind, stats)
	}
}

// drawNode submits one node quad. Nodes with a nil Image draw WhitePixel
// scaled to Width x Height, which is the solid-color path.
func (s *Scene) drawNode(target *ebiten.Image, n *Node, view [6]float64, stats *debugStats) {
	img := n.Image
	m := multiplyAffine(view, n.worldTransform)

	var op ebiten.DrawImageOptions
	if img == nil {
		if n.Width == 0 || n.Height == 0 {
			return
		}
		img = WhitePixel
		// Scale the 1x1 pixel up to the node's dimensions before the
		// world transform applies.
		op.GeoM.Scale(n.Width, n.Height)
	}

	var geo ebiten.GeoM
	geo.SetElement(0, 0, m[0])
	geo.SetElement(0, 1, m[2])
	geo.SetElement(0, 2, m[4])
	geo.SetElement(1, 0, m[1])
	geo.SetElement(1, 1, m[3])
	geo.SetElement(1, 2, m[5])
	op.GeoM.Concat(geo)

	a := float32(clamp01(n.Color.A) * clamp01(n.worldAlpha))
	op.ColorScale.Scale(
		float32(clamp01(n.Color.R))*a,
		float32(clamp01(n.Color.G))*a,
		float32(clamp01(n.Color.B))*a,
		a,
	)

	target.DrawImage(img, &op)
	stats.drawCallCount++
}
