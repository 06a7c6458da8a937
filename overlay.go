package loam

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// NewStatusWidget creates a gizmo node that displays the current FPS/TPS and
// the editor's active tool. The widget refreshes itself every ~0.5 seconds.
// It uses a custom internal image and ebitenutil.DebugPrint for rendering.
func NewStatusWidget(editor *Editor) *Node {
	// 140x32 is enough for "FPS: 60.0  TPS: 60.0\ntool: picker"
	img := ebiten.NewImage(140, 32)

	node := NewGizmo("status_widget")
	node.Image = img

	var lastUpdate float64

	node.OnUpdate = func(dt float64) {
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})

		tool := "ground"
		if editor != nil && editor.PickerMode() {
			tool = "picker"
		}
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f  TPS: %.1f\ntool: %s",
			ebiten.ActualFPS(), ebiten.ActualTPS(), tool))
	}

	return node
}
