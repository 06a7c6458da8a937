package loam

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, cameras, input
// state, and the editor routing slot.
type Scene struct {
	root   *Node
	editor *Editor
	debug  bool

	// Cameras
	cameras []*Camera

	// Input state
	handlers     handlerRegistry
	captured     *Node
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64

	// Synthetic input
	injectQueue []syntheticPointerEvent
	runner      *ScriptRunner
}

// NewScene creates a new scene with a pre-created root group.
func NewScene() *Scene {
	root := NewGroup("root")
	root.Interactable = true
	return &Scene{
		root:         root,
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root group node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetEditor attaches an editor so live pointer input is routed through it.
// Pass nil to detach.
func (s *Scene) SetEditor(e *Editor) {
	s.editor = e
}

// Editor returns the attached editor, or nil.
func (s *Scene) Editor() *Editor {
	return s.editor
}

// Update processes input, advances cameras and the editor highlight, and
// runs per-node OnUpdate hooks.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	// Refresh world transforms first so hit testing and camera math see
	// accurate positions this frame.
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	for _, cam := range s.cameras {
		cam.update(dt)
	}

	if s.runner != nil {
		s.runner.step(s)
	}

	s.processInput()

	if s.editor != nil {
		s.editor.Update(dt)
	}

	runOnUpdate(s.root, float64(dt))
}

// runOnUpdate invokes OnUpdate hooks depth-first.
func runOnUpdate(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runOnUpdate(child, dt)
	}
}

// Draw renders the scene to the given screen image, once per camera viewport.
func (s *Scene) Draw(screen *ebiten.Image) {
	if len(s.cameras) == 0 {
		// No explicit cameras: identity view, full screen.
		s.drawWithCamera(screen, nil)
		return
	}

	for _, cam := range s.cameras {
		cam.computeViewMatrix()
		vp := cam.Viewport
		viewportImg := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		s.drawWithCamera(viewportImg, cam)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame draw stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
