// Package loam is a retained-mode scene-editing input toolkit for [Ebitengine].
//
// Loam provides the scene graph, transform hierarchy, editor camera, pointer
// input pipeline, node-picker highlighting, and ground-layer brush editing
// that a level or scene editor built on Ebitengine needs.
//
// # Quick start
//
// Implement [ebiten.Game] yourself and call [Scene.Update] and [Scene.Draw]:
//
//	type App struct{ scene *loam.Scene }
//
//	func (a *App) Update() error              { a.scene.Update(); return nil }
//	func (a *App) Draw(s *ebiten.Image)       { a.scene.Draw(s) }
//	func (a *App) Layout(w, h int) (int, int) { return w, h }
//
// Attach an [Editor] to route pointer moves between its tools:
//
//	scene := loam.NewScene()
//	editor := loam.NewEditor(scene, loam.DefaultConfig())
//	scene.SetEditor(editor)
//	editor.SetPickerMode(true) // hover-highlight nodes under the cursor
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children inherit their parent's transform and alpha.
//
//	group := loam.NewGroup("props")
//	scene.Root().AddChild(group)
//
//	crate := loam.NewSprite("crate", crateImage)
//	crate.X, crate.Y = 100, 50
//	group.AddChild(crate)
//
// # Pointer routing
//
// While the editor's picker mode is active, every pointer move performs a
// pick query and updates the hover highlight; the move is consumed and all
// downstream propagation is suppressed. Otherwise the move is offered to the
// ground editor, which consumes it only while a brush stroke is in progress.
// Unconsumed moves fall through to the scene's default hover handling and
// registered callbacks. See [DispatchPointerMove] for the exact contract.
//
// # Ground editing
//
// [GroundLayer] is a cell grid covering a region of the world (by default a
// 400-unit square). [Brush] strokes raise, lower, smooth, or set cell values
// as the pointer drags across the layer.
//
// [Ebitengine]: https://ebitengine.org
package loam
