package loam

// MoveResult reports how a pointer move was consumed and which native
// propagation stages the caller should suppress. The three suppression flags
// are independent; any combination is meaningful. Handled implies the caller
// should treat the move as consumed.
type MoveResult struct {
	Handled                  bool
	PreventDefault           bool
	StopPropagation          bool
	StopImmediatePropagation bool
}

// MoveCapabilities is the capability set consulted when routing a pointer
// move. The function fields are supplied by the owning tools; all are assumed
// total, so a panic from one propagates unmodified to the caller.
type MoveCapabilities struct {
	// PickerActive selects the node-picker highlight mode. When true it
	// takes absolute precedence: the ground handler is never consulted.
	PickerActive bool

	// PickAt performs a pick query at the pointer location. A nil result
	// means nothing is under the pointer.
	PickAt func(PointerContext) *PickHit

	// UpdateHighlight applies the pick result to the hover highlight.
	// Called with nil to clear it.
	UpdateHighlight func(*PickHit)

	// HandleGroundMove offers the move to the ground editor and reports
	// whether it consumed it.
	HandleGroundMove func(PointerContext) bool
}

// DispatchPointerMove routes a single pointer-move event.
//
// When the picker is active, the move always resolves to a pick query plus a
// highlight update (even a nil hit updates, i.e. clears, the highlight) and is
// consumed with every propagation stage suppressed. Otherwise the ground
// editor is offered the move; if it consumes it, default propagation is
// preserved. The second return value is false when neither tool wanted the
// move, in which case the caller applies its default handling.
func DispatchPointerMove(ev PointerContext, caps MoveCapabilities) (MoveResult, bool) {
	if caps.PickerActive {
		caps.UpdateHighlight(caps.PickAt(ev))
		return MoveResult{
			Handled:                  true,
			PreventDefault:           true,
			StopPropagation:          true,
			StopImmediatePropagation: true,
		}, true
	}
	if caps.HandleGroundMove(ev) {
		return MoveResult{Handled: true}, true
	}
	return MoveResult{}, false
}

// --- Editor session ---

// EditorEventType identifies a kind of editor event.
type EditorEventType uint8

const (
	EditorPickChanged   EditorEventType = iota // hover highlight moved to a different node (or cleared)
	EditorStrokeBegan                          // a ground brush stroke started
	EditorStrokeApplied                        // a brush stamp modified the ground layer
	EditorStrokeEnded                          // the active stroke finished
)

// EditorEvent carries editor state changes for an optional EventSink.
type EditorEvent struct {
	Type   EditorEventType
	Node   *Node // EditorPickChanged: the newly picked node, nil when cleared
	WorldX float64
	WorldY float64
}

// EventSink receives editor events. Set one on an Editor to bridge picking
// and painting activity into the host application (undo stacks, inspectors,
// an ECS, ...).
type EventSink interface {
	EmitEditorEvent(event EditorEvent)
}

// Editor binds the node picker and the ground editor to a scene and routes
// pointer events between them. The picker-mode flag itself is owned by the
// host: flip it with SetPickerMode whenever the editor UI changes tools.
type Editor struct {
	scene  *Scene
	picker *Picker
	ground *GroundEditor
	sink   EventSink

	pickerMode bool
}

// NewEditor creates an editor for the given scene, configured by cfg.
// Attach it with Scene.SetEditor to route live input through it.
func NewEditor(scene *Scene, cfg Config) *Editor {
	e := &Editor{
		scene:  scene,
		picker: newPicker(scene, cfg.Highlight),
		ground: newGroundEditor(cfg.Ground, cfg.Brush),
	}
	scene.SetDragDeadZone(cfg.DragDeadZone)
	return e
}

// SetEventSink sets the optional editor event bridge.
func (e *Editor) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetPickerMode switches the node-picker highlight mode on or off.
// Leaving picker mode clears the hover highlight.
func (e *Editor) SetPickerMode(on bool) {
	if e.pickerMode == on {
		return
	}
	e.pickerMode = on
	if !on {
		e.updateHighlight(nil)
	}
}

// PickerMode reports whether the node-picker highlight mode is active.
func (e *Editor) PickerMode() bool {
	return e.pickerMode
}

// Picker returns the editor's node picker.
func (e *Editor) Picker() *Picker {
	return e.picker
}

// Ground returns the editor's ground editor.
func (e *Editor) Ground() *GroundEditor {
	return e.ground
}

// capabilities assembles the dispatch capability set from the editor's tools.
func (e *Editor) capabilities() MoveCapabilities {
	return MoveCapabilities{
		PickerActive:     e.pickerMode,
		PickAt:           e.picker.PickAt,
		UpdateHighlight:  e.updateHighlight,
		HandleGroundMove: e.ground.HandlePointerMove,
	}
}

// PointerMove routes a pointer-move event through DispatchPointerMove using
// the editor's own tools as the capability set.
func (e *Editor) PointerMove(ev PointerContext) (MoveResult, bool) {
	return DispatchPointerMove(ev, e.capabilities())
}

// PointerDown begins a ground brush stroke when the ground tool applies.
// Picker mode never paints.
func (e *Editor) PointerDown(ev PointerContext) {
	if e.pickerMode || ev.Button != MouseButtonLeft {
		return
	}
	if e.ground.BeginStroke(ev) {
		e.emit(EditorEvent{Type: EditorStrokeBegan, WorldX: ev.GlobalX, WorldY: ev.GlobalY})
	}
}

// PointerUp ends the active ground brush stroke, if any.
func (e *Editor) PointerUp(ev PointerContext) {
	if e.ground.EndStroke() {
		e.emit(EditorEvent{Type: EditorStrokeEnded, WorldX: ev.GlobalX, WorldY: ev.GlobalY})
	}
}

// Update advances the highlight pulse. Called from Scene.Update.
func (e *Editor) Update(dt float32) {
	e.picker.update(dt)
	if n := e.ground.takeStrokeApplied(); n {
		e.emit(EditorEvent{Type: EditorStrokeApplied, WorldX: e.ground.lastX, WorldY: e.ground.lastY})
	}
}

// updateHighlight forwards a pick result to the picker's highlight and emits
// EditorPickChanged when the picked node changes.
func (e *Editor) updateHighlight(hit *PickHit) {
	changed := e.picker.ApplyHighlight(hit)
	if !changed {
		return
	}
	evt := EditorEvent{Type: EditorPickChanged}
	if hit != nil {
		evt.Node = hit.Node
		evt.WorldX = hit.WorldX
		evt.WorldY = hit.WorldY
	}
	e.emit(evt)
}

func (e *Editor) emit(evt EditorEvent) {
	if e.sink != nil {
		e.sink.EmitEditorEvent(evt)
	}
}
