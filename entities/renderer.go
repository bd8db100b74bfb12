package entities

// RendererEventKind tags events a renderer pushes back to its owner.
type RendererEventKind int

const (
	RendererStatusChanged RendererEventKind = iota
	RendererProgressChanged
	RendererEndOfItem
)

// RendererEvent is emitted by a renderer backend onto the events channel it
// was constructed with. Renderer identifies the emitting instance so the
// owner can route the event to the right slot after pool rotations.
type RendererEvent struct {
	Renderer Renderer
	Kind     RendererEventKind
	Status   SlotStatus
	Seconds  float64
	Err      error
}

// Renderer is one playable/displayable surface owned by a buffer window
// slot. Implementations belong to the concrete decode/render backend and
// report readiness, progress and end-of-item through RendererEvents.
type Renderer interface {
	// Prepare binds the surface to an item and begins whatever loading is
	// required without starting playback.
	Prepare(item Item) error
	Play()
	Pause()
	SetRate(rate float64)
	Seek(seconds float64)
	// Cancel releases decode and network resources held for the bound
	// item. The renderer instance stays reusable for a later Prepare.
	Cancel()
	// Duration reports the media duration in seconds once known, 0 before
	// that. May be NaN or Inf for live/unbounded media.
	Duration() float64
}

// RendererFactory creates renderer instances wired to an events channel,
// one per pool slot.
type RendererFactory interface {
	NewRenderer(events chan<- RendererEvent) (Renderer, error)
}
