package entities

// SlotStatus is the lifecycle state of one renderer slot:
// idle -> loading -> {ready, error}, back to idle on cancel or rebind.
type SlotStatus int

const (
	SlotIdle SlotStatus = iota
	SlotLoading
	SlotReady
	SlotError
)

func (s SlotStatus) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotLoading:
		return "loading"
	case SlotReady:
		return "ready"
	case SlotError:
		return "error"
	default:
		return "unknown"
	}
}

// PlaylistState is the public projection of the slot currently under the
// playhead, aggregated by the session for presentation layers.
type PlaylistState struct {
	Status            SlotStatus
	ProgressInSeconds float64
	DurationInSeconds float64
	Rate              float64
	IsPlaying         bool
	IsFocused         bool
}
