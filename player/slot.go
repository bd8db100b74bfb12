package player

import (
	"github.com/TelemTobi/PlayKit/entities"
)

// rendererSlot is one pool entry: ownership of exactly one renderer plus
// the item it is currently prepared for. boundItem is the sole source of
// truth for whether re-preparation is needed.
type rendererSlot struct {
	renderer  entities.Renderer
	boundItem entities.Item
	status    entities.SlotStatus

	// generation is bumped on every rebind and cancel. Asynchronous
	// prepare results carry the generation they were issued under and are
	// discarded when it no longer matches.
	generation uint64

	// repeatsRemaining counts replays left for BehaviorRepeat items,
	// reset on every rebind.
	repeatsRemaining int
}

func (slot *rendererSlot) bindNothing() {
	slot.generation += 1
	slot.renderer.Cancel()
	slot.boundItem = nil
	slot.status = entities.SlotIdle
	slot.repeatsRemaining = 0
}

func (slot *rendererSlot) isBoundTo(item entities.Item) bool {
	return entities.ItemsEqual(slot.boundItem, item)
}
