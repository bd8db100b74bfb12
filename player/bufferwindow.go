package player

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/TelemTobi/PlayKit/entities"
	"github.com/TelemTobi/PlayKit/imagecache"
)

// imageFetchResult marshals an asynchronous image fetch back onto the
// session worker. generation is compared against the slot before applying
// so a result for a since-rebound slot is discarded.
type imageFetchResult struct {
	slot       *rendererSlot
	generation uint64
	err        error
}

// bufferWindow owns the renderer pool and the mapping from window
// positions to slots. All methods must be called from the session worker
// goroutine; renderer events and image fetches completing elsewhere are
// funneled back through channels.
type bufferWindow struct {
	factory      entities.RendererFactory
	events       chan entities.RendererEvent
	images       *imagecache.Cache
	imageResults chan imageFetchResult
	notify       func(notification Notification)
	logger       zerolog.Logger

	// done is closed on releaseAll so fetch goroutines whose result no
	// longer has a receiver can exit instead of blocking on imageResults.
	done chan struct{}

	backwardSize int
	forwardSize  int
	slots        []*rendererSlot
}

func newBufferWindow(
	factory entities.RendererFactory,
	events chan entities.RendererEvent,
	images *imagecache.Cache,
	notify func(notification Notification),
	logger zerolog.Logger,
	backwardSize int,
	forwardSize int,
) (*bufferWindow, error) {
	window := &bufferWindow{
		factory:      factory,
		events:       events,
		images:       images,
		imageResults: make(chan imageFetchResult, 16),
		notify:       notify,
		logger:       logger,
		done:         make(chan struct{}),
		backwardSize: backwardSize,
		forwardSize:  forwardSize,
	}

	for index := 0; index < backwardSize+forwardSize+1; index += 1 {
		slot, err := window.newSlot()

		if err != nil {
			window.releaseAll()
			return nil, err
		}

		window.slots = append(window.slots, slot)
	}

	return window, nil
}

func (window *bufferWindow) newSlot() (*rendererSlot, error) {
	renderer, err := window.factory.NewRenderer(window.events)

	if err != nil {
		return nil, err
	}

	return &rendererSlot{renderer: renderer, status: entities.SlotIdle}, nil
}

func (window *bufferWindow) size() int {
	return len(window.slots)
}

// currentSlot is the pool entry under the playhead, at the backward-buffer
// offset.
func (window *bufferWindow) currentSlot() *rendererSlot {
	return window.slots[window.backwardSize]
}

func (window *bufferWindow) slotForRenderer(renderer entities.Renderer) *rendererSlot {
	for _, slot := range window.slots {
		if slot.renderer == renderer {
			return slot
		}
	}

	return nil
}

// apply binds the pool to the given window of items (len must equal the
// pool size; nil marks positions outside the playlist). Continuity with
// the previous binding is kept by rotating slots instead of re-preparing
// them: on an ordinary single-step navigation only the newly exposed edge
// position does real work. currentOnly restricts preparation to the
// playhead position, used while the surface is unfocused.
func (window *bufferWindow) apply(items []entities.Item, currentOnly bool) {
	diff, found := window.rotationDiff(items)

	if found && diff != 0 {
		window.rotate(diff)
	}

	for index, slot := range window.slots {
		if currentOnly && index != window.backwardSize {
			if slot.boundItem != nil {
				slot.bindNothing()
			}

			continue
		}

		window.prepareSlot(slot, items[index])
	}
}

// rotationDiff finds the signed offset between a slot's old position and
// the position its bound item occupies in the new window. found is false
// when no bound item intersects the new window at all, in which case
// continuity is discarded and every slot re-prepares.
func (window *bufferWindow) rotationDiff(items []entities.Item) (int, bool) {
	for oldPosition, slot := range window.slots {
		if slot.boundItem == nil {
			continue
		}

		for newPosition, item := range items {
			if item != nil && slot.boundItem.Equal(item) {
				diff := oldPosition - newPosition

				if diff >= len(window.slots) || -diff >= len(window.slots) {
					return 0, false
				}

				return diff, true
			}
		}
	}

	return 0, false
}

// rotate moves the first diff slots to the tail (diff > 0, window moved
// forward) or the last |diff| slots to the head (diff < 0).
func (window *bufferWindow) rotate(diff int) {
	if diff > 0 {
		window.slots = append(window.slots[diff:], window.slots[:diff]...)
	} else {
		pivot := len(window.slots) + diff
		window.slots = append(window.slots[pivot:], window.slots[:pivot]...)
	}
}

// prepareSlot binds the slot to item and starts loading per variant. A
// no-op when the slot is already bound to the same item.
func (window *bufferWindow) prepareSlot(slot *rendererSlot, item entities.Item) {
	if slot.isBoundTo(item) {
		return
	}

	if item == nil {
		slot.bindNothing()
		return
	}

	slot.generation += 1
	slot.renderer.Cancel()
	slot.boundItem = item
	slot.repeatsRemaining = 0

	if item.Behavior().Mode == entities.BehaviorRepeat {
		slot.repeatsRemaining = item.Behavior().RepeatCount
	}

	switch item := item.(type) {
	case *entities.VideoItem:
		slot.status = entities.SlotLoading
		window.notify(Notification{
			Type:      NotificationVideoRequested,
			Timestamp: time.Now(),
			URL:       item.URL(),
		})

		if err := slot.renderer.Prepare(item); err != nil {
			window.logger.Warn().Err(err).Str("url", item.URL()).Msg("video prepare failed")
			slot.status = entities.SlotError
		}

	case *entities.ImageItem:
		slot.status = entities.SlotLoading
		window.fetchImage(slot, item)

	case *entities.CustomItem:
		slot.status = entities.SlotReady

	case *entities.ErrorItem:
		slot.status = entities.SlotError
	}
}

func (window *bufferWindow) fetchImage(slot *rendererSlot, item *entities.ImageItem) {
	if window.images == nil {
		window.logger.Warn().Str("url", item.URL()).Msg("no image cache configured")
		slot.status = entities.SlotError
		return
	}

	generation := slot.generation

	go func() {
		_, err := window.images.Fetch(context.Background(), item.URL())

		select {
		case window.imageResults <- imageFetchResult{
			slot:       slot,
			generation: generation,
			err:        err,
		}:
		case <-window.done:
		}
	}()
}

// applyImageResult resolves a completed fetch, discarding it when the slot
// has been rebound or released since the fetch was issued.
func (window *bufferWindow) applyImageResult(result imageFetchResult) bool {
	if result.slot.generation != result.generation {
		return false
	}

	if window.slotForRenderer(result.slot.renderer) == nil {
		return false
	}

	if result.err != nil {
		window.logger.Warn().Err(result.err).Msg("image load failed")
		result.slot.status = entities.SlotError
	} else {
		result.slot.status = entities.SlotReady
	}

	return true
}

// resize grows or shrinks the pool to the new buffer sizes. Forward
// capacity changes at the tail and backward capacity at the head, so the
// slot under the playhead keeps its identity. Requesting the current sizes
// performs no pool mutation.
func (window *bufferWindow) resize(backwardSize int, forwardSize int) (bool, error) {
	if backwardSize == window.backwardSize && forwardSize == window.forwardSize {
		return false, nil
	}

	for window.forwardSize < forwardSize {
		slot, err := window.newSlot()

		if err != nil {
			return true, err
		}

		window.slots = append(window.slots, slot)
		window.forwardSize += 1
	}

	for window.forwardSize > forwardSize {
		last := len(window.slots) - 1
		window.slots[last].bindNothing()
		window.slots = window.slots[:last]
		window.forwardSize -= 1
	}

	for window.backwardSize < backwardSize {
		slot, err := window.newSlot()

		if err != nil {
			return true, err
		}

		window.slots = append([]*rendererSlot{slot}, window.slots...)
		window.backwardSize += 1
	}

	for window.backwardSize > backwardSize {
		window.slots[0].bindNothing()
		window.slots = window.slots[1:]
		window.backwardSize -= 1
	}

	return true, nil
}

// cancelNonCurrent releases every slot except the one under the playhead,
// bounding resource usage to a single hot item.
func (window *bufferWindow) cancelNonCurrent() {
	for index, slot := range window.slots {
		if index == window.backwardSize {
			continue
		}

		if slot.boundItem != nil {
			slot.bindNothing()
		}
	}
}

func (window *bufferWindow) releaseAll() {
	for _, slot := range window.slots {
		slot.bindNothing()
	}

	window.slots = nil

	select {
	case <-window.done:
	default:
		close(window.done)
	}
}
