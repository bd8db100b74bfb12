package player_test

import (
	"sync"

	"github.com/TelemTobi/PlayKit/entities"
)

// FakeRenderer is a hand-written renderer backend recording every call and
// letting tests push readiness/progress/end events, in place of a real
// decode surface.
type FakeRenderer struct {
	mutex  sync.Mutex
	events chan<- entities.RendererEvent

	autoReady bool
	duration  float64

	boundItem    entities.Item
	prepareCount int
	cancelCount  int
	playCount    int
	pauseCount   int
	rates        []float64
	seeks        []float64
}

func (renderer *FakeRenderer) Prepare(item entities.Item) error {
	renderer.mutex.Lock()
	renderer.boundItem = item
	renderer.prepareCount += 1
	autoReady := renderer.autoReady
	renderer.mutex.Unlock()

	if autoReady {
		renderer.EmitStatus(entities.SlotReady, nil)
	}

	return nil
}

func (renderer *FakeRenderer) Play() {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.playCount += 1
}

func (renderer *FakeRenderer) Pause() {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.pauseCount += 1
}

func (renderer *FakeRenderer) SetRate(rate float64) {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.rates = append(renderer.rates, rate)
}

func (renderer *FakeRenderer) Seek(seconds float64) {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.seeks = append(renderer.seeks, seconds)
}

func (renderer *FakeRenderer) Cancel() {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	renderer.cancelCount += 1
	renderer.boundItem = nil
}

func (renderer *FakeRenderer) Duration() float64 {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.duration
}

func (renderer *FakeRenderer) EmitStatus(status entities.SlotStatus, err error) {
	renderer.events <- entities.RendererEvent{
		Renderer: renderer,
		Kind:     entities.RendererStatusChanged,
		Status:   status,
		Err:      err,
	}
}

func (renderer *FakeRenderer) EmitProgress(seconds float64) {
	renderer.events <- entities.RendererEvent{
		Renderer: renderer,
		Kind:     entities.RendererProgressChanged,
		Seconds:  seconds,
	}
}

func (renderer *FakeRenderer) EmitEnd() {
	renderer.events <- entities.RendererEvent{
		Renderer: renderer,
		Kind:     entities.RendererEndOfItem,
	}
}

func (renderer *FakeRenderer) BoundItem() entities.Item {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.boundItem
}

func (renderer *FakeRenderer) PrepareCount() int {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.prepareCount
}

func (renderer *FakeRenderer) CancelCount() int {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.cancelCount
}

func (renderer *FakeRenderer) PlayCount() int {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.playCount
}

func (renderer *FakeRenderer) PauseCount() int {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return renderer.pauseCount
}

func (renderer *FakeRenderer) Rates() []float64 {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return append([]float64(nil), renderer.rates...)
}

func (renderer *FakeRenderer) Seeks() []float64 {
	renderer.mutex.Lock()
	defer renderer.mutex.Unlock()
	return append([]float64(nil), renderer.seeks...)
}

// FakeRendererFactory creates FakeRenderers and remembers them in creation
// order, which matches the pool's slot order at construction.
type FakeRendererFactory struct {
	mutex sync.Mutex

	AutoReady bool
	Duration  float64

	created []*FakeRenderer
}

func (factory *FakeRendererFactory) NewRenderer(events chan<- entities.RendererEvent) (entities.Renderer, error) {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	renderer := &FakeRenderer{
		events:    events,
		autoReady: factory.AutoReady,
		duration:  factory.Duration,
	}

	factory.created = append(factory.created, renderer)
	return renderer, nil
}

func (factory *FakeRendererFactory) Created() []*FakeRenderer {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()
	return append([]*FakeRenderer(nil), factory.created...)
}

func (factory *FakeRendererFactory) CreatedCount() int {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()
	return len(factory.created)
}

// RendererBoundTo finds the renderer currently bound to item, nil when no
// renderer holds it.
func (factory *FakeRendererFactory) RendererBoundTo(item entities.Item) *FakeRenderer {
	factory.mutex.Lock()
	defer factory.mutex.Unlock()

	for _, renderer := range factory.created {
		if entities.ItemsEqual(renderer.BoundItem(), item) {
			return renderer
		}
	}

	return nil
}

// Verify fakes implement the renderer contracts
var _ entities.Renderer = (*FakeRenderer)(nil)
var _ entities.RendererFactory = (*FakeRendererFactory)(nil)
