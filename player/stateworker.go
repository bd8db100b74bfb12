package player

import (
	"context"
	"math"
	"time"

	"github.com/TelemTobi/PlayKit/entities"
)

const progressTickInterval = 100 * time.Millisecond

// stateWorker is the single owner of the buffer window and all renderer
// interactions. Mutators record state synchronously and nudge the worker,
// which reconciles the pool against the store.
func (session *PlaylistSession) stateWorker(ctx context.Context) {
	defer session.teardownWorker()

	ticker := time.NewTicker(progressTickInterval)
	defer ticker.Stop()

	session.lastTick = time.Now()
	session.applyWindow()
	session.syncProjection()

	for {
		select {
		case <-ctx.Done():
			return
		case <-session.chanNavigateCommand:
			session.handleNavigate()
		case <-session.chanItemsCommand:
			// Debounce so rapid successive SetItems calls trigger one
			// round of renderer work.
			session.debounceFire = time.After(session.debounceInterval)
		case <-session.debounceFire:
			session.debounceFire = nil
			session.handleItemsChanged()
		case <-session.chanFocusCommand:
			session.handleFocusChanged()
		case <-session.chanPlaybackCommand:
			session.handlePlaybackChanged()
		case seconds := <-session.chanSeekCommand:
			session.handleSeek(seconds)
		case <-session.resumeFire:
			session.resumeFire = nil
			session.handleResume()
		case event := <-session.rendererEvents:
			session.handleRendererEvent(event)
		case result := <-session.window.imageResults:
			session.handleImageResult(result)
		case mbps, ok := <-session.bandwidthFeed:
			if ok {
				session.handleBandwidthSample(mbps)
			} else {
				session.bandwidthFeed = nil
			}
		case now := <-ticker.C:
			session.handleTick(now)
		}
	}
}

func (session *PlaylistSession) teardownWorker() {
	session.window.releaseAll()
	close(session.workerDone)
}

// applyWindow binds the pool to the store's current window. While
// unfocused only the playhead position is kept hot.
func (session *PlaylistSession) applyWindow() {
	items := session.store.RangedItems(session.window.backwardSize, session.window.forwardSize)
	session.window.apply(items, !session.focusedSnapshot())
}

func (session *PlaylistSession) handleNavigate() {
	session.resumeFire = nil

	if session.playingApplied {
		session.pauseCurrentRenderer()
		session.playingApplied = false
	}

	session.mutex.Lock()
	session.progressInSeconds = 0
	session.mutex.Unlock()

	session.applyWindow()
	session.syncProjection()

	session.logger.Debug().Int("index", session.store.CurrentIndex()).Msg("playhead moved")

	if session.playbackWanted() {
		session.scheduleResume()
	}
}

func (session *PlaylistSession) handleItemsChanged() {
	session.resumeFire = nil

	if session.playingApplied {
		session.pauseCurrentRenderer()
		session.playingApplied = false
	}

	session.applyWindow()
	session.syncProjection()

	if session.playbackWanted() {
		session.scheduleResume()
	}
}

func (session *PlaylistSession) handleFocusChanged() {
	if session.focusedSnapshot() {
		session.applyWindow()
		session.syncProjection()

		if session.playbackWanted() {
			session.scheduleResume()
		}

		return
	}

	// Focus lost: pause the hot item, drop every pre-buffered slot and
	// reset progress.
	if session.playingApplied {
		session.pauseCurrentRenderer()
		session.playingApplied = false
	}

	session.window.cancelNonCurrent()

	session.mutex.Lock()
	session.progressInSeconds = 0
	session.mutex.Unlock()

	session.syncProjection()
}

func (session *PlaylistSession) handlePlaybackChanged() {
	if !session.playbackWanted() {
		if session.playingApplied {
			session.pauseCurrentRenderer()
			session.playingApplied = false
		}

		return
	}

	if !session.playingApplied {
		session.startPlayback()
		return
	}

	rate := session.rateSnapshot()

	if rate != session.appliedRate {
		slot := session.window.currentSlot()

		if _, ok := slot.boundItem.(*entities.VideoItem); ok {
			slot.renderer.SetRate(rate)
		}

		session.appliedRate = rate
	}
}

// scheduleResume arms the settle timer tagged with the index it was
// issued for. Rapid repeated navigation re-arms it; the tag check in
// handleResume abandons resumes whose index has since changed.
func (session *PlaylistSession) scheduleResume() {
	session.resumeTag = session.store.CurrentIndex()
	session.resumeFire = time.After(session.settleDelay)
}

func (session *PlaylistSession) handleResume() {
	if !session.playbackWanted() {
		return
	}

	if session.store.CurrentIndex() != session.resumeTag {
		// Stale resume for an index we already left.
		return
	}

	session.startPlayback()
}

func (session *PlaylistSession) startPlayback() {
	slot := session.window.currentSlot()

	if slot.boundItem == nil {
		return
	}

	rate := session.rateSnapshot()

	if video, ok := slot.boundItem.(*entities.VideoItem); ok {
		slot.renderer.SetRate(rate)
		slot.renderer.Play()

		session.emitNotification(Notification{
			Type:      NotificationVideoStarted,
			Timestamp: time.Now(),
			URL:       video.URL(),
		})
	}

	session.playingApplied = true
	session.appliedRate = rate
	session.lastTick = time.Now()
}

func (session *PlaylistSession) pauseCurrentRenderer() {
	slot := session.window.currentSlot()

	if _, ok := slot.boundItem.(*entities.VideoItem); ok {
		slot.renderer.Pause()
	}
}

func (session *PlaylistSession) handleSeek(seconds float64) {
	slot := session.window.currentSlot()

	if slot.boundItem == nil {
		return
	}

	if _, ok := slot.boundItem.(*entities.VideoItem); ok {
		slot.renderer.Seek(seconds)
		return
	}

	session.mutex.Lock()
	session.progressInSeconds = seconds
	session.mutex.Unlock()
}

func (session *PlaylistSession) handleRendererEvent(event entities.RendererEvent) {
	slot := session.window.slotForRenderer(event.Renderer)

	if slot == nil {
		// Renderer was released after the event was queued.
		return
	}

	isCurrent := slot == session.window.currentSlot()

	switch event.Kind {
	case entities.RendererStatusChanged:
		previous := slot.status
		slot.status = event.Status

		if isCurrent && session.playingApplied && previous == entities.SlotReady &&
			event.Status == entities.SlotLoading {
			session.notifyStalled(slot, event.Err)
		}

		if event.Status == entities.SlotError {
			session.logger.Warn().Err(event.Err).Msg("renderer reported error")
		}

		if isCurrent {
			session.syncProjection()
		}

	case entities.RendererProgressChanged:
		if isCurrent {
			session.mutex.Lock()
			session.progressInSeconds = event.Seconds
			session.mutex.Unlock()
		}

	case entities.RendererEndOfItem:
		if isCurrent {
			session.handleEndOfItem(slot)
		}
	}
}

func (session *PlaylistSession) notifyStalled(slot *rendererSlot, err error) {
	url := ""

	if video, ok := slot.boundItem.(*entities.VideoItem); ok {
		url = video.URL()
	}

	session.emitNotification(Notification{
		Type:      NotificationVideoStalled,
		Timestamp: time.Now(),
		URL:       url,
		Err:       err,
	})
}

func (session *PlaylistSession) handleImageResult(result imageFetchResult) {
	if !session.window.applyImageResult(result) {
		return
	}

	if result.slot == session.window.currentSlot() {
		session.syncProjection()
	}
}

func (session *PlaylistSession) handleBandwidthSample(mbps float64) {
	forwardSize := clampInt(int(mbps), 1, 5)
	backwardSize := clampInt(int(mbps/2), 1, 2)

	changed, err := session.window.resize(backwardSize, forwardSize)

	if err != nil {
		session.logger.Warn().Err(err).Msg("buffer window resize failed")
	}

	if !changed {
		return
	}

	session.logger.Debug().
		Int("backward", backwardSize).
		Int("forward", forwardSize).
		Msg("buffer window resized")

	if session.focusedSnapshot() {
		session.applyWindow()
		session.syncProjection()
	}
}

// handleEndOfItem runs when the current item's natural duration elapses.
// Loop and repeat behaviors intercept the advance; otherwise the playhead
// moves on, or ReachedEnd fires at the last item.
func (session *PlaylistSession) handleEndOfItem(slot *rendererSlot) {
	behavior := slot.boundItem.Behavior()

	switch behavior.Mode {
	case entities.BehaviorLoop:
		session.replay(slot)
		return
	case entities.BehaviorRepeat:
		if slot.repeatsRemaining > 0 {
			slot.repeatsRemaining -= 1
			session.replay(slot)
			return
		}
	}

	if session.store.IsAtLastIndex() {
		session.playingApplied = false

		select {
		case session.chanReachedEnd <- struct{}{}:
		default:
		}

		return
	}

	session.store.AdvanceToNext()
	session.handleNavigate()
}

func (session *PlaylistSession) replay(slot *rendererSlot) {
	if _, ok := slot.boundItem.(*entities.VideoItem); ok {
		slot.renderer.Seek(0)
		slot.renderer.Play()
	}

	session.mutex.Lock()
	session.progressInSeconds = 0
	session.mutex.Unlock()

	session.lastTick = time.Now()
}

// handleTick advances timer-driven items: images, custom placeholders,
// error sentinels, and any slot stuck in error status, which auto-advances
// after the fallback duration so a bad item never stalls the playlist.
func (session *PlaylistSession) handleTick(now time.Time) {
	elapsed := now.Sub(session.lastTick)
	session.lastTick = now

	if !session.playingApplied || !session.playbackWanted() {
		return
	}

	slot := session.window.currentSlot()

	if slot.boundItem == nil || slot.status == entities.SlotLoading {
		return
	}

	if _, isVideo := slot.boundItem.(*entities.VideoItem); isVideo && slot.status != entities.SlotError {
		// Video progress comes from the renderer.
		return
	}

	duration := session.timerDuration(slot)

	session.mutex.Lock()
	session.progressInSeconds += elapsed.Seconds() * session.rate
	finished := duration > 0 && session.progressInSeconds >= duration

	if finished {
		session.progressInSeconds = duration
	}

	session.mutex.Unlock()

	if finished {
		session.handleEndOfItem(slot)
	}
}

// timerDuration is the natural duration in seconds for a timer-driven
// slot. Error status always maps to the fixed fallback.
func (session *PlaylistSession) timerDuration(slot *rendererSlot) float64 {
	if slot.status == entities.SlotError {
		return entities.ErrorItemDuration.Seconds()
	}

	if timed, ok := slot.boundItem.(entities.TimedItem); ok {
		return timed.Duration().Seconds()
	}

	return 0
}

// syncProjection refreshes the public status/duration projection from the
// current slot.
func (session *PlaylistSession) syncProjection() {
	slot := session.window.currentSlot()

	session.mutex.Lock()
	defer session.mutex.Unlock()

	if slot.boundItem == nil {
		session.status = entities.SlotIdle
		session.durationInSeconds = 0
		return
	}

	session.status = slot.status

	if slot.status == entities.SlotError {
		session.durationInSeconds = entities.ErrorItemDuration.Seconds()
		return
	}

	switch item := slot.boundItem.(type) {
	case *entities.VideoItem:
		session.durationInSeconds = normalizeDuration(slot.renderer.Duration())
	case entities.TimedItem:
		session.durationInSeconds = item.Duration().Seconds()
	}
}

func (session *PlaylistSession) playbackWanted() bool {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.playIntent && session.isFocused
}

func (session *PlaylistSession) focusedSnapshot() bool {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.isFocused
}

func (session *PlaylistSession) rateSnapshot() float64 {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.rate
}

// normalizeDuration maps NaN, infinite and negative durations reported by
// a renderer to 0.
func normalizeDuration(seconds float64) float64 {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0
	}

	return seconds
}

func clampInt(value int, low int, high int) int {
	if value < low {
		return low
	}

	if value > high {
		return high
	}

	return value
}
