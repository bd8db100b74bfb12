package player

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/TelemTobi/PlayKit/bandwidth"
	"github.com/TelemTobi/PlayKit/entities"
	"github.com/TelemTobi/PlayKit/imagecache"
	"github.com/TelemTobi/PlayKit/playlist"
)

const (
	// DefaultResumeSettleDelay is how long the worker waits after an index
	// change before issuing the resume, so rapid navigation settles on a
	// single item first.
	DefaultResumeSettleDelay = 100 * time.Millisecond

	// DefaultItemsDebounceInterval coalesces rapid successive SetItems
	// calls before renderer work is triggered.
	DefaultItemsDebounceInterval = 50 * time.Millisecond

	rendererEventBufferSize = 64
	notificationBufferSize  = 16
)

type PlaylistSessionOptions struct {
	Items              []entities.Item
	InitialIndex       int
	BackwardBufferSize int
	ForwardBufferSize  int
	Focused            bool

	// ImageCache serves ImageItem prepares. Required when the playlist
	// can contain image items; image slots fail otherwise.
	ImageCache *imagecache.Cache

	// Bandwidth drives adaptive window resizing when set.
	Bandwidth *bandwidth.Estimator

	Logger                zerolog.Logger
	ResumeSettleDelay     time.Duration
	ItemsDebounceInterval time.Duration
}

// PlaylistSession keeps a window of items around the current playlist
// index pre-rendered in a bounded renderer pool and plays the one under
// the playhead. Mutators are safe from any goroutine; a single worker
// goroutine owns all renderer interactions.
type PlaylistSession struct {
	mutex sync.RWMutex

	store  *playlist.Store
	logger zerolog.Logger

	rate       float64
	playIntent bool
	isFocused  bool
	closed     bool

	// projection of the current slot, written by the worker
	status            entities.SlotStatus
	progressInSeconds float64
	durationInSeconds float64

	window         *bufferWindow
	rendererEvents chan entities.RendererEvent
	bandwidthFeed  <-chan float64

	settleDelay      time.Duration
	debounceInterval time.Duration

	chanNavigateCommand chan bool
	chanItemsCommand    chan bool
	chanFocusCommand    chan bool
	chanPlaybackCommand chan bool
	chanSeekCommand     chan float64

	chanReachedEnd    chan struct{}
	chanNotifications chan Notification

	cancelWorker context.CancelFunc
	workerDone   chan struct{}

	// worker-owned fields, never touched outside the worker goroutine
	resumeFire     <-chan time.Time
	resumeTag      int
	debounceFire   <-chan time.Time
	playingApplied bool
	appliedRate    float64
	lastTick       time.Time
}

// NewPlaylistSession creates a session with default tuning. See
// NewPlaylistSessionEx for full control over collaborators.
func NewPlaylistSession(
	factory entities.RendererFactory,
	items []entities.Item,
	initialIndex int,
	backwardBufferSize int,
	forwardBufferSize int,
	focused bool,
) (*PlaylistSession, error) {
	return NewPlaylistSessionEx(factory, &PlaylistSessionOptions{
		Items:              items,
		InitialIndex:       initialIndex,
		BackwardBufferSize: backwardBufferSize,
		ForwardBufferSize:  forwardBufferSize,
		Focused:            focused,
		Logger:             zerolog.Nop(),
	})
}

func NewPlaylistSessionEx(factory entities.RendererFactory, options *PlaylistSessionOptions) (*PlaylistSession, error) {
	if factory == nil {
		return nil, errors.New("renderer factory is required")
	}

	if options.BackwardBufferSize < 0 || options.ForwardBufferSize < 0 {
		return nil, errors.New("buffer sizes must not be negative")
	}

	session := &PlaylistSession{
		store:  playlist.NewStore(options.Items, options.InitialIndex),
		logger: options.Logger,

		rate:      1,
		isFocused: options.Focused,

		rendererEvents: make(chan entities.RendererEvent, rendererEventBufferSize),

		settleDelay:      options.ResumeSettleDelay,
		debounceInterval: options.ItemsDebounceInterval,

		chanNavigateCommand: make(chan bool, 1),
		chanItemsCommand:    make(chan bool, 1),
		chanFocusCommand:    make(chan bool, 1),
		chanPlaybackCommand: make(chan bool, 1),
		chanSeekCommand:     make(chan float64, 1),

		chanReachedEnd:    make(chan struct{}, 1),
		chanNotifications: make(chan Notification, notificationBufferSize),

		workerDone: make(chan struct{}),
	}

	if session.settleDelay <= 0 {
		session.settleDelay = DefaultResumeSettleDelay
	}

	if session.debounceInterval <= 0 {
		session.debounceInterval = DefaultItemsDebounceInterval
	}

	window, err := newBufferWindow(
		factory,
		session.rendererEvents,
		options.ImageCache,
		session.emitNotification,
		session.logger,
		options.BackwardBufferSize,
		options.ForwardBufferSize,
	)

	if err != nil {
		return nil, err
	}

	session.window = window

	if options.Bandwidth != nil {
		session.bandwidthFeed = options.Bandwidth.Subscribe()
	}

	ctx, cancel := context.WithCancel(context.Background())
	session.cancelWorker = cancel

	go session.stateWorker(ctx)

	return session, nil
}

// SetItems replaces the playlist. The current index is revalidated
// immediately; renderer work is debounced to coalesce rapid updates.
func (session *PlaylistSession) SetItems(items []entities.Item) {
	session.mutex.RLock()
	defer session.mutex.RUnlock()

	if session.closed {
		return
	}

	session.store.SetItems(items)
	signal(session.chanItemsCommand)
}

// AdvanceToNext moves the playhead one item forward, clamped at the last
// item.
func (session *PlaylistSession) AdvanceToNext() {
	session.navigate(func() bool { return session.store.AdvanceToNext() })
}

// MoveToPrevious moves the playhead one item back, clamped at 0.
func (session *PlaylistSession) MoveToPrevious() {
	session.navigate(func() bool { return session.store.MoveToPrevious() })
}

// SetCurrentIndex jumps the playhead. Out-of-bounds indices and the
// current index are no-ops. animated is a presentation hint only.
func (session *PlaylistSession) SetCurrentIndex(index int, animated bool) {
	session.navigate(func() bool { return session.store.SetCurrentIndex(index, animated) })
}

func (session *PlaylistSession) navigate(move func() bool) {
	session.mutex.RLock()
	defer session.mutex.RUnlock()

	if session.closed {
		return
	}

	if move() {
		signal(session.chanNavigateCommand)
	}
}

// SetFocus marks the playlist surface visible/active. Losing focus pauses
// the current renderer and releases all pre-buffered slots; regaining it
// re-prepares the window and resumes playback intent.
func (session *PlaylistSession) SetFocus(focused bool) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.closed || session.isFocused == focused {
		return
	}

	session.isFocused = focused
	signal(session.chanFocusCommand)
}

// Play records playing intent. It has no renderer effect while the
// surface is unfocused.
func (session *PlaylistSession) Play() {
	session.setPlayIntent(true)
}

// Pause clears playing intent.
func (session *PlaylistSession) Pause() {
	session.setPlayIntent(false)
}

func (session *PlaylistSession) setPlayIntent(playing bool) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.closed || session.playIntent == playing {
		return
	}

	session.playIntent = playing
	signal(session.chanPlaybackCommand)
}

// SetRate sets the playback rate. A positive rate implies playing intent;
// non-positive rates are ignored.
func (session *PlaylistSession) SetRate(rate float64) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.closed || rate <= 0 {
		return
	}

	session.rate = rate
	session.playIntent = true
	signal(session.chanPlaybackCommand)
}

// SetProgress seeks the current item to the given offset in seconds. For
// video items the seek goes through the renderer; for timer-driven items
// it adjusts the timer offset directly.
func (session *PlaylistSession) SetProgress(seconds float64) {
	session.mutex.Lock()
	defer session.mutex.Unlock()

	if session.closed || seconds < 0 {
		return
	}

	currentItem, err := session.store.CurrentItem()

	if err != nil {
		return
	}

	if _, isVideo := currentItem.(*entities.VideoItem); !isVideo {
		// Timer items echo the new offset synchronously.
		session.progressInSeconds = seconds
	}

	overwrite(session.chanSeekCommand, seconds)
}

// Close tears the session down: the worker exits and every renderer slot
// is cancelled and released. Safe to call once; later calls report
// ErrorSessionClosed.
func (session *PlaylistSession) Close() error {
	session.mutex.Lock()

	if session.closed {
		session.mutex.Unlock()
		return entities.ErrorSessionClosed
	}

	session.closed = true
	session.mutex.Unlock()

	session.cancelWorker()
	<-session.workerDone
	return nil
}

func (session *PlaylistSession) Items() []entities.Item {
	return session.store.Items()
}

func (session *PlaylistSession) CurrentIndex() int {
	return session.store.CurrentIndex()
}

// CurrentItem returns the item under the playhead, or
// entities.ErrorPlaylistEmpty.
func (session *PlaylistSession) CurrentItem() (entities.Item, error) {
	return session.store.CurrentItem()
}

func (session *PlaylistSession) Rate() float64 {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.rate
}

func (session *PlaylistSession) IsPlaying() bool {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.playIntent
}

func (session *PlaylistSession) IsFocused() bool {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.isFocused
}

func (session *PlaylistSession) Status() entities.SlotStatus {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.status
}

func (session *PlaylistSession) ProgressInSeconds() float64 {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.progressInSeconds
}

func (session *PlaylistSession) DurationInSeconds() float64 {
	session.mutex.RLock()
	defer session.mutex.RUnlock()
	return session.durationInSeconds
}

// State returns the full projection of the current slot in one snapshot.
func (session *PlaylistSession) State() entities.PlaylistState {
	session.mutex.RLock()
	defer session.mutex.RUnlock()

	return entities.PlaylistState{
		Status:            session.status,
		ProgressInSeconds: session.progressInSeconds,
		DurationInSeconds: session.durationInSeconds,
		Rate:              session.rate,
		IsPlaying:         session.playIntent,
		IsFocused:         session.isFocused,
	}
}

// ReachedEnd signals that the current item finished at the last playlist
// index.
func (session *PlaylistSession) ReachedEnd() <-chan struct{} {
	return session.chanReachedEnd
}

// Notifications is the analytics side-channel. Delivery is non-blocking;
// a slow observer misses events rather than stalling playback.
func (session *PlaylistSession) Notifications() <-chan Notification {
	return session.chanNotifications
}

func (session *PlaylistSession) emitNotification(notification Notification) {
	select {
	case session.chanNotifications <- notification:
	default:
	}
}

// signal nudges a command channel without blocking; a pending nudge
// already covers the new one.
func signal(command chan bool) {
	select {
	case command <- true:
	default:
	}
}

// overwrite replaces any pending value on a single-slot command channel.
func overwrite(command chan float64, value float64) {
	select {
	case command <- value:
	default:
		select {
		case <-command:
		default:
		}

		select {
		case command <- value:
		default:
		}
	}
}
