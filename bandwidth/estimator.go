package bandwidth

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultAggregationWindow is how far back samples contribute to the
	// published estimate once the fast-path sample has been delivered.
	DefaultAggregationWindow = 10 * time.Second

	subscriberBufferSize = 16
)

type sample struct {
	at            time.Time
	bitsPerSecond float64
}

// Estimator ingests raw throughput samples and publishes a smoothed
// megabits-per-second estimate to subscribers. Non-positive samples and
// samples equal to the previous raw value are dropped. The very first
// non-zero sample is published immediately so consumers can size their
// buffers before the aggregation window has filled.
type Estimator struct {
	mutex sync.Mutex

	logger      zerolog.Logger
	window      time.Duration
	now         func() time.Time
	samples     []sample
	lastRaw     float64
	lastMbps    float64
	gotFirst    bool
	subscribers []chan float64
	closed      bool
}

func NewEstimator(logger zerolog.Logger) *Estimator {
	return &Estimator{
		logger: logger,
		window: DefaultAggregationWindow,
		now:    time.Now,
	}
}

// Subscribe returns a channel receiving estimate updates in Mbps. Delivery
// is non-blocking; a slow subscriber misses intermediate values and can
// always catch up through Current().
func (est *Estimator) Subscribe() <-chan float64 {
	est.mutex.Lock()
	defer est.mutex.Unlock()

	subscriber := make(chan float64, subscriberBufferSize)

	if est.closed {
		close(subscriber)
		return subscriber
	}

	est.subscribers = append(est.subscribers, subscriber)
	return subscriber
}

// Current returns the most recently published estimate in Mbps, 0 before
// any sample has been accepted.
func (est *Estimator) Current() float64 {
	est.mutex.Lock()
	defer est.mutex.Unlock()
	return est.lastMbps
}

// AddSample feeds one raw throughput observation in bits per second.
func (est *Estimator) AddSample(bitsPerSecond float64) {
	est.mutex.Lock()
	defer est.mutex.Unlock()

	if est.closed {
		return
	}

	if bitsPerSecond <= 0 || bitsPerSecond == est.lastRaw {
		return
	}

	est.lastRaw = bitsPerSecond
	now := est.now()
	est.samples = append(est.samples, sample{at: now, bitsPerSecond: bitsPerSecond})
	est.dropExpiredSamples(now)

	var mbps float64

	if !est.gotFirst {
		// Fast path: publish the first usable sample as-is.
		est.gotFirst = true
		mbps = bitsPerSecond / 1e6
	} else {
		mbps = est.windowAverage() / 1e6
	}

	if mbps == est.lastMbps {
		return
	}

	est.lastMbps = mbps
	est.logger.Debug().Float64("mbps", mbps).Msg("bandwidth estimate updated")

	for _, subscriber := range est.subscribers {
		select {
		case subscriber <- mbps:
		default:
		}
	}
}

// Close stops publishing and closes all subscriber channels.
func (est *Estimator) Close() {
	est.mutex.Lock()
	defer est.mutex.Unlock()

	if est.closed {
		return
	}

	est.closed = true

	for _, subscriber := range est.subscribers {
		close(subscriber)
	}

	est.subscribers = nil
}

func (est *Estimator) dropExpiredSamples(now time.Time) {
	cutoff := now.Add(-est.window)
	firstValid := 0

	for firstValid < len(est.samples) && est.samples[firstValid].at.Before(cutoff) {
		firstValid += 1
	}

	est.samples = est.samples[firstValid:]
}

func (est *Estimator) windowAverage() float64 {
	if len(est.samples) == 0 {
		return 0
	}

	sum := float64(0)

	for _, s := range est.samples {
		sum += s.bitsPerSecond
	}

	return sum / float64(len(est.samples))
}
