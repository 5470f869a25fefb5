package job

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/petermattis/goid"
	"go.uber.org/atomic"

	"github.com/iotaledger/hive.go/log"
	"github.com/iotaledger/hive.go/runtime/options"
	"github.com/iotaledger/hive.go/runtime/syncutils"
)

// Job periodically executes a function that is bound to a context.
//
// A Job is inert after its creation. Start arms a repeating ticker that executes the function for the first time
// after one full interval. Stop disarms the ticker. A Job can be started and stopped repeatedly.
type Job[C any] struct {
	// context is passed to every execution of fn.
	context C

	// fn is the function that is executed periodically.
	fn func(context C)

	// interval is the period of the Job.
	interval time.Duration

	// clock is the source of the ticker.
	clock clock.Clock

	// logger is used to report panicking executions (optional).
	logger log.Logger

	// handle is the live ticker of a started Job (nil if the Job is stopped).
	handle *handle

	// mutex is used to synchronize Start and Stop.
	mutex syncutils.Mutex
}

// New creates a new Job that executes fn with the given context every interval.
func New[C any](context C, fn func(context C), interval time.Duration, opts ...options.Option[Job[C]]) *Job[C] {
	return options.Apply(&Job[C]{
		context:  context,
		fn:       fn,
		interval: interval,
		clock:    clock.New(),
	}, opts)
}

// Start arms the Job. Starting a started Job has no effect.
func (j *Job[C]) Start() {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	if j.handle != nil {
		return
	}

	j.handle = newHandle(j.clock.Ticker(j.interval))

	j.handle.wg.Add(1)
	go j.run(j.handle)
}

// Stop disarms the Job and waits for a running execution to finish. It is safe to call Stop on a Job that was
// never started or that was stopped already. Called from within the executed function, Stop returns without waiting.
func (j *Job[C]) Stop() {
	j.mutex.Lock()
	h := j.handle
	j.handle = nil
	j.mutex.Unlock()

	if h == nil {
		return
	}

	h.release()
}

// IsRunning returns true if the Job is started.
func (j *Job[C]) IsRunning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()

	return j.handle != nil
}

// Interval returns the period of the Job.
func (j *Job[C]) Interval() time.Duration {
	return j.interval
}

func (j *Job[C]) run(h *handle) {
	defer h.wg.Done()

	h.goroutineID.Store(goid.Get())

	for {
		select {
		case <-h.ticker.C:
			j.execute()
		case <-h.stop:
			return
		}
	}
}

func (j *Job[C]) execute() {
	defer func() {
		if r := recover(); r != nil && j.logger != nil {
			j.logger.LogError("job execution panicked", "interval", j.interval, "panic", r)
		}
	}()

	j.fn(j.context)
}

// handle owns the ticker of a started Job.
type handle struct {
	ticker *clock.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup

	// goroutineID identifies the goroutine that executes the Job.
	goroutineID atomic.Int64
}

func newHandle(ticker *clock.Ticker) *handle {
	return &handle{
		ticker: ticker,
		stop:   make(chan struct{}),
	}
}

func (h *handle) release() {
	h.ticker.Stop()
	close(h.stop)

	if goid.Get() == h.goroutineID.Load() {
		return
	}

	h.wg.Wait()
}

// WithClock sets the clock that drives the Job.
func WithClock[C any](clock clock.Clock) options.Option[Job[C]] {
	return func(j *Job[C]) {
		j.clock = clock
	}
}

// WithLogger sets the logger that reports panicking executions.
func WithLogger[C any](logger log.Logger) options.Option[Job[C]] {
	return func(j *Job[C]) {
		j.logger = logger
	}
}
