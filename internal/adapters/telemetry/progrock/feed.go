package progrock

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

// Feed is a progrock.Writer that queues status updates for a single reader,
// such as the terminal dashboard. Updates written while the feed is not open
// are dropped.
type Feed struct {
	mu     sync.Mutex
	cond   *sync.Cond
	open   bool
	queue  []*progrock.StatusUpdate
	closed bool
}

// NewFeed creates a closed Feed.
func NewFeed() *Feed {
	f := &Feed{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Open starts queueing updates and discards anything left from a previous session.
func (f *Feed) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = true
	f.closed = false
	f.queue = nil
}

// Stop ends the current session. Read drains what is queued and then returns io.EOF.
func (f *Feed) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.open = false
	f.closed = true
	f.cond.Broadcast()
}

// WriteStatus queues update when the feed is open.
func (f *Feed) WriteStatus(update *progrock.StatusUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open {
		return nil
	}
	f.queue = append(f.queue, update)
	f.cond.Signal()
	return nil
}

// Read blocks until an update is queued or the session is stopped.
func (f *Feed) Read() (*progrock.StatusUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queue) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return nil, io.EOF
	}
	update := f.queue[0]
	f.queue[0] = nil
	f.queue = f.queue[1:]
	return update, nil
}

// Close stops the feed.
func (f *Feed) Close() error {
	f.Stop()
	return nil
}
