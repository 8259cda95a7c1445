package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const subscriberBuffer = 64

// LocalBus fans changes out to in-process subscribers. It is used when no
// Redis is configured, which only works for a single instance.
type LocalBus struct {
	log zerolog.Logger

	mu     sync.RWMutex
	subs   map[chan Change]struct{}
	closed bool
}

func NewLocalBus(log zerolog.Logger) *LocalBus {
	return &LocalBus{
		log:  log.With().Str("component", "notify").Logger(),
		subs: make(map[chan Change]struct{}),
	}
}

var _ Bus = (*LocalBus)(nil)

func (b *LocalBus) Publish(_ context.Context, c Change) {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subs {
		select {
		case ch <- c:
		default:
			b.log.Warn().Str("topic", c.Topic).Msg("subscriber slow, dropping change")
		}
	}
}

// Subscribe returns a channel that is closed when ctx ends or the bus closes.
func (b *LocalBus) Subscribe(ctx context.Context) <-chan Change {
	ch := make(chan Change, subscriberBuffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.remove(ch)
	}()

	return ch
}

func (b *LocalBus) remove(ch chan Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
}

func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	return nil
}
