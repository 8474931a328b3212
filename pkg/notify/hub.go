package notify

import (
	"context"
	"sync"
)

// Hub fans notifications out to subscribers. Sends are non-blocking: when a
// subscriber's buffer is full the message is dropped for that subscriber so
// the request path never stalls on a slow UI consumer.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Message]struct{}
	bufferSize  int
	closed      bool
	cleanupWg   sync.WaitGroup
}

// NewHub creates a hub whose subscribers buffer up to bufferSize messages.
// A minimum buffer of 1 is enforced to keep sends non-blocking.
func NewHub(bufferSize int) *Hub {
	return &Hub{
		subscribers: make(map[chan Message]struct{}),
		bufferSize:  max(bufferSize, 1),
	}
}

// Subscribe registers a new receiver. The subscription is removed and its
// channel closed when ctx is cancelled or the hub is closed.
func (h *Hub) Subscribe(ctx context.Context) <-chan Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Message, h.bufferSize)
	if h.closed {
		close(ch)
		return ch
	}

	h.subscribers[ch] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			<-ctx.Done()
			h.unsubscribe(ch)
		}()
	}

	return ch
}

// Success publishes a success notification.
func (h *Hub) Success(text string) { h.publish(Message{Level: LevelSuccess, Text: text}) }

// Info publishes an informational notification.
func (h *Hub) Info(text string) { h.publish(Message{Level: LevelInfo, Text: text}) }

// Error publishes an error notification.
func (h *Hub) Error(text string) { h.publish(Message{Level: LevelError, Text: text}) }

func (h *Hub) publish(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}

	for ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			// Full buffer means a stalled consumer; drop instead of blocking.
		}
	}
}

// Close shuts the hub down and closes all subscriber channels. Safe to call
// multiple times.
func (h *Hub) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}

	h.closed = true
	for ch := range h.subscribers {
		close(ch)
	}
	clear(h.subscribers)
	h.mu.Unlock()

	h.cleanupWg.Wait()
	return nil
}

func (h *Hub) unsubscribe(ch chan Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.subscribers[ch]; !exists {
		return
	}
	delete(h.subscribers, ch)
	close(ch)
}
