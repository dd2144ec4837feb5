package conversation

import (
	"sync"
	"time"
)

// Exchange is one user message paired with the assistant's reply.
type Exchange struct {
	User string
	AI   string
}

// Buffer holds the ordered exchanges of a single session for use as model
// context. It is rebuilt from the durable message log on cache miss and is
// safe for concurrent use: requests on the same session share one buffer.
type Buffer struct {
	Start time.Time

	mu        sync.Mutex
	exchanges []Exchange
}

func NewBuffer(start time.Time) *Buffer {
	return &Buffer{Start: start}
}

// Append records one exchange at the end of the buffer.
func (b *Buffer) Append(userText, aiText string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exchanges = append(b.exchanges, Exchange{User: userText, AI: aiText})
}

// Len returns the number of stored exchanges.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.exchanges)
}

// Window returns a copy of the most recent k exchanges. k <= 0 returns
// everything.
func (b *Buffer) Window(k int) []Exchange {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := len(b.exchanges)
	if k <= 0 || n < k {
		k = n
	}
	out := make([]Exchange, k)
	copy(out, b.exchanges[n-k:])
	return out
}
