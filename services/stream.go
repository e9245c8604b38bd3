package services

import (
	"sync"

	"github.com/stray-app/api-go/models"
)

// Hub fans new comments out to live detail views. Each subscription is an
// explicitly owned resource: the caller holds the handle and must Close it
// when the view goes away, after which its channel is drained and closed.
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[uint]map[int]chan models.Comment
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[int]chan models.Comment)}
}

// Subscription delivers comments for a single report until closed.
type Subscription struct {
	C        <-chan models.Comment
	hub      *Hub
	reportID uint
	id       int
	once     sync.Once
}

// Subscribe registers a listener for new comments on reportID.
func (h *Hub) Subscribe(reportID uint) *Subscription {
	ch := make(chan models.Comment, 16)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	id := h.next
	if h.subs[reportID] == nil {
		h.subs[reportID] = make(map[int]chan models.Comment)
	}
	h.subs[reportID][id] = ch

	return &Subscription{C: ch, hub: h, reportID: reportID, id: id}
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()
		if subs := s.hub.subs[s.reportID]; subs != nil {
			if ch, ok := subs[s.id]; ok {
				delete(subs, s.id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.hub.subs, s.reportID)
			}
		}
	})
}

// Publish delivers comment to every live subscriber of reportID. Slow
// subscribers that have filled their buffer miss the event rather than
// block the writer.
func (h *Hub) Publish(reportID uint, comment models.Comment) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs[reportID] {
		select {
		case ch <- comment:
		default:
		}
	}
}

// SubscriberCount returns the number of live listeners for reportID.
func (h *Hub) SubscriberCount(reportID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[reportID])
}
