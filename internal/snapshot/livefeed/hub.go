// Package livefeed fans committed pricing snapshots out to subscribers.
// Streams are keyed by enquiry ID; each keeps a small replay buffer so a
// late subscriber sees recent history, and slow subscribers drop events
// instead of blocking the publisher.
package livefeed

import (
	"errors"
	"strings"
	"sync"
	"time"

	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

const (
	DefaultBufferSize       = 20
	DefaultSubscriberBuffer = 16
)

type SnapshotEvent struct {
	EnquiryID string                         `json:"enquiry_id"`
	Version   int64                          `json:"version"`
	Snapshot  *pricingdomain.PricingSnapshot `json:"snapshot"`
	UpdatedAt time.Time                      `json:"updated_at"`
}

type Hub struct {
	mu               sync.RWMutex
	streams          map[string]*stream
	bufferSize       int
	subscriberBuffer int
}

type stream struct {
	mu     sync.Mutex
	buffer []SnapshotEvent
	subs   map[uint64]chan SnapshotEvent
	nextID uint64
}

type Subscription struct {
	hub       *Hub
	enquiryID string
	id        uint64
	ch        chan SnapshotEvent
	once      sync.Once
}

func NewHub() *Hub {
	return &Hub{
		streams:          make(map[string]*stream),
		bufferSize:       DefaultBufferSize,
		subscriberBuffer: DefaultSubscriberBuffer,
	}
}

func (h *Hub) Publish(enquiryID string, event SnapshotEvent) {
	if h == nil {
		return
	}
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return
	}
	h.mu.RLock()
	stream := h.streams[key]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	stream.buffer = append(stream.buffer, event)
	if len(stream.buffer) > h.bufferSize {
		stream.buffer = stream.buffer[len(stream.buffer)-h.bufferSize:]
	}
	subs := make([]chan SnapshotEvent, 0, len(stream.subs))
	for _, ch := range stream.subs {
		subs = append(subs, ch)
	}
	stream.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) Subscribe(enquiryID string) (*Subscription, []SnapshotEvent, error) {
	if h == nil {
		return nil, nil, errors.New("hub_unavailable")
	}
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return nil, nil, errors.New("invalid_enquiry_id")
	}

	stream := h.ensureStream(key)
	stream.mu.Lock()
	if stream.subs == nil {
		stream.subs = make(map[uint64]chan SnapshotEvent)
	}
	id := stream.nextID
	stream.nextID++
	ch := make(chan SnapshotEvent, h.subscriberBuffer)
	stream.subs[id] = ch
	buffer := append([]SnapshotEvent(nil), stream.buffer...)
	stream.mu.Unlock()

	return &Subscription{
		hub:       h,
		enquiryID: key,
		id:        id,
		ch:        ch,
	}, buffer, nil
}

func (h *Hub) ensureStream(enquiryID string) *stream {
	h.mu.RLock()
	current := h.streams[enquiryID]
	h.mu.RUnlock()
	if current != nil {
		return current
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	current = h.streams[enquiryID]
	if current == nil {
		current = &stream{subs: make(map[uint64]chan SnapshotEvent)}
		h.streams[enquiryID] = current
	}
	return current
}

func (h *Hub) unsubscribe(enquiryID string, id uint64) {
	if h == nil {
		return
	}
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return
	}

	h.mu.RLock()
	stream := h.streams[key]
	h.mu.RUnlock()
	if stream == nil {
		return
	}

	stream.mu.Lock()
	delete(stream.subs, id)
	remaining := len(stream.subs)
	stream.mu.Unlock()
	if remaining != 0 {
		return
	}

	h.mu.Lock()
	current := h.streams[key]
	if current != stream {
		h.mu.Unlock()
		return
	}
	stream.mu.Lock()
	empty := len(stream.subs) == 0
	stream.mu.Unlock()
	if empty {
		delete(h.streams, key)
	}
	h.mu.Unlock()
}

func (s *Subscription) Events() <-chan SnapshotEvent {
	if s == nil {
		return nil
	}
	return s.ch
}

func (s *Subscription) Close() {
	if s == nil || s.hub == nil {
		return
	}
	s.once.Do(func() {
		s.hub.unsubscribe(s.enquiryID, s.id)
	})
}
