package radio

import (
	"math/rand"
	"sort"
	"sync"

	"chainspace.io/radiochain/internal/log"
	"chainspace.io/radiochain/internal/log/fld"
)

// HubConfig controls how unreliable an in-memory Hub is.
type HubConfig struct {
	Drop       float64
	Duplicate  float64
	MaxPayload int
	Reorder    bool
	Seed       int64
}

type delivery struct {
	pkt Packet
	to  int32
}

// Hub is an in-memory broadcast medium connecting a set of stations. Packets
// are queued on transmission and only delivered when the hub is stepped, which
// keeps simulations deterministic for a given seed.
type Hub struct {
	cfg      HubConfig
	mu       sync.Mutex
	queue    []delivery
	rand     *rand.Rand
	stations map[int32]*Station
}

// Station is a device attached to a Hub.
type Station struct {
	handler Handler
	hub     *Hub
	id      int32
	mu      sync.RWMutex
}

// ID returns the identity of the station.
func (s *Station) ID() int32 {
	return s.id
}

// Listen sets the handler for packets delivered to the station.
func (s *Station) Listen(handler Handler) {
	s.mu.Lock()
	s.handler = handler
	s.mu.Unlock()
}

// Transmit queues the payload for delivery to every other station on the hub.
func (s *Station) Transmit(payload []byte) error {
	return s.hub.transmit(s.id, payload)
}

func (s *Station) deliver(pkt Packet) {
	s.mu.RLock()
	handler := s.handler
	s.mu.RUnlock()
	if handler != nil {
		handler(pkt)
	}
}

// Flush delivers queued packets until either none remain or the given number
// of deliveries have been made. Packets transmitted by handlers during the
// flush are delivered too. A non-positive limit means no limit. It returns the
// number of packets delivered.
func (h *Hub) Flush(limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		if !h.Step() {
			break
		}
		n++
	}
	return n
}

// Join attaches a station with the given identity to the hub. Joining with an
// identity that is already attached returns the existing station.
func (h *Hub) Join(id int32) *Station {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.stations[id]; ok {
		return s
	}
	s := &Station{hub: h, id: id}
	h.stations[id] = s
	return s
}

// Pending returns the number of queued deliveries.
func (h *Hub) Pending() int {
	h.mu.Lock()
	n := len(h.queue)
	h.mu.Unlock()
	return n
}

// Step delivers a single queued packet, picked at random if the hub reorders
// packets and otherwise in transmission order. It returns false if there was
// nothing to deliver.
func (h *Hub) Step() bool {
	h.mu.Lock()
	if len(h.queue) == 0 {
		h.mu.Unlock()
		return false
	}
	idx := 0
	if h.cfg.Reorder {
		idx = h.rand.Intn(len(h.queue))
	}
	d := h.queue[idx]
	copy(h.queue[idx:], h.queue[idx+1:])
	h.queue = h.queue[:len(h.queue)-1]
	s := h.stations[d.to]
	h.mu.Unlock()
	s.deliver(d.pkt)
	return true
}

func (h *Hub) transmit(sender int32, payload []byte) error {
	if err := CheckPayload(payload, h.cfg.MaxPayload); err != nil {
		log.Error("Dropping oversized packet", fld.NodeID(sender), fld.Size(len(payload)), fld.PayloadLimit(h.cfg.MaxPayload))
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]int32, 0, len(h.stations))
	for id := range h.stations {
		if id != sender {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if h.cfg.Drop > 0 && h.rand.Float64() < h.cfg.Drop {
			continue
		}
		copies := 1
		if h.cfg.Duplicate > 0 && h.rand.Float64() < h.cfg.Duplicate {
			copies = 2
		}
		for i := 0; i < copies; i++ {
			buf := make([]byte, len(payload))
			copy(buf, payload)
			h.queue = append(h.queue, delivery{Packet{sender, buf}, id})
		}
	}
	return nil
}

// NewHub returns an empty hub with the given reliability settings.
func NewHub(cfg HubConfig) *Hub {
	return &Hub{
		cfg:      cfg,
		rand:     rand.New(rand.NewSource(cfg.Seed)),
		stations: map[int32]*Station{},
	}
}
