package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/freightops/loadmatch/core/model"
	"github.com/freightops/loadmatch/core/outreach"
)

// MemoryStore is an in-memory implementation of the engine's storage
// interfaces, used for tests and fixture-driven demos.
type MemoryStore struct {
	mu       sync.RWMutex
	carriers map[int64]model.Carrier
	loads    map[int64]model.Load
	lanes    map[laneKey]bool
	bonuses  map[laneKey]float64

	messages   map[int64]*outreach.Message
	recipients map[int64]*outreach.Recipient
	nextMsg    int64
	nextRec    int64
}

type laneKey struct {
	owner int64
	lane  model.Lane
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carriers:   make(map[int64]model.Carrier),
		loads:      make(map[int64]model.Load),
		lanes:      make(map[laneKey]bool),
		bonuses:    make(map[laneKey]float64),
		messages:   make(map[int64]*outreach.Message),
		recipients: make(map[int64]*outreach.Recipient),
	}
}

// AddCarrier registers a carrier fixture.
func (s *MemoryStore) AddCarrier(c model.Carrier) {
	s.mu.Lock()
	s.carriers[c.ID] = c
	s.mu.Unlock()
}

// AddLoad registers a load fixture.
func (s *MemoryStore) AddLoad(l model.Load) {
	s.mu.Lock()
	s.loads[l.ID] = l
	s.mu.Unlock()
}

// SetPreferredLane declares a carrier lane preference.
func (s *MemoryStore) SetPreferredLane(carrierID int64, lane model.Lane) {
	s.mu.Lock()
	s.lanes[laneKey{carrierID, lane}] = true
	s.mu.Unlock()
}

// SetShipperBonus declares a shipper bonus for a lane.
func (s *MemoryStore) SetShipperBonus(shipperID int64, lane model.Lane, bonus float64) {
	s.mu.Lock()
	s.bonuses[laneKey{shipperID, lane}] = bonus
	s.mu.Unlock()
}

// CarrierPool implements matching.CarrierSource. Carriers are returned in
// id order so pool iteration is deterministic.
func (s *MemoryStore) CarrierPool(_ context.Context, _ model.Load) ([]model.Carrier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Carrier, 0, len(s.carriers))
	for _, c := range s.carriers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// HasPreferredLane implements matching.LaneSource.
func (s *MemoryStore) HasPreferredLane(_ context.Context, carrierID int64, lane model.Lane) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lanes[laneKey{carrierID, lane}], nil
}

// ShipperBonus implements matching.LaneSource.
func (s *MemoryStore) ShipperBonus(_ context.Context, shipperID int64, lane model.Lane) (*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bonuses[laneKey{shipperID, lane}]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

// Load implements outreach.LoadSource.
func (s *MemoryStore) Load(_ context.Context, id int64) (model.Load, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.loads[id]
	if !ok {
		return model.Load{}, outreach.ErrLoadNotFound
	}
	return l, nil
}

// CreateMessage implements outreach.Store.
func (s *MemoryStore) CreateMessage(_ context.Context, m *outreach.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMsg++
	m.ID = s.nextMsg
	cp := *m
	s.messages[m.ID] = &cp
	return nil
}

// CreateRecipients implements outreach.Store.
func (s *MemoryStore) CreateRecipients(_ context.Context, recipients []*outreach.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range recipients {
		s.nextRec++
		r.ID = s.nextRec
		cp := *r
		s.recipients[r.ID] = &cp
	}
	return nil
}

// UpdateRecipient implements outreach.Store.
func (s *MemoryStore) UpdateRecipient(_ context.Context, id int64, status outreach.RecipientStatus, errText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.recipients[id]
	if !ok {
		return fmt.Errorf("recipient %d not found", id)
	}
	r.Status = status
	r.Error = errText
	return nil
}

// UpdateMessageStatus implements outreach.Store.
func (s *MemoryStore) UpdateMessageStatus(_ context.Context, id int64, status outreach.MessageStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return fmt.Errorf("message %d not found", id)
	}
	m.Status = status
	return nil
}

// Message implements outreach.Store.
func (s *MemoryStore) Message(_ context.Context, id int64) (outreach.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.messages[id]
	if !ok {
		return outreach.Message{}, fmt.Errorf("message %d not found", id)
	}
	return *m, nil
}

// Recipients implements outreach.Store.
func (s *MemoryStore) Recipients(_ context.Context, messageID int64) ([]outreach.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []outreach.Recipient
	for id := int64(1); id <= s.nextRec; id++ {
		if r, ok := s.recipients[id]; ok && r.MessageID == messageID {
			out = append(out, *r)
		}
	}
	return out, nil
}
