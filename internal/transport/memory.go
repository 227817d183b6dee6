package transport

import (
	"context"
	"sync"

	cclinkerrors "github.com/johnzilla/cclink/internal/errors"
)

// InMemoryStore is a Store backed by a process-local map, one packet per
// identity. It stands in for the Mainline DHT in tests and local
// development.
type InMemoryStore struct {
	mu      sync.Mutex
	packets map[string]*StoredPacket
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{packets: make(map[string]*StoredPacket)}
}

func (s *InMemoryStore) Get(_ context.Context, pubkeyZ32 string) (*StoredPacket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pkt, ok := s.packets[pubkeyZ32]
	if !ok {
		return nil, cclinkerrors.ErrRecordNotFound
	}
	return clonePacket(pkt), nil
}

func (s *InMemoryStore) Put(_ context.Context, pubkeyZ32 string, pkt *StoredPacket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.packets[pubkeyZ32]; ok && pkt.Timestamp <= existing.Timestamp {
		return cclinkerrors.ErrStaleCAS
	}
	s.packets[pubkeyZ32] = clonePacket(pkt)
	return nil
}

func clonePacket(pkt *StoredPacket) *StoredPacket {
	cp := *pkt
	cp.Wire = append([]byte(nil), pkt.Wire...)
	cp.Signature = append([]byte(nil), pkt.Signature...)
	return &cp
}
