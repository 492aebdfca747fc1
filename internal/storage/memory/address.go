package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

func (s *Store) CreateAddress(_ context.Context, input types.AddressCreate) (types.Address, error) {
	s.addresses.mu.Lock()
	defer s.addresses.mu.Unlock()

	id := s.newID()
	if input.ID != nil {
		id = *input.ID
	}
	if s.addresses.has(id) {
		return types.Address{}, fmt.Errorf("address %s already exists: %w", id, storage.ErrDuplicateID)
	}

	address := input.Record(id, s.nowFn())
	s.addresses.put(id, address)
	return address, nil
}

func (s *Store) GetAddressByID(_ context.Context, id uuid.UUID) (types.Address, error) {
	s.addresses.mu.RLock()
	defer s.addresses.mu.RUnlock()

	address, ok := s.addresses.get(id)
	if !ok {
		return types.Address{}, fmt.Errorf("address %s: %w", id, storage.ErrNotFound)
	}
	return address, nil
}

func (s *Store) GetAddresses(_ context.Context, filter types.AddressFilter) ([]types.Address, error) {
	s.addresses.mu.RLock()
	defer s.addresses.mu.RUnlock()

	return s.addresses.filter(filter.Match, identity[types.Address]), nil
}

func (s *Store) UpdateAddressByID(_ context.Context, id uuid.UUID, patch types.AddressUpdate) (types.Address, error) {
	s.addresses.mu.Lock()
	defer s.addresses.mu.Unlock()

	address, ok := s.addresses.get(id)
	if !ok {
		return types.Address{}, fmt.Errorf("address %s: %w", id, storage.ErrNotFound)
	}

	patch.ApplyTo(&address)
	address.UpdatedAt = s.touch(address.UpdatedAt)
	s.addresses.put(id, address)
	return address, nil
}

func (s *Store) DeleteAddressByID(_ context.Context, id uuid.UUID) error {
	s.addresses.mu.Lock()
	defer s.addresses.mu.Unlock()

	if !s.addresses.remove(id) {
		return fmt.Errorf("address %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
