package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Persons hold pointers and an address slice, so every value crossing the
// store boundary goes through Person.Clone.

func (s *Store) CreatePerson(_ context.Context, input types.PersonCreate) (types.Person, error) {
	s.persons.mu.Lock()
	defer s.persons.mu.Unlock()

	person := input.Record(s.newID(), s.nowFn(), s.newID)
	s.persons.put(person.ID, person)
	return person.Clone(), nil
}

func (s *Store) GetPersonByID(_ context.Context, id uuid.UUID) (types.Person, error) {
	s.persons.mu.RLock()
	defer s.persons.mu.RUnlock()

	person, ok := s.persons.get(id)
	if !ok {
		return types.Person{}, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	return person.Clone(), nil
}

func (s *Store) GetPersons(_ context.Context, filter types.PersonFilter) ([]types.Person, error) {
	s.persons.mu.RLock()
	defer s.persons.mu.RUnlock()

	return s.persons.filter(filter.Match, types.Person.Clone), nil
}

func (s *Store) UpdatePersonByID(_ context.Context, id uuid.UUID, patch types.PersonUpdate) (types.Person, error) {
	s.persons.mu.Lock()
	defer s.persons.mu.Unlock()

	current, ok := s.persons.get(id)
	if !ok {
		return types.Person{}, fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}

	person := current.Clone()
	patch.ApplyTo(&person, s.newID)
	person.UpdatedAt = s.touch(current.UpdatedAt)
	s.persons.put(id, person)
	return person.Clone(), nil
}

func (s *Store) DeletePersonByID(_ context.Context, id uuid.UUID) error {
	s.persons.mu.Lock()
	defer s.persons.mu.Unlock()

	if !s.persons.remove(id) {
		return fmt.Errorf("person %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
