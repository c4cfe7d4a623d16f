// Package memory provides in-process repositories used when no database is
// configured. State lives only as long as the process; the snapshot store
// covers lot state, but permits and users granted here do not survive a
// restart unless re-seeded.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"parking_system_go/internal/domain"
	"parking_system_go/internal/repository"
)

type PermitStore struct {
	mu     sync.RWMutex
	plates map[string]struct{}
}

func NewPermitStore(seed ...string) *PermitStore {
	s := &PermitStore{plates: make(map[string]struct{})}
	for _, plate := range seed {
		if p := domain.NormalizePlate(plate); p != "" {
			s.plates[p] = struct{}{}
		}
	}
	return s
}

var _ repository.PermitRepository = (*PermitStore)(nil)

func (s *PermitStore) Grant(_ context.Context, plate string) error {
	p := domain.NormalizePlate(plate)
	if p == "" {
		return domain.ErrEmptyPlate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plates[p]; ok {
		return repository.ErrDuplicateEntry
	}
	s.plates[p] = struct{}{}
	return nil
}

func (s *PermitStore) Revoke(_ context.Context, plate string) error {
	p := domain.NormalizePlate(plate)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plates[p]; !ok {
		return repository.ErrNotFound
	}
	delete(s.plates, p)
	return nil
}

func (s *PermitStore) Has(_ context.Context, plate string) (bool, error) {
	p := domain.NormalizePlate(plate)
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.plates[p]
	return ok, nil
}

func (s *PermitStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plates := make([]string, 0, len(s.plates))
	for p := range s.plates {
		plates = append(plates, p)
	}
	sort.Strings(plates)
	return plates, nil
}

type UserStore struct {
	mu     sync.RWMutex
	nextID int
	byName map[string]*domain.User
	byID   map[int]*domain.User
}

func NewUserStore() *UserStore {
	return &UserStore{
		nextID: 1,
		byName: make(map[string]*domain.User),
		byID:   make(map[int]*domain.User),
	}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[user.Username]; ok {
		return nil, repository.ErrDuplicateEntry
	}
	now := time.Now().UTC()
	stored := *user
	stored.ID = s.nextID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.nextID++
	s.byName[stored.Username] = &stored
	s.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *UserStore) FindByID(_ context.Context, id int) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}
