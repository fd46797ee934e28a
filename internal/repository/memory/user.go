package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/identity-server/internal/model"
)

var (
	_ model.UserStore          = (*UserRepository)(nil)
	_ model.ActiveSessionStore = (*UserRepository)(nil)
)

// snapshot is the persisted document. The key index is rebuilt on load.
type snapshot struct {
	Users          []model.User      `json:"users"`
	ActiveSessions map[string]string `json:"active_sessions"`
}

type state struct {
	users  map[uuid.UUID]model.User
	index  map[string]uuid.UUID
	active map[string]string
}

func (s state) clone() state {
	return state{
		users:  maps.Clone(s.users),
		index:  maps.Clone(s.index),
		active: maps.Clone(s.active),
	}
}

// UserRepository keeps one canonical record per user ID and a secondary
// index from email/mobile keys to IDs. Every mutation is applied to a copy,
// written as a full snapshot and only then swapped in, so a failed write
// leaves both the memory state and the snapshot untouched.
type UserRepository struct {
	mu        sync.RWMutex
	state     state
	snapshots model.SnapshotStore
}

// OpenUserRepository loads the collection from snapshots.
func OpenUserRepository(ctx context.Context, snapshots model.SnapshotStore) (*UserRepository, error) {
	r := &UserRepository{
		state: state{
			users:  make(map[uuid.UUID]model.User),
			index:  make(map[string]uuid.UUID),
			active: make(map[string]string),
		},
		snapshots: snapshots,
	}

	data, err := snapshots.Load(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return r, nil
	}
	if err != nil {
		return nil, model.NewStorageError("load snapshot", err)
	}

	var doc snapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, model.NewStorageError("decode snapshot", err)
	}

	for _, u := range doc.Users {
		if _, ok := r.state.users[u.ID]; ok {
			return nil, model.NewStorageError("decode snapshot", fmt.Errorf("duplicate user id %s", u.ID))
		}
		for _, key := range u.Keys() {
			if owner, ok := r.state.index[key]; ok && owner != u.ID {
				return nil, model.NewStorageError("decode snapshot", fmt.Errorf("key %q owned by %s and %s", key, owner, u.ID))
			}
			r.state.index[key] = u.ID
		}
		r.state.users[u.ID] = u
	}
	for client, token := range doc.ActiveSessions {
		r.state.active[client] = token
	}

	return r, nil
}

// GetByKey resolves an email or mobile to its user.
func (r *UserRepository) GetByKey(_ context.Context, key string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.state.index[model.NormalizeKey(key)]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return r.state.users[id], nil
}

// GetByID returns the user with id.
func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.state.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

// Count returns the number of stored users.
func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.state.users), nil
}

// Insert stores a new user under its ID, email and mobile.
func (r *UserRepository) Insert(ctx context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.users[user.ID]; ok {
		return model.User{}, model.ErrDuplicateIdentity
	}
	for _, key := range user.Keys() {
		if _, ok := r.state.index[key]; ok {
			return model.User{}, model.ErrDuplicateIdentity
		}
	}

	next := r.state.clone()
	next.users[user.ID] = user
	for _, key := range user.Keys() {
		next.index[key] = user.ID
	}

	if err := r.commit(ctx, next); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Update applies mutate to the user with id and re-indexes both keys.
// The mutator cannot change the ID; a mutation that moves a key onto
// another user's key fails with model.ErrDuplicateIdentity.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*model.User) error) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.state.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}

	updated := current
	if err := mutate(&updated); err != nil {
		return model.User{}, err
	}
	updated.ID = id

	next := r.state.clone()
	for _, key := range current.Keys() {
		delete(next.index, key)
	}
	for _, key := range updated.Keys() {
		if owner, ok := next.index[key]; ok && owner != id {
			return model.User{}, model.ErrDuplicateIdentity
		}
		next.index[key] = id
	}
	next.users[id] = updated

	if err := r.commit(ctx, next); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// GetActive returns the remembered session token of clientID.
func (r *UserRepository) GetActive(_ context.Context, clientID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.state.active[clientID]
	if !ok {
		return "", model.ErrNotFound
	}
	return token, nil
}

// SetActive remembers token as the current session of clientID.
func (r *UserRepository) SetActive(ctx context.Context, clientID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.state.clone()
	next.active[clientID] = token
	return r.commit(ctx, next)
}

// ClearActive forgets the current session of clientID.
func (r *UserRepository) ClearActive(ctx context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.active[clientID]; !ok {
		return nil
	}
	next := r.state.clone()
	delete(next.active, clientID)
	return r.commit(ctx, next)
}

// commit persists next and swaps it in. Callers hold r.mu.
func (r *UserRepository) commit(ctx context.Context, next state) error {
	doc := snapshot{
		Users:          make([]model.User, 0, len(next.users)),
		ActiveSessions: next.active,
	}
	for _, u := range next.users {
		doc.Users = append(doc.Users, u)
	}
	slices.SortFunc(doc.Users, func(a, b model.User) int {
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	data, err := json.Marshal(doc)
	if err != nil {
		return model.NewStorageError("encode snapshot", err)
	}
	if err := r.snapshots.Save(ctx, data); err != nil {
		return model.NewStorageError("save snapshot", err)
	}

	r.state = next
	return nil
}
