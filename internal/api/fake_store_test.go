package api

import (
	"context"
	"errors"
	"sync"

	"fake-auth/internal/database"
	"fake-auth/internal/identifier"
	"fake-auth/internal/models"
)

// fakeStore is an in-memory Store. Writes made inside ExecTx are staged and
// only applied when the callback succeeds.
type fakeStore struct {
	mu     sync.Mutex
	users  map[identifier.UserID]models.User
	tokens map[identifier.Token]models.Token
	calls  int

	lookupErr      error
	tokenLookupErr error
	createTokenErr error
	pingErr        error
	// authCodeMiss makes SetUserAuthCode report that no row was updated.
	authCodeMiss bool
}

func newFakeStore(users ...models.User) *fakeStore {
	s := &fakeStore{
		users:  make(map[identifier.UserID]models.User),
		tokens: make(map[identifier.Token]models.Token),
	}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) GetUserByID(_ context.Context, id identifier.UserID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *fakeStore) GetUsersByToken(_ context.Context, token identifier.Token) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.tokenLookupErr != nil {
		return nil, s.tokenLookupErr
	}
	t, ok := s.tokens[token]
	if !ok {
		return []models.User{}, nil
	}
	u := s.users[t.UserID]
	u.AuthCode = nil
	return []models.User{u}, nil
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(database.Querier) error) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	tx := &fakeTx{store: s, authCodes: map[identifier.UserID][]byte{}}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, code := range tx.authCodes {
		u := s.users[id]
		u.AuthCode = code
		s.users[id] = u
	}
	for _, t := range tx.tokens {
		s.tokens[t.Token] = t
	}
	return nil
}

func (s *fakeStore) Ping(context.Context) error {
	return s.pingErr
}

func (s *fakeStore) tokenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

func (s *fakeStore) user(id identifier.UserID) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fakeTx struct {
	store     *fakeStore
	authCodes map[identifier.UserID][]byte
	tokens    []models.Token
}

func (tx *fakeTx) GetUserByID(ctx context.Context, id identifier.UserID) (*models.User, error) {
	return tx.store.GetUserByID(ctx, id)
}

func (tx *fakeTx) GetUsersByToken(ctx context.Context, token identifier.Token) ([]models.User, error) {
	return tx.store.GetUsersByToken(ctx, token)
}

func (tx *fakeTx) SetUserAuthCode(_ context.Context, id identifier.UserID, authCode []byte) (bool, error) {
	tx.store.mu.Lock()
	_, ok := tx.store.users[id]
	tx.store.mu.Unlock()
	if !ok || tx.store.authCodeMiss {
		return false, nil
	}
	tx.authCodes[id] = authCode
	return true, nil
}

func (tx *fakeTx) CreateToken(_ context.Context, token *models.Token) error {
	if tx.store.createTokenErr != nil {
		return tx.store.createTokenErr
	}
	tx.store.mu.Lock()
	_, exists := tx.store.tokens[token.Token]
	tx.store.mu.Unlock()
	if exists {
		return database.ErrTokenExists
	}
	tx.tokens = append(tx.tokens, *token)
	return nil
}

func (tx *fakeTx) InsertUsers(context.Context, []models.User) (int64, error) {
	return 0, errors.New("not supported")
}
