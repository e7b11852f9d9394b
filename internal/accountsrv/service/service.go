// Package service holds the in-memory account registry. It keeps a
// consistent pair of indexes over immutable Account values and applies
// updates all-or-nothing, so readers always observe a catalog that satisfies
// the model invariants.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nimbusworks/nimbus/internal/accountsrv/account"
	"github.com/nimbusworks/nimbus/internal/common/apperrors"
)

// AccountService is the read/update surface of the catalog registry.
type AccountService interface {
	// AccountByID returns the account with the given id, or nil.
	AccountByID(id int16) *account.Account

	// AccountByName returns the account with the given name, or nil.
	AccountByName(name string) *account.Account

	// AllAccounts returns a snapshot of every account, reserved account
	// included. Order is unspecified.
	AllAccounts() []*account.Account

	// UpdateAccounts applies the given accounts to the registry, replacing
	// existing accounts by id. The whole batch is validated first and applied
	// atomically: any conflict rejects every account in the batch.
	UpdateAccounts(ctx context.Context, accounts []*account.Account) apperrors.Error

	// OnAccountsUpdated registers a callback invoked after every successful
	// update with the accounts that changed. Callbacks run synchronously on
	// the updating goroutine.
	OnAccountsUpdated(fn func(updated []*account.Account))
}

type inMemService struct {
	mu        sync.RWMutex
	byID      map[int16]*account.Account
	byName    map[string]*account.Account
	listeners []func([]*account.Account)
}

var _ AccountService = (*inMemService)(nil)

// NewInMemService returns a registry seeded with the reserved unknown
// account.
func NewInMemService() AccountService {
	s := &inMemService{
		byID:   make(map[int16]*account.Account),
		byName: make(map[string]*account.Account),
	}
	s.byID[account.UnknownAccount.ID()] = account.UnknownAccount
	s.byName[account.UnknownAccount.Name()] = account.UnknownAccount
	return s
}

func (s *inMemService) AccountByID(id int16) *account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byID[id]
}

func (s *inMemService) AccountByName(name string) *account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byName[name]
}

func (s *inMemService) AllAccounts() []*account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*account.Account, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	return out
}

func (s *inMemService) UpdateAccounts(ctx context.Context, accounts []*account.Account) apperrors.Error {
	if len(accounts) == 0 {
		return ErrInvalidUpdate.Msg("update batch must not be empty")
	}
	for _, a := range accounts {
		if a == nil {
			return ErrInvalidUpdate.Msg("update batch must not contain nil accounts")
		}
	}

	s.mu.Lock()
	// validate the whole batch before touching the indexes
	seenIDs := make(map[int16]struct{}, len(accounts))
	seenNames := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if _, ok := seenIDs[a.ID()]; ok {
			s.mu.Unlock()
			return ErrUpdateConflict.Msg(fmt.Sprintf("duplicate account id %d in update batch", a.ID()))
		}
		if _, ok := seenNames[a.Name()]; ok {
			s.mu.Unlock()
			return ErrUpdateConflict.Msg(fmt.Sprintf("duplicate account name %q in update batch", a.Name()))
		}
		seenIDs[a.ID()] = struct{}{}
		seenNames[a.Name()] = struct{}{}
		if existing, ok := s.byName[a.Name()]; ok && existing.ID() != a.ID() {
			s.mu.Unlock()
			return ErrUpdateConflict.Msg(fmt.Sprintf("account name %q already belongs to account id %d", a.Name(), existing.ID()))
		}
	}
	for _, a := range accounts {
		if existing, ok := s.byID[a.ID()]; ok {
			delete(s.byName, existing.Name())
		}
		s.byID[a.ID()] = a
		s.byName[a.Name()] = a
	}
	listeners := make([]func([]*account.Account), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	log.Info().Int("count", len(accounts)).Msg("updated accounts")
	for _, fn := range listeners {
		fn(accounts)
	}
	return nil
}

func (s *inMemService) OnAccountsUpdated(fn func(updated []*account.Account)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
