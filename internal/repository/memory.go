package repository

import (
	"context"
	"sync"

	"github.com/ectopass/vault/internal/model"
)

// MemoryVaultStore implements VaultStore on a mutex-guarded map with the same
// conflict semantics as the Mongo store. It backs tests and development runs
// without a database; nothing survives a restart.
type MemoryVaultStore struct {
	mu     sync.RWMutex
	vaults map[string]*model.OwnerVault // keyed by owner id
}

// NewMemoryVaultStore creates an empty in-memory store.
func NewMemoryVaultStore() *MemoryVaultStore {
	return &MemoryVaultStore{vaults: make(map[string]*model.OwnerVault)}
}

func (s *MemoryVaultStore) FindByOwner(_ context.Context, ownerID string) (*model.OwnerVault, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vault, ok := s.vaults[ownerID]
	if !ok {
		return nil, ErrVaultNotFound
	}
	return vault.Clone(), nil
}

func (s *MemoryVaultStore) Insert(_ context.Context, vault *model.OwnerVault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vaults[vault.OwnerID]; ok {
		return ErrOwnerConflict
	}
	s.vaults[vault.OwnerID] = vault.Clone()
	return nil
}

func (s *MemoryVaultStore) Replace(_ context.Context, vault *model.OwnerVault) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.vaults[vault.OwnerID]
	if !ok || stored.ID != vault.ID || stored.Version != vault.Version {
		return ErrVersionConflict
	}

	updated := vault.Clone()
	updated.Version++
	s.vaults[vault.OwnerID] = updated

	vault.Version = updated.Version
	return nil
}
