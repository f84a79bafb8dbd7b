package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ectopass/vault/internal/model"
	"github.com/ectopass/vault/internal/repository"
)

// replaceRetries bounds how many times a mutation reloads and retries after a
// concurrent write to the same vault.
const replaceRetries = 3

var (
	ErrDataRequired  = errors.New("data is required")
	ErrIDRequired    = errors.New("id is required")
	ErrVaultNotFound = errors.New("vault not found")
	ErrEntryNotFound = errors.New("password entry not found")
)

// VaultService orchestrates the password lifecycle: list, add, update and
// delete against a per-owner vault document. Mutations are read-modify-write
// over the whole document; the store's conditional replace detects concurrent
// writers and the service retries the full cycle.
type VaultService struct {
	store        repository.VaultStore
	historyLimit int
}

// NewVaultService creates a new VaultService. historyLimit caps the number of
// superseded values kept per entry; 0 keeps all of them.
func NewVaultService(store repository.VaultStore, historyLimit int) *VaultService {
	return &VaultService{store: store, historyLimit: historyLimit}
}

// List returns all entries in the owner's vault. ErrVaultNotFound when the
// owner never stored a password.
func (s *VaultService) List(ctx context.Context, ownerID string) ([]model.PasswordEntry, error) {
	vault, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrVaultNotFound) {
			return nil, ErrVaultNotFound
		}
		return nil, err
	}

	if vault.Entries == nil {
		return []model.PasswordEntry{}, nil
	}
	return vault.Entries, nil
}

// Add appends a new entry to the owner's vault, creating the vault on the
// owner's first add. It never updates an existing entry.
func (s *VaultService) Add(ctx context.Context, ownerID, data string) (model.PasswordEntry, error) {
	if data == "" {
		return model.PasswordEntry{}, ErrDataRequired
	}

	for attempt := 1; attempt <= replaceRetries; attempt++ {
		created := false
		vault, err := s.store.FindByOwner(ctx, ownerID)
		if errors.Is(err, repository.ErrVaultNotFound) {
			v := model.NewOwnerVault(ownerID)
			vault = &v
			created = true
		} else if err != nil {
			return model.PasswordEntry{}, err
		}

		entry := model.NewPasswordEntry(data)
		vault.Entries = append(vault.Entries, entry)
		vault.UpdateDate = time.Now().UTC()

		if created {
			err = s.store.Insert(ctx, vault)
			// A concurrent first add for the same owner won the insert;
			// reload and go through the replace path.
			if errors.Is(err, repository.ErrOwnerConflict) {
				s.logRetry(ownerID, attempt, err)
				continue
			}
		} else {
			err = s.store.Replace(ctx, vault)
			if errors.Is(err, repository.ErrVersionConflict) {
				s.logRetry(ownerID, attempt, err)
				continue
			}
		}
		if err != nil {
			return model.PasswordEntry{}, err
		}

		return entry, nil
	}

	return model.PasswordEntry{}, fmt.Errorf("add password: %w", repository.ErrVersionConflict)
}

// Update rotates the value of an existing entry: the previous value moves to
// the front of the entry's history before the new value is stored. A missing
// entry id is ErrEntryNotFound, never an implicit add.
func (s *VaultService) Update(ctx context.Context, ownerID, entryID, data string) (model.PasswordEntry, error) {
	if entryID == "" {
		return model.PasswordEntry{}, ErrIDRequired
	}
	if data == "" {
		return model.PasswordEntry{}, ErrDataRequired
	}

	for attempt := 1; attempt <= replaceRetries; attempt++ {
		vault, err := s.store.FindByOwner(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrVaultNotFound) {
				return model.PasswordEntry{}, ErrVaultNotFound
			}
			return model.PasswordEntry{}, err
		}

		idx := findEntry(vault.Entries, entryID)
		if idx < 0 {
			return model.PasswordEntry{}, ErrEntryNotFound
		}

		entry := &vault.Entries[idx]
		entry.History = append([]string{entry.Data}, entry.History...)
		if s.historyLimit > 0 && len(entry.History) > s.historyLimit {
			entry.History = entry.History[:s.historyLimit]
		}
		entry.Data = data
		entry.UpdateDate = time.Now().UTC()
		vault.UpdateDate = entry.UpdateDate

		err = s.store.Replace(ctx, vault)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logRetry(ownerID, attempt, err)
			continue
		}
		if err != nil {
			return model.PasswordEntry{}, err
		}

		return entry.Clone(), nil
	}

	return model.PasswordEntry{}, fmt.Errorf("update password: %w", repository.ErrVersionConflict)
}

// Delete removes an entry from the owner's vault, preserving the order of the
// remaining entries, and returns the removed entry's snapshot. The vault
// itself stays, even when its last entry goes.
func (s *VaultService) Delete(ctx context.Context, ownerID, entryID string) (model.PasswordEntry, error) {
	if entryID == "" {
		return model.PasswordEntry{}, ErrIDRequired
	}

	for attempt := 1; attempt <= replaceRetries; attempt++ {
		vault, err := s.store.FindByOwner(ctx, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrVaultNotFound) {
				return model.PasswordEntry{}, ErrVaultNotFound
			}
			return model.PasswordEntry{}, err
		}

		idx := findEntry(vault.Entries, entryID)
		if idx < 0 {
			return model.PasswordEntry{}, ErrEntryNotFound
		}

		removed := vault.Entries[idx].Clone()
		vault.Entries = append(vault.Entries[:idx], vault.Entries[idx+1:]...)
		vault.UpdateDate = time.Now().UTC()

		err = s.store.Replace(ctx, vault)
		if errors.Is(err, repository.ErrVersionConflict) {
			s.logRetry(ownerID, attempt, err)
			continue
		}
		if err != nil {
			return model.PasswordEntry{}, err
		}

		return removed, nil
	}

	return model.PasswordEntry{}, fmt.Errorf("delete password: %w", repository.ErrVersionConflict)
}

// findEntry returns the index of the first entry with the given id, or -1.
func findEntry(entries []model.PasswordEntry, entryID string) int {
	for i := range entries {
		if entries[i].ID == entryID {
			return i
		}
	}
	return -1
}

func (s *VaultService) logRetry(ownerID string, attempt int, err error) {
	slog.Warn("vault write conflict, retrying", "owner_id", ownerID, "attempt", attempt, "error", err)
}
