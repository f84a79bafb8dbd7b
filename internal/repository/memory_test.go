package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/ectopass/vault/internal/model"
)

func TestMemoryStore_FindByOwner_Missing(t *testing.T) {
	store := NewMemoryVaultStore()

	_, err := store.FindByOwner(context.Background(), "nobody")
	if !errors.Is(err, ErrVaultNotFound) {
		t.Errorf("expected ErrVaultNotFound, got %v", err)
	}
}

func TestMemoryStore_InsertAndFind(t *testing.T) {
	store := NewMemoryVaultStore()
	vault := model.NewOwnerVault("u1")
	vault.Entries = append(vault.Entries, model.NewPasswordEntry("secret"))

	if err := store.Insert(context.Background(), &vault); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	found, err := store.FindByOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.ID != vault.ID || found.OwnerID != "u1" {
		t.Errorf("found wrong vault: %+v", found)
	}
	if len(found.Entries) != 1 || found.Entries[0].Data != "secret" {
		t.Errorf("entries not persisted: %+v", found.Entries)
	}
}

func TestMemoryStore_InsertDuplicateOwner(t *testing.T) {
	store := NewMemoryVaultStore()
	first := model.NewOwnerVault("u1")
	second := model.NewOwnerVault("u1")

	if err := store.Insert(context.Background(), &first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := store.Insert(context.Background(), &second); !errors.Is(err, ErrOwnerConflict) {
		t.Errorf("expected ErrOwnerConflict, got %v", err)
	}
}

func TestMemoryStore_ReplaceBumpsVersion(t *testing.T) {
	store := NewMemoryVaultStore()
	vault := model.NewOwnerVault("u1")
	store.Insert(context.Background(), &vault)

	vault.Entries = append(vault.Entries, model.NewPasswordEntry("secret"))
	if err := store.Replace(context.Background(), &vault); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if vault.Version != 2 {
		t.Errorf("expected version bump to 2, got %d", vault.Version)
	}

	found, _ := store.FindByOwner(context.Background(), "u1")
	if found.Version != 2 || len(found.Entries) != 1 {
		t.Errorf("stored document not updated: %+v", found)
	}
}

func TestMemoryStore_ReplaceStaleVersion(t *testing.T) {
	store := NewMemoryVaultStore()
	vault := model.NewOwnerVault("u1")
	store.Insert(context.Background(), &vault)

	stale := vault.Clone()

	if err := store.Replace(context.Background(), &vault); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if err := store.Replace(context.Background(), stale); !errors.Is(err, ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict for stale copy, got %v", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryVaultStore()
	vault := model.NewOwnerVault("u1")
	vault.Entries = append(vault.Entries, model.NewPasswordEntry("secret"))
	store.Insert(context.Background(), &vault)

	found, _ := store.FindByOwner(context.Background(), "u1")
	found.Entries[0].Data = "tampered"
	found.Entries = append(found.Entries, model.NewPasswordEntry("extra"))

	again, _ := store.FindByOwner(context.Background(), "u1")
	if len(again.Entries) != 1 || again.Entries[0].Data != "secret" {
		t.Error("mutating a returned vault leaked into the store")
	}
}
