package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/ectopass/vault/internal/model"
)

var (
	ErrVaultNotFound   = errors.New("vault not found")
	ErrOwnerConflict   = errors.New("owner already has a vault")
	ErrVersionConflict = errors.New("vault was modified concurrently")
)

// VaultStore is the persistence gateway for owner vaults. Implementations
// hold whole vault documents keyed by owner id; all mutations go through
// Insert (new vault) or Replace (existing vault, conditional on the document
// version seen by the caller).
type VaultStore interface {
	// FindByOwner returns the owner's vault or ErrVaultNotFound.
	FindByOwner(ctx context.Context, ownerID string) (*model.OwnerVault, error)

	// Insert persists a new vault. Returns ErrOwnerConflict when the owner
	// already has one.
	Insert(ctx context.Context, vault *model.OwnerVault) error

	// Replace overwrites the stored document matching the vault's id and
	// version, bumping the version on success. Returns ErrVersionConflict
	// when the stored document has moved past the caller's copy.
	Replace(ctx context.Context, vault *model.OwnerVault) error
}

// MongoVaultStore implements VaultStore on a MongoDB collection.
type MongoVaultStore struct {
	coll *mongo.Collection
}

// NewMongoVaultStore creates a new MongoVaultStore.
func NewMongoVaultStore(coll *mongo.Collection) *MongoVaultStore {
	return &MongoVaultStore{coll: coll}
}

func (s *MongoVaultStore) FindByOwner(ctx context.Context, ownerID string) (*model.OwnerVault, error) {
	var vault model.OwnerVault
	err := s.coll.FindOne(ctx, bson.M{"ownerId": ownerID}).Decode(&vault)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVaultNotFound
		}
		return nil, fmt.Errorf("find vault: %w", err)
	}
	return &vault, nil
}

func (s *MongoVaultStore) Insert(ctx context.Context, vault *model.OwnerVault) error {
	_, err := s.coll.InsertOne(ctx, vault)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrOwnerConflict
		}
		return fmt.Errorf("insert vault: %w", err)
	}
	return nil
}

func (s *MongoVaultStore) Replace(ctx context.Context, vault *model.OwnerVault) error {
	filter := bson.M{"_id": vault.ID, "version": vault.Version}

	updated := vault.Clone()
	updated.Version++

	res, err := s.coll.ReplaceOne(ctx, filter, updated)
	if err != nil {
		return fmt.Errorf("replace vault: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}

	vault.Version = updated.Version
	return nil
}
