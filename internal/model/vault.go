package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordEntry is one stored secret plus its revision history.
// History holds superseded values newest-first and never contains the
// current Data value.
type PasswordEntry struct {
	ID          string    `bson:"id" json:"id"`
	CreatedDate time.Time `bson:"createdDate" json:"createdDate"`
	UpdateDate  time.Time `bson:"updateDate" json:"updateDate"`
	Data        string    `bson:"data" json:"data"`
	History     []string  `bson:"history" json:"history"`
}

// OwnerVault is the collection of all password entries belonging to one
// owner. At most one vault exists per owner. Version backs the conditional
// whole-document replace in the store.
type OwnerVault struct {
	ID          string          `bson:"_id" json:"id"`
	OwnerID     string          `bson:"ownerId" json:"ownerId"`
	CreatedDate time.Time       `bson:"createdDate" json:"createdDate"`
	UpdateDate  time.Time       `bson:"updateDate" json:"updateDate"`
	Version     int64           `bson:"version" json:"-"`
	Entries     []PasswordEntry `bson:"passwords" json:"passwords"`
}

// NewPasswordEntry creates an entry with a fresh id, both timestamps set to
// now and an empty history.
func NewPasswordEntry(data string) PasswordEntry {
	now := time.Now().UTC()
	return PasswordEntry{
		ID:          uuid.NewString(),
		CreatedDate: now,
		UpdateDate:  now,
		Data:        data,
		History:     []string{},
	}
}

// NewOwnerVault creates an empty vault for the given owner.
func NewOwnerVault(ownerID string) OwnerVault {
	now := time.Now().UTC()
	return OwnerVault{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		CreatedDate: now,
		UpdateDate:  now,
		Version:     1,
		Entries:     []PasswordEntry{},
	}
}

// Clone returns a deep copy of the vault so callers can mutate it without
// aliasing the original's entries or histories.
func (v *OwnerVault) Clone() *OwnerVault {
	c := *v
	c.Entries = make([]PasswordEntry, len(v.Entries))
	for i, e := range v.Entries {
		c.Entries[i] = e.Clone()
	}
	return &c
}

// Clone returns a deep copy of the entry including its history.
func (e PasswordEntry) Clone() PasswordEntry {
	c := e
	c.History = make([]string, len(e.History))
	copy(c.History, e.History)
	return c
}

// AddPasswordRequest is the body of a POST /api/v1/passwords request.
type AddPasswordRequest struct {
	Data string `json:"data"`
}

// UpdatePasswordRequest is the body of a PUT /api/v1/passwords request.
type UpdatePasswordRequest struct {
	ID   string `json:"id"`
	Data string `json:"data"`
}

// DeletePasswordRequest is the body of a DELETE /api/v1/passwords request.
type DeletePasswordRequest struct {
	ID string `json:"id"`
}
