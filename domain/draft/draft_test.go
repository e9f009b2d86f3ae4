package draft

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/prasetyowira/kerjaku/constant"
	"github.com/prasetyowira/kerjaku/domain/apperror"
)

// memStore is an in-memory Store.
type memStore struct {
	drafts map[string]Draft
	err    error
}

func newMemStore() *memStore {
	return &memStore{drafts: map[string]Draft{}}
}

func (s *memStore) Put(ctx context.Context, d *Draft) error {
	if s.err != nil {
		return s.err
	}
	s.drafts[d.ID] = *d
	return nil
}

func (s *memStore) ByID(ctx context.Context, id string) (*Draft, error) {
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *memStore) ByOwner(ctx context.Context, ownerID string) ([]Draft, error) {
	if s.err != nil {
		return nil, s.err
	}
	var rows []Draft
	for _, d := range s.drafts {
		if d.OwnerID == ownerID {
			rows = append(rows, d)
		}
	}
	return rows, nil
}

func (s *memStore) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.drafts, id)
	return nil
}

func TestSave_AssignsIDAndTimestamp(t *testing.T) {
	store := newMemStore()
	repo := NewRepository(store)
	d := &Draft{OwnerID: "u1", Title: "Weekend cook"}

	ae := repo.Save(context.Background(), d)

	assert.Nil(t, ae)
	assert.NotEmpty(t, d.ID)
	_, err := uuid.Parse(d.ID)
	assert.NoError(t, err)
	assert.False(t, d.UpdatedAt.IsZero())
	assert.Contains(t, store.drafts, d.ID)
}

func TestSave_KeepsExistingID(t *testing.T) {
	store := newMemStore()
	repo := NewRepository(store)
	d := &Draft{ID: "fixed", OwnerID: "u1"}

	ae := repo.Save(context.Background(), d)

	assert.Nil(t, ae)
	assert.Equal(t, "fixed", d.ID)
}

func TestSave_RequiresOwner(t *testing.T) {
	repo := NewRepository(newMemStore())

	ae := repo.Save(context.Background(), &Draft{Title: "orphan"})

	assert.NotNil(t, ae)
	assert.Equal(t, constant.ErrCodeValidation, ae.Code())
}

func TestGet_MissingDraftIsNil(t *testing.T) {
	repo := NewRepository(newMemStore())

	d, ae := repo.Get(context.Background(), "nope")

	assert.Nil(t, ae)
	assert.Nil(t, d)
}

func TestListByOwner(t *testing.T) {
	store := newMemStore()
	repo := NewRepository(store)
	assert.Nil(t, repo.Save(context.Background(), &Draft{OwnerID: "u1", Title: "a"}))
	assert.Nil(t, repo.Save(context.Background(), &Draft{OwnerID: "u1", Title: "b"}))
	assert.Nil(t, repo.Save(context.Background(), &Draft{OwnerID: "u2", Title: "c"}))

	rows, ae := repo.ListByOwner(context.Background(), "u1")

	assert.Nil(t, ae)
	assert.Len(t, rows, 2)
}

func TestDelete(t *testing.T) {
	store := newMemStore()
	repo := NewRepository(store)
	d := &Draft{OwnerID: "u1"}
	assert.Nil(t, repo.Save(context.Background(), d))

	assert.Nil(t, repo.Delete(context.Background(), d.ID))
	assert.NotContains(t, store.drafts, d.ID)
}

func TestStoreFailuresBecomeDatabaseErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("database is locked")
	repo := NewRepository(store)

	ae := repo.Save(context.Background(), &Draft{OwnerID: "u1"})
	_, getErr := repo.Get(context.Background(), "x")
	_, listErr := repo.ListByOwner(context.Background(), "u1")
	delErr := repo.Delete(context.Background(), "x")

	for _, e := range []apperror.AppError{ae, getErr, listErr, delErr} {
		de, ok := e.(*apperror.DatabaseError)
		assert.True(t, ok)
		assert.Equal(t, constant.EntityDraft, de.Entity)
	}
}
