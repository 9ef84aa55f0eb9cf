// Package session stores values in the caller's HTTP session, so every
// visitor gets their own key space.
package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
	"github.com/irsalhamdi/storefront-cart/storage"
)

type Store struct {
	sm *scs.SessionManager
}

func New(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Bind returns a storage.Storage scoped to the session loaded in ctx.
// ctx must come from a request served behind sm.LoadAndSave (or sm.Load).
func (s *Store) Bind(ctx context.Context) storage.Storage {
	return &bound{sm: s.sm, ctx: ctx}
}

type bound struct {
	sm  *scs.SessionManager
	ctx context.Context
}

func (b *bound) Get(key string) (string, bool, error) {
	if !b.sm.Exists(b.ctx, key) {
		return "", false, nil
	}
	return b.sm.GetString(b.ctx, key), true, nil
}

func (b *bound) Set(key, value string) error {
	b.sm.Put(b.ctx, key, value)
	return nil
}

func (b *bound) Remove(key string) error {
	b.sm.Remove(b.ctx, key)
	return nil
}
