package blobstore

import (
	"context"

	"github.com/hupe1980/colsaw/internal/cache"
)

// CachingStore wraps a BlobStore and keeps whole blobs chosen by a
// predicate in a BlockCache. Writes and deletes through the store
// invalidate the cached copy.
type CachingStore struct {
	BlobStore
	cache cache.BlockCache
	keep  func(name string) bool
}

// NewCachingStore caches blobs for which keep returns true. A nil keep
// caches everything.
func NewCachingStore(inner BlobStore, c cache.BlockCache, keep func(name string) bool) *CachingStore {
	if keep == nil {
		keep = func(string) bool { return true }
	}
	return &CachingStore{BlobStore: inner, cache: c, keep: keep}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	if !s.keep(name) {
		return s.BlobStore.Open(ctx, name)
	}
	if data, ok := s.cache.Get(name); ok {
		return &memoryBlob{data: data}, nil
	}
	data, err := ReadAll(ctx, s.BlobStore, name)
	if err != nil {
		return nil, err
	}
	s.cache.Set(name, data)
	return &memoryBlob{data: data}, nil
}

func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	w, err := s.BlobStore.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &invalidatingBlob{WritableBlob: w, store: s, name: name}, nil
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.BlobStore.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.BlobStore.Delete(ctx, name)
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(key string) bool { return key == name })
}

// invalidatingBlob drops any copy cached while the blob was being written.
type invalidatingBlob struct {
	WritableBlob
	store *CachingStore
	name  string
}

func (w *invalidatingBlob) Close() error {
	defer w.store.invalidate(w.name)
	return w.WritableBlob.Close()
}

