package blobstore

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrInjected is the default error returned by FaultyStore.
var ErrInjected = errors.New("blobstore: injected fault")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail writes once a blob would exceed this many bytes. 0 disables.
	FailOnOpen     bool
	FailOnClose    bool
	Err            error
}

// FaultyStore is a BlobStore wrapper that injects errors for tests.
type FaultyStore struct {
	BlobStore

	mu    sync.Mutex
	rules map[string]Fault // name substring -> Fault
}

// NewFaultyStore wraps inner.
func NewFaultyStore(inner BlobStore) *FaultyStore {
	return &FaultyStore{BlobStore: inner, rules: make(map[string]Fault)}
}

// AddRule adds a fault for every blob whose name contains pattern.
func (f *FaultyStore) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	f.rules[pattern] = fault
}

// ClearRules removes every fault.
func (f *FaultyStore) ClearRules() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.rules)
}

func (f *FaultyStore) fault(name string) (Fault, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			return rule, true
		}
	}
	return Fault{}, false
}

func (f *FaultyStore) Open(ctx context.Context, name string) (Blob, error) {
	if rule, ok := f.fault(name); ok && rule.FailOnOpen {
		return nil, rule.Err
	}
	return f.BlobStore.Open(ctx, name)
}

func (f *FaultyStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := f.BlobStore.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	rule, ok := f.fault(name)
	if !ok {
		return w, nil
	}
	return &faultyWritable{WritableBlob: w, fault: rule}, nil
}

func (f *FaultyStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := f.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}

type faultyWritable struct {
	WritableBlob
	fault   Fault
	written int64
}

func (w *faultyWritable) Write(p []byte) (int, error) {
	if w.fault.FailAfterBytes > 0 && w.written+int64(len(p)) > w.fault.FailAfterBytes {
		return 0, w.fault.Err
	}
	n, err := w.WritableBlob.Write(p)
	w.written += int64(n)
	return n, err
}

func (w *faultyWritable) Close() error {
	if w.fault.FailOnClose {
		_ = w.WritableBlob.Abort()
		return w.fault.Err
	}
	return w.WritableBlob.Close()
}
