package colsaw

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/internal/cache"
	"github.com/hupe1980/colsaw/internal/resource"
	"github.com/hupe1980/colsaw/saw"
	"github.com/hupe1980/colsaw/table"
)

// Store saves and loads tables in SAW format. Each table lives in its own
// directory below the store root.
//
// A Store is safe for concurrent use. Saving a table while another
// goroutine loads or saves the same table name is not coordinated.
type Store struct {
	blobs  blobstore.BlobStore
	cache  *cache.LRUBlockCache // nil when disabled
	rc     *resource.Controller
	opts   options
	closed atomic.Bool
}

// Open returns a Store rooted at the local directory root, creating it if
// needed. With WithBlobStore, root is ignored.
func Open(root string, optFns ...Option) (*Store, error) {
	o := applyOptions(optFns)

	backing := o.blobStore
	if backing == nil {
		if root == "" {
			return nil, errors.New("colsaw: open needs a root directory or a blob store")
		}
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("colsaw: create root: %w", err)
		}
		backing = blobstore.NewLocalStore(root)
	}

	s := &Store{
		blobs: backing,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   o.memoryLimit,
			MaxWorkers:         int64(o.concurrency),
			IOLimitBytesPerSec: o.ioLimit,
		}),
		opts: o,
	}
	if o.metadataCacheBytes > 0 {
		s.cache = cache.NewLRUBlockCache(o.metadataCacheBytes)
		s.blobs = blobstore.NewCachingStore(backing, s.cache, isMetadata)
	}
	return s, nil
}

func isMetadata(name string) bool { return path.Base(name) == saw.MetadataName }

func (s *Store) sawOptions(log *Logger) []saw.Option {
	return []saw.Option{
		saw.WithCompression(s.opts.compression),
		saw.WithConcurrency(s.opts.concurrency),
		saw.WithController(s.rc),
		saw.WithLogger(log.Logger),
	}
}

// Save stores tbl under its name, replacing any table saved under the same
// name. On failure nothing of the table remains stored.
func (s *Store) Save(ctx context.Context, tbl *table.Table) (*saw.Metadata, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	log := s.opts.logger.WithTable(tbl.Name())
	start := time.Now()

	meta, err := saw.Write(ctx, s.blobs, tbl, s.sawOptions(log)...)
	err = translateError(tbl.Name(), err)

	s.opts.metricsCollector.RecordSave(tbl.RowCount(), tbl.ColumnCount(), time.Since(start), err)
	log.LogSave(ctx, meta, err)
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// Load reads the named table. If columns are given, only those are loaded,
// in stored order.
func (s *Store) Load(ctx context.Context, name string, columns ...string) (*table.Table, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	log := s.opts.logger.WithTable(name)
	start := time.Now()

	opts := append(s.sawOptions(log), saw.WithColumns(columns...))
	tbl, err := saw.Read(ctx, s.blobs, name, opts...)
	err = translateError(name, err)

	var rows, cols int
	if err == nil {
		rows, cols = tbl.RowCount(), tbl.ColumnCount()
	}
	s.opts.metricsCollector.RecordLoad(rows, cols, time.Since(start), err)
	log.LogLoad(ctx, rows, cols, err)
	if err != nil {
		return nil, err
	}
	return tbl, nil
}

// Metadata reads only the metadata record of the named table.
func (s *Store) Metadata(ctx context.Context, name string) (*saw.Metadata, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	meta, err := saw.ReadMetadata(ctx, s.blobs, name)
	if err != nil {
		return nil, translateError(name, err)
	}
	return meta, nil
}

// Exists reports whether a table is stored under name.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if s.closed.Load() {
		return false, ErrClosed
	}
	dir, err := saw.DirName(name)
	if err != nil {
		return false, translateError(name, err)
	}
	names, err := s.blobs.List(ctx, dir+"/")
	if err != nil {
		return false, err
	}
	return slices.Contains(names, path.Join(dir, saw.MetadataName)), nil
}

// List returns the names of the stored tables, sorted. Directories whose
// metadata cannot be read are logged and skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	names, err := s.blobs.List(ctx, "")
	if err != nil {
		return nil, err
	}

	var tables []string
	for _, n := range names {
		dir, base := path.Split(n)
		if base != saw.MetadataName || strings.Count(n, "/") != 1 {
			continue
		}
		meta, err := saw.ReadMetadata(ctx, s.blobs, strings.TrimSuffix(dir, "/"))
		if err != nil {
			s.opts.logger.WarnContext(ctx, "skipping unreadable table", "dir", dir, "error", err)
			continue
		}
		tables = append(tables, meta.Table)
	}
	slices.Sort(tables)
	return tables, nil
}

// Drop removes the named table. Dropping a table that does not exist
// returns ErrNotFound.
func (s *Store) Drop(ctx context.Context, name string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	log := s.opts.logger.WithTable(name)
	start := time.Now()

	err := s.drop(ctx, name)
	s.opts.metricsCollector.RecordDrop(time.Since(start), err)
	log.LogDrop(ctx, err)
	return err
}

func (s *Store) drop(ctx context.Context, name string) error {
	dir, err := saw.DirName(name)
	if err != nil {
		return translateError(name, err)
	}
	names, err := s.blobs.List(ctx, dir+"/")
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return blobstore.DeletePrefix(ctx, s.blobs, dir+"/")
}

// CacheStats returns the hits and misses of the metadata cache.
func (s *Store) CacheStats() (hits, misses int64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// Close marks the store closed. Further calls fail with ErrClosed.
// Close is idempotent.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}
