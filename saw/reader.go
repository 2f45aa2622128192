package saw

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/internal/compress"
	"github.com/hupe1980/colsaw/internal/hash"
	"github.com/hupe1980/colsaw/internal/resource"
	"github.com/hupe1980/colsaw/table"
	"golang.org/x/sync/errgroup"
)

// ReadMetadata loads only the metadata record of the named table.
func ReadMetadata(ctx context.Context, store blobstore.BlobStore, name string) (*Metadata, error) {
	dir, err := DirName(name)
	if err != nil {
		return nil, err
	}
	data, err := blobstore.ReadAll(ctx, store, metadataPath(dir))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}
	meta := new(Metadata)
	if err := meta.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("saw: table %q: %w", name, err)
	}
	return meta, nil
}

// Read loads the named table. Any missing, inconsistent or corrupt body
// fails the whole read; no partial table is returned.
func Read(ctx context.Context, store blobstore.BlobStore, name string, opts ...Option) (*table.Table, error) {
	o := applyOptions(opts)
	log := o.logger.With("table", name)
	start := time.Now()

	meta, err := ReadMetadata(ctx, store, name)
	if err != nil {
		return nil, err
	}
	dir, _ := DirName(name)

	selected, err := selectColumns(meta, o.columns)
	if err != nil {
		return nil, err
	}
	if err := checkBodies(ctx, store, dir, meta); err != nil {
		log.Error("table read failed", "error", err)
		return nil, err
	}

	var reserved atomic.Int64
	defer func() { o.rc.ReleaseMemory(reserved.Load()) }()

	cols := make([]column.Column, len(selected))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, cm := range selected {
		g.Go(func() error {
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			if err := o.rc.AcquireMemory(cm.BodySize); err != nil {
				return &ColumnError{Table: meta.Table, Column: cm.Name, ID: cm.ID, Err: err}
			}
			reserved.Add(cm.BodySize)

			col, err := readColumn(gctx, store, o.rc, dir, meta, cm)
			if err != nil {
				return &ColumnError{Table: meta.Table, Column: cm.Name, ID: cm.ID, Err: err}
			}
			cols[i] = col
			log.Debug("column read", "column", cm.Name, "id", cm.ID, "type", cm.Type, "bytes", cm.BodySize)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("table read failed", "error", err)
		return nil, err
	}

	tbl, err := table.New(meta.Table, cols...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInconsistent, err)
	}
	log.Info("table read", "rows", tbl.RowCount(), "columns", tbl.ColumnCount(), "duration", time.Since(start))
	return tbl, nil
}

// selectColumns keeps the requested columns in stored order.
func selectColumns(meta *Metadata, names []string) ([]ColumnMetadata, error) {
	if len(names) == 0 {
		return meta.Columns, nil
	}
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := meta.Column(n); !ok {
			return nil, fmt.Errorf("%w: %q in stored table %q", column.ErrUnknownColumn, n, meta.Table)
		}
		want[n] = struct{}{}
	}
	out := make([]ColumnMetadata, 0, len(want))
	for _, c := range meta.Columns {
		if _, ok := want[c.Name]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// checkBodies verifies that the directory holds exactly one body per
// metadata column.
func checkBodies(ctx context.Context, store blobstore.BlobStore, dir string, meta *Metadata) error {
	names, err := store.List(ctx, dir+"/")
	if err != nil {
		return err
	}
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		if base := path.Base(n); strings.HasSuffix(base, bodySuffix) {
			present[base] = struct{}{}
		}
	}
	for _, c := range meta.Columns {
		body := bodyName(c.ID)
		if _, ok := present[body]; !ok {
			return &ColumnError{Table: meta.Table, Column: c.Name, ID: c.ID, Err: inconsistentf("body %s is missing", body)}
		}
		delete(present, body)
	}
	if len(present) > 0 {
		extra := slices.Sorted(maps.Keys(present))
		return inconsistentf("table %q: body %s has no metadata entry", meta.Table, extra[0])
	}
	return nil
}

func readColumn(ctx context.Context, store blobstore.BlobStore, rc *resource.Controller, dir string, meta *Metadata, cm ColumnMetadata) (column.Column, error) {
	data, err := readBlob(ctx, store, rc, bodyPath(dir, cm.ID))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return nil, inconsistentf("body %s is missing", bodyName(cm.ID))
		}
		return nil, err
	}

	h, compressed, digest, err := parseBody(data)
	if err != nil {
		return nil, err
	}
	switch {
	case h.Generation != meta.Generation:
		return nil, inconsistentf("body generation %s does not match metadata generation %s", h.Generation, meta.Generation)
	case h.Type != cm.Type:
		return nil, inconsistentf("body holds %s, metadata says %s", h.Type, cm.Type)
	case h.Elements != meta.Rows:
		return nil, inconsistentf("body holds %d rows, metadata says %d", h.Elements, meta.Rows)
	case h.Size != cm.BodySize:
		return nil, inconsistentf("body holds %d bytes, metadata says %d", h.Size, cm.BodySize)
	}

	payload, err := compress.Decompress(h.Compression, compressed, int(h.Size))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if hash.Digest64(payload) != digest {
		return nil, corruptf("body checksum mismatch")
	}
	return decodeColumn(cm, meta.Rows, payload)
}

func readBlob(ctx context.Context, store blobstore.BlobStore, rc *resource.Controller, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	r, err := b.ReadRange(ctx, 0, b.Size())
	if err != nil {
		return nil, err
	}
	defer r.Close()

	buf := make([]byte, b.Size())
	if _, err := io.ReadFull(resource.NewRateLimitedReader(ctx, r, rc), buf); err != nil {
		return nil, err
	}
	return buf, nil
}
