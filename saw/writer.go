package saw

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/internal/compress"
	"github.com/hupe1980/colsaw/internal/conv"
	"github.com/hupe1980/colsaw/internal/hash"
	"github.com/hupe1980/colsaw/internal/resource"
	"github.com/hupe1980/colsaw/table"
	"golang.org/x/sync/errgroup"
)

// Write stores tbl in its own directory of store, replacing whatever was
// stored under the same name. The metadata record is written first, then
// every column body. If any body fails, the table directory is removed and
// the first error is returned.
func Write(ctx context.Context, store blobstore.BlobStore, tbl *table.Table, opts ...Option) (*Metadata, error) {
	o := applyOptions(opts)
	log := o.logger.With("table", tbl.Name())

	meta, err := newMetadata(tbl, o.compression)
	if err != nil {
		return nil, err
	}
	dir, err := DirName(tbl.Name())
	if err != nil {
		return nil, err
	}
	record, err := meta.MarshalBinary()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := blobstore.DeletePrefix(ctx, store, dir+"/"); err != nil {
		return nil, fmt.Errorf("saw: clear table %q: %w", tbl.Name(), err)
	}
	if err := writeBlob(ctx, store, o.rc, metadataPath(dir), record); err != nil {
		log.Error("metadata write failed", "error", err)
		return nil, fmt.Errorf("saw: write metadata of %q: %w", tbl.Name(), err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, col := range tbl.Columns() {
		cm := meta.Columns[i]
		g.Go(func() error {
			if err := o.rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer o.rc.ReleaseWorker()

			n, err := writeColumn(gctx, store, o, dir, meta.Generation, cm, col)
			if err != nil {
				return &ColumnError{Table: meta.Table, Column: cm.Name, ID: cm.ID, Err: err}
			}
			log.Debug("column written", "column", cm.Name, "id", cm.ID, "type", cm.Type, "bytes", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = blobstore.DeletePrefix(context.WithoutCancel(ctx), store, dir+"/")
		log.Error("table write failed", "error", err)
		return nil, err
	}

	log.Info("table written",
		"rows", meta.Rows,
		"columns", len(meta.Columns),
		"compression", meta.Compression,
		"generation", meta.Generation,
		"duration", time.Since(start))
	return meta, nil
}

func newMetadata(tbl *table.Table, c Compression) (*Metadata, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidTable, compress.ErrUnknown, uint8(c))
	}
	if uint64(tbl.RowCount()) > conv.MaxRows {
		return nil, fmt.Errorf("%w: %d rows exceed the limit of %d", ErrInvalidTable, tbl.RowCount(), uint64(conv.MaxRows))
	}

	meta := &Metadata{
		Version:     metadataVersion,
		Table:       tbl.Name(),
		Rows:        tbl.RowCount(),
		Compression: c,
		Generation:  uuid.New(),
		Columns:     make([]ColumnMetadata, 0, tbl.ColumnCount()),
	}
	for i, col := range tbl.Columns() {
		if col.Type() == column.Skip {
			return nil, fmt.Errorf("%w: column %q has type %s", ErrInvalidTable, col.Name(), col.Type())
		}
		size, dict, err := describe(col)
		if err != nil {
			return nil, err
		}
		meta.Columns = append(meta.Columns, ColumnMetadata{
			ID:             i,
			Name:           col.Name(),
			Type:           col.Type(),
			DictionarySize: dict,
			BodySize:       size,
		})
	}
	return meta, nil
}

// writeColumn encodes, compresses and stores one body. It returns the
// number of bytes written.
func writeColumn(ctx context.Context, store blobstore.BlobStore, o options, dir string, gen uuid.UUID, cm ColumnMetadata, col column.Column) (int, error) {
	payload, err := encodeColumn(col, cm.BodySize)
	if err != nil {
		return 0, err
	}
	digest := hash.Digest64(payload)
	compressed, used, err := compress.Compress(o.compression, payload)
	if err != nil {
		return 0, err
	}

	h := bodyHeader{
		Compression: used,
		Type:        cm.Type,
		Generation:  gen,
		Elements:    col.Len(),
		Size:        cm.BodySize,
	}
	w, err := store.Create(ctx, bodyPath(dir, cm.ID))
	if err != nil {
		return 0, err
	}
	rw := resource.NewRateLimitedWriter(ctx, w, o.rc)

	total := 0
	for _, part := range [][]byte{h.marshal(), compressed, bodyTrailer(len(compressed), digest)} {
		n, err := rw.Write(part)
		total += n
		if err != nil {
			_ = w.Abort()
			return total, err
		}
	}
	if err := w.Close(); err != nil {
		return total, err
	}
	return total, nil
}

func writeBlob(ctx context.Context, store blobstore.BlobStore, rc *resource.Controller, name string, data []byte) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := resource.NewRateLimitedWriter(ctx, w, rc).Write(data); err != nil {
		_ = w.Abort()
		return err
	}
	return w.Close()
}
