package prommetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hupe1980/colsaw"
	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/table"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.RecordSave(10, 3, time.Millisecond, nil)
	c.RecordLoad(10, 2, time.Millisecond, nil)
	c.RecordLoad(0, 0, time.Millisecond, errors.New("boom"))
	c.RecordDrop(time.Millisecond, nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("save", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("load", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ops.WithLabelValues("drop", "success")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.rows.WithLabelValues("save")))
	assert.Equal(t, 10.0, testutil.ToFloat64(c.rows.WithLabelValues("load")))

	_, err = New(reg)
	require.Error(t, err, "metrics are registered once per registry")
}

func TestCollector_Store(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	db, err := colsaw.Open("",
		colsaw.WithBlobStore(blobstore.NewMemoryStore()),
		colsaw.WithMetricsCollector(MustNew(reg)),
	)
	require.NoError(t, err)

	_, err = db.Save(ctx, table.Must("t", column.NewIntColumn("a", 1, 2)))
	require.NoError(t, err)
	_, err = db.Load(ctx, "t")
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(reg, "colsaw_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
