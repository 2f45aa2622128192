package colsaw_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hupe1980/colsaw"
	"github.com/hupe1980/colsaw/blobstore"
	"github.com/hupe1980/colsaw/column"
	"github.com/hupe1980/colsaw/filter"
	"github.com/hupe1980/colsaw/packed"
	"github.com/hupe1980/colsaw/table"
)

func approvalTable() *table.Table {
	return table.Must("bush",
		column.NewDateColumn("date",
			packed.MustDate(2004, time.February, 4),
			packed.MustDate(2001, time.December, 12),
			packed.MustDate(2002, time.March, 1),
		),
		column.NewIntColumn("approval", 53, 86, 71),
		column.NewStringColumn("who", "fox", "gallup", "fox"),
	)
}

// Example_saveLoad saves a table and loads one column back.
func Example_saveLoad() {
	ctx := context.Background()
	db, err := colsaw.Open("", colsaw.WithBlobStore(blobstore.NewMemoryStore()))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Save(ctx, approvalTable()); err != nil {
		log.Fatal(err)
	}

	meta, err := db.Metadata(ctx, "bush")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(meta.Shape())
	fmt.Println(meta.ColumnNames())

	approval, err := db.Load(ctx, "bush", "approval")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(approval.Shape())
	// Output:
	// bush: 3 rows X 3 cols
	// [date approval who]
	// bush: 3 rows X 1 cols
}

// Example_sort orders rows on approval, highest first.
func Example_sort() {
	sorted, err := approvalTable().SortOn("-approval")
	if err != nil {
		log.Fatal(err)
	}
	approval, _ := sorted.Column("approval")
	who, _ := sorted.Column("who")
	for i := range sorted.RowCount() {
		fmt.Println(approval.Get(i), who.Get(i))
	}
	// Output:
	// 86 gallup
	// 71 fox
	// 53 fox
}

// Example_filter keeps Fox polls above 60.
func Example_filter() {
	got, err := approvalTable().Filter(filter.All(
		filter.Where("who", column.Eq("fox")),
		filter.Where("approval", column.Gte(60)),
	))
	if err != nil {
		log.Fatal(err)
	}
	date, _ := got.Column("date")
	fmt.Println(got.RowCount(), date.Get(0))
	// Output: 1 2002-03-01
}
