package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/colsaw"
	"github.com/hupe1980/colsaw/filter"
	"github.com/hupe1980/colsaw/index"
	"github.com/hupe1980/colsaw/selection"
	"github.com/hupe1980/colsaw/table"
	"github.com/urfave/cli/v3"
)

var errUsage = errors.New("wrong number of arguments")

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "sawtool",
		Usage: "Inspect and query tables stored in SAW format",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "directory holding the stored tables",
				Value:   ".",
				Sources: cli.EnvVars("SAWTOOL_ROOT"),
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "column bodies decoded at once",
				Value:   1,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every column read to stderr",
			},
		},
		Commands: []*cli.Command{
			listCmd(),
			infoCmd(),
			headCmd(),
			sortCmd(),
			filterCmd(),
			indexCmd(),
			dropCmd(),
		},
	}
}

func rowsFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "rows",
		Aliases: []string{"n"},
		Usage:   "number of rows to print",
		Value:   10,
	}
}

func openStore(cmd *cli.Command) (*colsaw.Store, error) {
	root := cmd.Root()
	logger := colsaw.NoopLogger()
	if root.Bool("verbose") {
		logger = colsaw.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return colsaw.Open(root.String("root"),
		colsaw.WithConcurrency(int(root.Int("concurrency"))),
		colsaw.WithLogger(logger),
	)
}

func out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// withTable opens the store and loads the table named by the first argument.
func withTable(ctx context.Context, cmd *cli.Command, wantArgs int, fn func(*table.Table) error) error {
	if cmd.NArg() < wantArgs {
		return fmt.Errorf("%s: %w: want at least %d, got %d", cmd.Name, errUsage, wantArgs, cmd.NArg())
	}
	db, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	tbl, err := db.Load(ctx, cmd.Args().First())
	if err != nil {
		return err
	}
	return fn(tbl)
}

func printTable(w io.Writer, tbl *table.Table, n int) {
	fmt.Fprintln(w, tbl.Shape())
	fmt.Fprint(w, tbl.First(n).String())
}

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the stored tables",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			names, err := db.List(ctx)
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(out(cmd), n)
			}
			return nil
		},
	}
}

func infoCmd() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the shape and column structure of a table",
		ArgsUsage: "<table>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("info: %w", errUsage)
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			meta, err := db.Metadata(ctx, cmd.Args().First())
			if err != nil {
				return err
			}
			w := out(cmd)
			fmt.Fprintln(w, meta.Shape())
			fmt.Fprintf(w, "compression: %s\n", meta.Compression)
			fmt.Fprintf(w, "generation:  %s\n", meta.Generation)
			fmt.Fprint(w, meta.Structure().String())
			return nil
		},
	}
}

func headCmd() *cli.Command {
	return &cli.Command{
		Name:      "head",
		Usage:     "Print the first rows of a table",
		ArgsUsage: "<table>",
		Flags: []cli.Flag{
			rowsFlag(),
			&cli.StringSliceFlag{
				Name:  "columns",
				Usage: "load only these columns",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("head: %w", errUsage)
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			tbl, err := db.Load(ctx, cmd.Args().First(), cmd.StringSlice("columns")...)
			if err != nil {
				return err
			}
			printTable(out(cmd), tbl, int(cmd.Int("rows")))
			return nil
		},
	}
}

func sortCmd() *cli.Command {
	return &cli.Command{
		Name:      "sort",
		Usage:     "Sort a table on one or more columns; prefix a key with - to descend",
		ArgsUsage: "<table> <key>...",
		Flags:     []cli.Flag{rowsFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withTable(ctx, cmd, 2, func(tbl *table.Table) error {
				sorted, err := tbl.SortOn(cmd.Args().Tail()...)
				if err != nil {
					return err
				}
				printTable(out(cmd), sorted, int(cmd.Int("rows")))
				return nil
			})
		},
	}
}

func filterCmd() *cli.Command {
	return &cli.Command{
		Name:      "filter",
		Usage:     "Print the rows matching column conditions such as approval>=60 or who~f.*",
		ArgsUsage: "<table>",
		Flags: []cli.Flag{
			rowsFlag(),
			&cli.StringSliceFlag{
				Name:     "where",
				Aliases:  []string{"w"},
				Usage:    "condition as <column><op><value>, op one of = != < <= > >= ~ (regex over the whole cell)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "any",
				Usage: "keep rows matching any condition instead of all",
			},
			&cli.BoolFlag{
				Name:  "not",
				Usage: "invert the result",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withTable(ctx, cmd, 1, func(tbl *table.Table) error {
				var filters []filter.Filter
				for _, expr := range cmd.StringSlice("where") {
					f, err := parseCondition(tbl, expr)
					if err != nil {
						return err
					}
					filters = append(filters, f)
				}

				f := filter.All(filters...)
				if cmd.Bool("any") {
					f = filter.Any(filters...)
				}
				if cmd.Bool("not") {
					f = filter.Not(f)
				}
				got, err := tbl.Filter(f)
				if err != nil {
					return err
				}
				printTable(out(cmd), got, int(cmd.Int("rows")))
				return nil
			})
		},
	}
}

func indexCmd() *cli.Command {
	return &cli.Command{
		Name:      "index",
		Usage:     "Look rows up through a sorted index on one column",
		ArgsUsage: "<table> <column>",
		Flags: []cli.Flag{
			rowsFlag(),
			&cli.StringFlag{Name: "eq", Usage: "rows equal to this value"},
			&cli.StringFlag{Name: "min", Usage: "rows at or above this value"},
			&cli.StringFlag{Name: "max", Usage: "rows at or below this value"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("index: %w", errUsage)
			}
			return withTable(ctx, cmd, 2, func(tbl *table.Table) error {
				col, err := tbl.Column(cmd.Args().Get(1))
				if err != nil {
					return err
				}
				idx, err := index.Build(col)
				if err != nil {
					return err
				}
				parse := func(flag string) (any, bool, error) {
					if !cmd.IsSet(flag) {
						return nil, false, nil
					}
					v, err := col.Type().Parse(cmd.String(flag))
					return v, true, err
				}

				eq, hasEq, err := parse("eq")
				if err != nil {
					return err
				}
				lo, hasLo, err := parse("min")
				if err != nil {
					return err
				}
				hi, hasHi, err := parse("max")
				if err != nil {
					return err
				}

				var sel *selection.Selection
				switch {
				case hasEq:
					sel, err = idx.Get(eq)
				case hasLo && hasHi:
					sel, err = idx.Between(lo, hi)
				case hasLo:
					sel, err = idx.AtLeast(lo)
				case hasHi:
					sel, err = idx.AtMost(hi)
				default:
					fmt.Fprintf(out(cmd), "%s: %d distinct values over %d rows\n", idx.Column(), idx.Keys(), idx.Rows())
					return nil
				}
				if err != nil {
					return err
				}
				printTable(out(cmd), tbl.Where(sel), int(cmd.Int("rows")))
				return nil
			})
		},
	}
}

func dropCmd() *cli.Command {
	return &cli.Command{
		Name:      "drop",
		Usage:     "Remove a stored table",
		ArgsUsage: "<table>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("drop: %w", errUsage)
			}
			db, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Drop(ctx, cmd.Args().First())
		},
	}
}
