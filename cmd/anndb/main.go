package main

import (
	"os"

	"github.com/marekgalovic/annindex/cmd/anndb/commands"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func indexFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "index", Usage: "Index kind: hnsw or bruteforce"},
		&cli.StringFlag{Name: "metric", Usage: "Distance: l2, ip or cosine"},
		&cli.UintFlag{Name: "dim", Usage: "Vector dimension, inferred from the input when omitted"},
		&cli.UintFlag{Name: "capacity", Usage: "Maximum number of elements"},
		&cli.IntFlag{Name: "m", Usage: "HNSW M"},
		&cli.IntFlag{Name: "m-max", Usage: "HNSW degree bound above level 0, defaults to M"},
		&cli.IntFlag{Name: "m-max0", Usage: "HNSW degree bound on level 0, defaults to 2*M"},
		&cli.Float64Flag{Name: "level-multiplier", Usage: "HNSW level multiplier, defaults to 1/ln(M)"},
		&cli.IntFlag{Name: "ef-construction", Usage: "HNSW construction beam width"},
		&cli.IntFlag{Name: "ef", Usage: "HNSW query beam width"},
		&cli.Int64Flag{Name: "seed", Usage: "Random seed"},
		&cli.IntFlag{Name: "workers", Usage: "Insert workers, defaults to GOMAXPROCS"},
	}
}

func newApp() *cli.App {
	storeFlag := &cli.StringFlag{Name: "store", Usage: "Snapshot store directory"}
	indexFileFlag := &cli.StringFlag{Name: "index-file", Aliases: []string{"f"}, Required: true}

	return &cli.App{
		Name:  "anndb",
		Usage: "Build, query and store nearest neighbor indices",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file"},
			&cli.StringFlag{Name: "log-level", Usage: "panic, fatal, error, warn, info, debug or trace"},
		},
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build an index from a CSV file of label,v1,...,vd rows",
				Action: commands.Build,
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
				}, indexFlags()...),
			},
			{
				Name:   "search",
				Usage:  "Query an index file",
				Action: commands.Search,
				Flags: []cli.Flag{
					indexFileFlag,
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Required: true, Usage: "Comma separated vector"},
					&cli.UintFlag{Name: "k", Value: 10},
					&cli.IntFlag{Name: "ef", Usage: "HNSW query beam width"},
					&cli.StringFlag{Name: "metric", Usage: "Set to cosine for indices built with it"},
					&cli.StringFlag{Name: "labels", Usage: "Comma separated labels allowed in results"},
					&cli.BoolFlag{Name: "strict", Usage: "Fail when fewer than k results are found"},
				},
			},
			{
				Name:   "info",
				Usage:  "Describe an index file",
				Action: commands.Info,
				Flags:  []cli.Flag{indexFileFlag},
			},
			{
				Name:   "bench",
				Usage:  "Measure HNSW recall and throughput on random vectors",
				Action: commands.Bench,
				Flags: append([]cli.Flag{
					&cli.IntFlag{Name: "n", Value: 10000},
					&cli.IntFlag{Name: "queries", Value: 1000},
					&cli.UintFlag{Name: "k", Value: 10},
				}, indexFlags()...),
			},
			{
				Name:  "snapshot",
				Usage: "Manage index snapshots",
				Subcommands: []*cli.Command{
					{
						Name:      "put",
						Usage:     "Store an index file under a name",
						ArgsUsage: "<name>",
						Action:    commands.PutSnapshot,
						Flags:     []cli.Flag{storeFlag, indexFileFlag},
					},
					{
						Name:      "get",
						Usage:     "Show a snapshot, optionally writing it to a file",
						ArgsUsage: "<name>",
						Action:    commands.GetSnapshot,
						Flags:     []cli.Flag{storeFlag, &cli.StringFlag{Name: "output", Aliases: []string{"o"}}},
					},
					{
						Name:   "list",
						Usage:  "List snapshots",
						Action: commands.ListSnapshots,
						Flags:  []cli.Flag{storeFlag},
					},
					{
						Name:      "delete",
						Usage:     "Delete a snapshot",
						ArgsUsage: "<name>",
						Action:    commands.DeleteSnapshot,
						Flags:     []cli.Flag{storeFlag},
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
