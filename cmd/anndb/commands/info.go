package commands

import (
	"fmt"
	"os"

	"github.com/marekgalovic/annindex/index"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func Info(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	idx, header, err := openIndex(c.String("index-file"), config, 0)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"property", "value"})
	table.Append([]string{"kind", header.Kind})
	table.Append([]string{"metric", header.Metric.String()})
	table.Append([]string{"dimension", fmt.Sprintf("%d", header.Dim)})
	table.Append([]string{"size", fmt.Sprintf("%d", idx.Len())})
	table.Append([]string{"current count", fmt.Sprintf("%d", idx.CurrentCount())})
	table.Append([]string{"max elements", fmt.Sprintf("%d", idx.MaxElements())})

	if normalized, ok := idx.(*index.Normalized); ok {
		idx = normalized.Index
	}
	if hnsw, ok := idx.(*index.Hnsw); ok {
		table.Append([]string{"deleted", fmt.Sprintf("%d", hnsw.DeletedCount())})
		table.Append([]string{"M", fmt.Sprintf("%d", hnsw.M())})
		table.Append([]string{"ef construction", fmt.Sprintf("%d", hnsw.EfConstruction())})
		table.Append([]string{"ef", fmt.Sprintf("%d", hnsw.Ef())})
	}

	table.Render()
	return nil
}
