package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/marekgalovic/annindex/index"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func Search(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}

	ef := 0
	if c.IsSet("ef") {
		ef = config.Ef
	}
	idx, _, err := openIndex(c.String("index-file"), config, ef)
	if err != nil {
		return err
	}

	query, err := parseVector(c.String("query"))
	if err != nil {
		return err
	}

	var filter index.Filter
	if c.IsSet("labels") {
		labels, err := parseLabels(c.String("labels"))
		if err != nil {
			return err
		}
		filter = index.AllowLabels(labels...)
	}

	k := c.Uint("k")
	result, err := idx.SearchKnn(context.Background(), query, k, filter)
	if err != nil {
		return err
	}
	if c.Bool("strict") {
		if _, err := index.RequireK(result, k); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"rank", "label", "distance"})
	for i, item := range result {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", item.Label),
			fmt.Sprintf("%.6f", item.Distance),
		})
	}
	table.Render()
	return nil
}
