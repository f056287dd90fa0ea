package commands

import (
	"fmt"
	"os"

	"github.com/marekgalovic/annindex/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func openStore(c *cli.Context) (*storage.SnapshotStore, error) {
	config, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return storage.OpenSnapshotStore(config.StoreDir, false)
}

func snapshotName(c *cli.Context) (string, error) {
	if c.NArg() == 0 {
		return "", errors.New("Missing snapshot name")
	}
	return c.Args().Get(0), nil
}

func renderSnapshots(snapshots ...*storage.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"name", "id", "kind", "metric", "dimension", "size", "bytes", "created at"})
	for _, snapshot := range snapshots {
		table.Append([]string{
			snapshot.Name,
			snapshot.Id.String(),
			snapshot.Kind,
			snapshot.Metric.String(),
			fmt.Sprintf("%d", snapshot.Dim),
			fmt.Sprintf("%d", snapshot.Len),
			fmt.Sprintf("%d", snapshot.Size),
			snapshot.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func PutSnapshot(c *cli.Context) error {
	name, err := snapshotName(c)
	if err != nil {
		return err
	}
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	idx, _, err := openIndex(c.String("index-file"), config, 0)
	if err != nil {
		return err
	}

	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshot, err := store.Put(name, idx)
	if err != nil {
		return err
	}
	renderSnapshots(snapshot)
	return nil
}

// GetSnapshot prints snapshot metadata and, with --output, writes the stored
// index to a file.
func GetSnapshot(c *cli.Context) error {
	name, err := snapshotName(c)
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if !c.IsSet("output") {
		snapshot, err := store.Get(name)
		if err != nil {
			return err
		}
		renderSnapshots(snapshot)
		return nil
	}

	snapshot, data, err := store.Read(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.String("output"), data, 0644); err != nil {
		return err
	}
	renderSnapshots(snapshot)
	return nil
}

func ListSnapshots(c *cli.Context) error {
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.List()
	if err != nil {
		return err
	}
	renderSnapshots(snapshots...)
	return nil
}

func DeleteSnapshot(c *cli.Context) error {
	name, err := snapshotName(c)
	if err != nil {
		return err
	}
	store, err := openStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(name); err != nil {
		return err
	}
	fmt.Printf("Deleted snapshot %s\n", name)
	return nil
}
