package storage

import (
	"bytes"
	"time"

	"github.com/marekgalovic/annindex/index"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrSnapshotNotFound    error = errors.New("Snapshot not found")
	ErrInvalidSnapshotName error = errors.New("Invalid snapshot name")
)

var (
	snapshotNamePrefix = []byte("sn")
	snapshotMetaPrefix = []byte("sm")
	snapshotDataPrefix = []byte("sd")
)

// SnapshotStore keeps serialized indices in badger under a name. Putting
// an existing name replaces the previous snapshot atomically.
type SnapshotStore struct {
	db     *badger.DB
	ownsDB bool
	log    *log.Entry
}

// OpenSnapshotStore opens (or creates) a badger database in dir. With
// inMemory set nothing is written to disk and dir is ignored.
func OpenSnapshotStore(dir string, inMemory bool) (*SnapshotStore, error) {
	logger := log.New()
	logger.SetLevel(log.GetLevel())

	options := badger.DefaultOptions(dir).WithLogger(logger)
	if inMemory {
		options = badger.DefaultOptions("").WithInMemory(true).WithLogger(logger)
	}

	db, err := badger.Open(options)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to open snapshot store")
	}

	store := NewSnapshotStore(db)
	store.ownsDB = true
	return store, nil
}

// NewSnapshotStore uses an already open database. Close does not close it.
func NewSnapshotStore(db *badger.DB) *SnapshotStore {
	return &SnapshotStore{
		db:  db,
		log: log.WithField("component", "snapshot_store"),
	}
}

func (this *SnapshotStore) Close() error {
	if !this.ownsDB {
		return nil
	}
	return this.db.Close()
}

// Put serializes idx and stores it under name.
func (this *SnapshotStore) Put(name string, idx index.Index) (*Snapshot, error) {
	if len(name) == 0 || len(name) > maxSnapshotNameLen {
		return nil, errors.Wrapf(ErrInvalidSnapshotName, "%q", name)
	}

	var buf bytes.Buffer
	if err := idx.Save(&buf); err != nil {
		return nil, errors.Wrap(err, "Failed to serialize index")
	}

	snapshot := &Snapshot{
		Id:        uuid.NewV4(),
		Name:      name,
		Kind:      index.KindOf(idx),
		Metric:    idx.Space().Kind(),
		Dim:       idx.Space().Dim(),
		Len:       idx.Len(),
		Size:      uint64(buf.Len()),
		CreatedAt: time.Now(),
	}

	err := this.db.Update(func(txn *badger.Txn) error {
		if previous, err := this.getId(txn, name); err == nil {
			if err := this.deleteById(txn, previous); err != nil {
				return err
			}
		} else if err != ErrSnapshotNotFound {
			return err
		}

		if err := txn.Set(this.dataKey(snapshot.Id), buf.Bytes()); err != nil {
			return err
		}
		if err := txn.Set(this.metaKey(snapshot.Id), snapshot.marshal()); err != nil {
			return err
		}
		return txn.Set(this.nameKey(name), snapshot.Id.Bytes())
	})
	if err != nil {
		return nil, errors.Wrap(err, "Failed to store snapshot")
	}

	this.log.WithFields(log.Fields{"name": name, "id": snapshot.Id, "size": snapshot.Size}).Info("Stored snapshot")
	return snapshot, nil
}

func (this *SnapshotStore) Get(name string) (*Snapshot, error) {
	var snapshot *Snapshot
	err := this.db.View(func(txn *badger.Txn) error {
		id, err := this.getId(txn, name)
		if err != nil {
			return err
		}
		snapshot, err = this.getMeta(txn, id)
		return err
	})
	return snapshot, err
}

// List returns all snapshots ordered by name.
func (this *SnapshotStore) List() ([]*Snapshot, error) {
	var snapshots []*Snapshot
	err := this.db.View(func(txn *badger.Txn) error {
		iterOpt := badger.DefaultIteratorOptions
		iterOpt.Prefix = snapshotNamePrefix

		iterator := txn.NewIterator(iterOpt)
		defer iterator.Close()

		for iterator.Rewind(); iterator.Valid(); iterator.Next() {
			var id uuid.UUID
			err := iterator.Item().Value(func(val []byte) error {
				var err error
				id, err = uuid.FromBytes(val)
				return err
			})
			if err != nil {
				return err
			}

			snapshot, err := this.getMeta(txn, id)
			if err != nil {
				return err
			}
			snapshots = append(snapshots, snapshot)
		}
		return nil
	})
	return snapshots, err
}

func (this *SnapshotStore) Delete(name string) error {
	err := this.db.Update(func(txn *badger.Txn) error {
		id, err := this.getId(txn, name)
		if err != nil {
			return err
		}
		if err := this.deleteById(txn, id); err != nil {
			return err
		}
		return txn.Delete(this.nameKey(name))
	})
	if err == nil {
		this.log.WithField("name", name).Info("Deleted snapshot")
	}
	return err
}

// Read returns the serialized index stored under name.
func (this *SnapshotStore) Read(name string) (*Snapshot, []byte, error) {
	var snapshot *Snapshot
	var data []byte
	err := this.db.View(func(txn *badger.Txn) error {
		id, err := this.getId(txn, name)
		if err != nil {
			return err
		}
		if snapshot, err = this.getMeta(txn, id); err != nil {
			return err
		}

		item, err := txn.Get(this.dataKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(ErrSnapshotNotFound, "missing data of %s", id)
		} else if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	return snapshot, data, err
}

func (this *SnapshotStore) LoadHnsw(name string, options ...index.HnswOption) (*index.Hnsw, *Snapshot, error) {
	snapshot, data, err := this.Read(name)
	if err != nil {
		return nil, nil, err
	}
	s, err := snapshot.Space()
	if err != nil {
		return nil, nil, err
	}

	idx, err := index.LoadHnsw(bytes.NewReader(data), s, options...)
	if err != nil {
		return nil, nil, err
	}
	return idx, snapshot, nil
}

func (this *SnapshotStore) LoadBruteforce(name string) (*index.Bruteforce, *Snapshot, error) {
	snapshot, data, err := this.Read(name)
	if err != nil {
		return nil, nil, err
	}
	s, err := snapshot.Space()
	if err != nil {
		return nil, nil, err
	}

	idx, err := index.LoadBruteforce(bytes.NewReader(data), s)
	if err != nil {
		return nil, nil, err
	}
	return idx, snapshot, nil
}

func (this *SnapshotStore) getId(txn *badger.Txn, name string) (uuid.UUID, error) {
	item, err := txn.Get(this.nameKey(name))
	if err == badger.ErrKeyNotFound {
		return uuid.Nil, ErrSnapshotNotFound
	} else if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = item.Value(func(val []byte) error {
		id, err = uuid.FromBytes(val)
		return err
	})
	return id, err
}

func (this *SnapshotStore) getMeta(txn *badger.Txn, id uuid.UUID) (*Snapshot, error) {
	item, err := txn.Get(this.metaKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrapf(ErrSnapshotNotFound, "missing metadata of %s", id)
	} else if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{}
	err = item.Value(func(val []byte) error {
		return snapshot.unmarshal(val)
	})
	return snapshot, err
}

func (this *SnapshotStore) deleteById(txn *badger.Txn, id uuid.UUID) error {
	if err := txn.Delete(this.dataKey(id)); err != nil {
		return err
	}
	return txn.Delete(this.metaKey(id))
}

func (this *SnapshotStore) nameKey(name string) []byte {
	b := make([]byte, len(snapshotNamePrefix)+len(name))
	copy(b, snapshotNamePrefix)
	copy(b[len(snapshotNamePrefix):], name)
	return b
}

func (this *SnapshotStore) metaKey(id uuid.UUID) []byte {
	b := make([]byte, 18)
	copy(b[0:2], snapshotMetaPrefix)
	copy(b[2:18], id.Bytes())
	return b
}

func (this *SnapshotStore) dataKey(id uuid.UUID) []byte {
	b := make([]byte, 18)
	copy(b[0:2], snapshotDataPrefix)
	copy(b[2:18], id.Bytes())
	return b
}
