package storage

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/marekgalovic/annindex/index/space"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

const maxSnapshotNameLen = 1 << 10

// Snapshot describes a serialized index kept in a SnapshotStore.
type Snapshot struct {
	Id        uuid.UUID
	Name      string
	Kind      string
	Metric    space.Kind
	Dim       uint
	Len       int
	Size      uint64
	CreatedAt time.Time
}

func (this *Snapshot) String() string {
	return fmt.Sprintf("Snapshot(name: %s, id: %s, kind: %s, metric: %s, dim: %d, len: %d)", this.Name, this.Id, this.Kind, this.Metric, this.Dim, this.Len)
}

// Space recreates the space the snapshot was taken with.
func (this *Snapshot) Space() (space.Space, error) {
	return space.New(this.Metric, this.Dim)
}

func (this *Snapshot) marshal() []byte {
	var buf bytes.Buffer
	buf.Write(this.Id.Bytes())
	writeString(&buf, this.Name)
	writeString(&buf, this.Kind)
	binary.Write(&buf, binary.BigEndian, uint8(this.Metric))
	binary.Write(&buf, binary.BigEndian, uint32(this.Dim))
	binary.Write(&buf, binary.BigEndian, uint64(this.Len))
	binary.Write(&buf, binary.BigEndian, this.Size)
	binary.Write(&buf, binary.BigEndian, this.CreatedAt.UnixNano())
	return buf.Bytes()
}

func (this *Snapshot) unmarshal(data []byte) error {
	r := bytes.NewReader(data)

	var id [uuid.Size]byte
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return errors.Wrap(err, "Invalid snapshot id")
	}
	this.Id = uuid.UUID(id)

	var err error
	if this.Name, err = readString(r); err != nil {
		return err
	}
	if this.Kind, err = readString(r); err != nil {
		return err
	}

	var metric uint8
	var dim uint32
	var length uint64
	var createdAt int64
	for _, value := range []interface{}{&metric, &dim, &length, &this.Size, &createdAt} {
		if err := binary.Read(r, binary.BigEndian, value); err != nil {
			return errors.Wrap(err, "Invalid snapshot metadata")
		}
	}
	this.Metric = space.Kind(metric)
	this.Dim = uint(dim)
	this.Len = int(length)
	this.CreatedAt = time.Unix(0, createdAt)
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	binary.Write(buf, binary.BigEndian, uint16(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.BigEndian, &n); err != nil {
		return "", errors.Wrap(err, "Invalid snapshot metadata")
	}
	if int(n) > r.Len() {
		return "", errors.New("Invalid snapshot metadata: string exceeds record")
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", errors.Wrap(err, "Invalid snapshot metadata")
	}
	return string(b), nil
}
