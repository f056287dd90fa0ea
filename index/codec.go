package index

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/marekgalovic/annindex/index/space"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

const formatVersion uint32 = 1

var (
	hnswMagic       = [4]byte{'H', 'N', 'S', 'W'}
	bruteforceMagic = [4]byte{'B', 'R', 'U', 'T'}
)

// checksumWriter buffers big endian output and hashes everything written
// through it. close appends the xxhash64 trailer.
type checksumWriter struct {
	buf  *bufio.Writer
	hash *xxhash.Digest
	w    io.Writer
}

func newChecksumWriter(w io.Writer) *checksumWriter {
	buf := bufio.NewWriter(w)
	hash := xxhash.New()
	return &checksumWriter{
		buf:  buf,
		hash: hash,
		w:    io.MultiWriter(buf, hash),
	}
}

func (this *checksumWriter) Write(p []byte) (int, error) {
	return this.w.Write(p)
}

func (this *checksumWriter) write(values ...interface{}) error {
	for _, value := range values {
		if err := binary.Write(this.w, binary.BigEndian, value); err != nil {
			return err
		}
	}
	return nil
}

func (this *checksumWriter) close() error {
	if err := binary.Write(this.buf, binary.BigEndian, this.hash.Sum64()); err != nil {
		return err
	}
	return this.buf.Flush()
}

type checksumReader struct {
	buf  *bufio.Reader
	hash *xxhash.Digest
	r    io.Reader
}

func newChecksumReader(r io.Reader) *checksumReader {
	buf := bufio.NewReader(r)
	hash := xxhash.New()
	return &checksumReader{
		buf:  buf,
		hash: hash,
		r:    io.TeeReader(buf, hash),
	}
}

func (this *checksumReader) Read(p []byte) (int, error) {
	return this.r.Read(p)
}

func (this *checksumReader) read(values ...interface{}) error {
	for _, value := range values {
		if err := binary.Read(this.r, binary.BigEndian, value); err != nil {
			return readError(err)
		}
	}
	return nil
}

func (this *checksumReader) verify() error {
	expected := this.hash.Sum64()

	var stored uint64
	if err := binary.Read(this.buf, binary.BigEndian, &stored); err != nil {
		return readError(err)
	}
	if stored != expected {
		return corrupt("Checksum mismatch: stored %x, computed %x", stored, expected)
	}
	return nil
}

// readError reports truncated input as a corrupt file and wraps anything else.
func readError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return corrupt("Unexpected end of file")
	}
	return errors.Wrap(err, "Failed to read index")
}

func writeHeader(w *checksumWriter, magic [4]byte, s space.Space) error {
	return w.write(magic, formatVersion, uint32(s.Dim()), uint8(s.Kind()))
}

func readHeader(r *checksumReader, magic [4]byte, s space.Space) error {
	var storedMagic [4]byte
	var version uint32
	var dim uint32
	var kind uint8
	if err := r.read(&storedMagic, &version, &dim, &kind); err != nil {
		return err
	}

	if storedMagic != magic {
		return corrupt("Invalid magic %q, expected %q", storedMagic[:], magic[:])
	}
	if version != formatVersion {
		return corrupt("Unsupported format version %d", version)
	}
	if uint(dim) != s.Dim() {
		return corrupt("Dimension mismatch: file has %d, space has %d", dim, s.Dim())
	}
	if space.Kind(kind) != s.Kind() {
		return corrupt("Space mismatch: file has %s, space is %s", space.Kind(kind), s.Kind())
	}
	return nil
}

// Header describes a persisted index without loading it.
type Header struct {
	Kind   string
	Dim    uint
	Metric space.Kind
}

func (this *Header) Space() (space.Space, error) {
	return space.New(this.Metric, this.Dim)
}

// ReadHeader decodes the leading header of a file written by Hnsw.Save or
// Bruteforce.Save.
func ReadHeader(r io.Reader) (*Header, error) {
	var magic [4]byte
	var version uint32
	var dim uint32
	var kind uint8
	for _, value := range []interface{}{&magic, &version, &dim, &kind} {
		if err := binary.Read(r, binary.BigEndian, value); err != nil {
			return nil, readError(err)
		}
	}
	if version != formatVersion {
		return nil, corrupt("Unsupported format version %d", version)
	}

	header := &Header{Dim: uint(dim), Metric: space.Kind(kind)}
	switch magic {
	case hnswMagic:
		header.Kind = hnswKind
	case bruteforceMagic:
		header.Kind = bruteforceKind
	default:
		return nil, corrupt("Invalid magic %q", magic[:])
	}
	return header, nil
}
