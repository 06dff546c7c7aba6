package index

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/brinevcs/magicrepos/pkg/object"
)

const (
	magic          = "MRIX"
	version uint32 = 1

	// fixedEntryHeader is mtime_s(8) + mtime_ns(4) + size(4) + digest(32) + flags(2).
	fixedEntryHeader = 8 + 4 + 4 + 32 + 2
	checksumSize     = sha256.Size
	maxFlagsLen      = 0xFFF
)

// Entry is one row of the staging index.
type Entry struct {
	MtimeSec  uint64
	MtimeNsec uint32
	Size      uint32
	Hash      object.Hash
	Path      string // "/"-separated, unique within an index
}

// Index is the staging area: entries sorted and deduplicated by path.
type Index struct {
	entries []Entry // kept sorted by Path
}

// New returns an empty index.
func New() *Index {
	return &Index{}
}

// Entries returns the entries in ascending ordinal path order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Put inserts e, replacing any existing entry with the same path, and
// otherwise preserving ascending ordinal order.
func (ix *Index) Put(e Entry) {
	i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].Path >= e.Path })
	if i < len(ix.entries) && ix.entries[i].Path == e.Path {
		ix.entries[i] = e
		return
	}
	ix.entries = append(ix.entries, Entry{})
	copy(ix.entries[i+1:], ix.entries[i:])
	ix.entries[i] = e
}

// Remove deletes the entry at path, if present.
func (ix *Index) Remove(path string) {
	i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].Path >= path })
	if i < len(ix.entries) && ix.entries[i].Path == path {
		ix.entries = append(ix.entries[:i], ix.entries[i+1:]...)
	}
}

// Lookup returns the entry at path, if present.
func (ix *Index) Lookup(path string) (Entry, bool) {
	i := sort.Search(len(ix.entries), func(i int) bool { return ix.entries[i].Path >= path })
	if i < len(ix.entries) && ix.entries[i].Path == path {
		return ix.entries[i], true
	}
	return Entry{}, false
}

func encodeEntry(e Entry) []byte {
	flags := uint16(len(e.Path))
	if flags > maxFlagsLen {
		flags = maxFlagsLen
	}

	var buf bytes.Buffer
	var fixed [fixedEntryHeader]byte
	binary.BigEndian.PutUint64(fixed[0:8], e.MtimeSec)
	binary.BigEndian.PutUint32(fixed[8:12], e.MtimeNsec)
	binary.BigEndian.PutUint32(fixed[12:16], e.Size)
	copy(fixed[16:48], e.Hash[:])
	binary.BigEndian.PutUint16(fixed[48:50], flags)
	buf.Write(fixed[:])
	buf.WriteString(e.Path)
	buf.WriteByte(0)

	for buf.Len()%8 != 0 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// decodeEntry parses one entry starting at data[0] and returns it along
// with the number of bytes consumed.
func decodeEntry(data []byte) (Entry, int, error) {
	if len(data) < fixedEntryHeader+1 {
		return Entry{}, 0, fmt.Errorf("index: truncated entry: %w", ErrCorruptIndex)
	}
	var e Entry
	e.MtimeSec = binary.BigEndian.Uint64(data[0:8])
	e.MtimeNsec = binary.BigEndian.Uint32(data[8:12])
	e.Size = binary.BigEndian.Uint32(data[12:16])
	copy(e.Hash[:], data[16:48])
	// flags at data[48:50] is a cache hint, not semantically inspected here.

	rest := data[fixedEntryHeader:]
	nul := bytes.IndexByte(rest, 0)
	if nul < 0 {
		return Entry{}, 0, fmt.Errorf("index: entry path missing terminator: %w", ErrCorruptIndex)
	}
	e.Path = string(rest[:nul])

	total := fixedEntryHeader + nul + 1
	for total%8 != 0 {
		total++
	}
	if total > len(data) {
		return Entry{}, 0, fmt.Errorf("index: truncated entry padding: %w", ErrCorruptIndex)
	}
	return e, total, nil
}

// Save writes the full index file to path: header, entries in ascending
// ordinal path order, then a trailing SHA-256 checksum over everything
// preceding it. The write goes to a sibling temp file and is renamed into
// place so readers never observe a torn footer.
func (ix *Index) Save(path string) error {
	var buf bytes.Buffer
	buf.WriteString(magic)
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:4], version)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(len(ix.entries)))
	buf.Write(hdr[:])
	for _, e := range ix.entries {
		buf.Write(encodeEntry(e))
	}

	sum := sha256.Sum256(buf.Bytes())
	buf.Write(sum[:])

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("index: save mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-index-*")
	if err != nil {
		return fmt.Errorf("index: save tmpfile: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("index: save write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("index: save close: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("index: save rename: %w", err)
	}
	return nil
}

// Load reads and validates an index file.
func Load(path string) (*Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("index: load: %w", err)
	}
	if len(raw) < len(magic)+8+checksumSize {
		return nil, fmt.Errorf("index: truncated file: %w", ErrCorruptIndex)
	}
	if string(raw[:len(magic)]) != magic {
		return nil, fmt.Errorf("index: bad magic: %w", ErrCorruptIndex)
	}

	body := raw[:len(raw)-checksumSize]
	wantSum := raw[len(raw)-checksumSize:]
	gotSum := sha256.Sum256(body)
	if !bytes.Equal(gotSum[:], wantSum) {
		return nil, fmt.Errorf("index: checksum mismatch: %w", ErrCorruptIndex)
	}

	pos := len(magic)
	gotVersion := binary.BigEndian.Uint32(body[pos : pos+4])
	pos += 4
	if gotVersion != version {
		return nil, fmt.Errorf("index: unsupported version %d: %w", gotVersion, ErrCorruptIndex)
	}
	count := binary.BigEndian.Uint32(body[pos : pos+4])
	pos += 4

	ix := New()
	for i := uint32(0); i < count; i++ {
		e, n, err := decodeEntry(body[pos:])
		if err != nil {
			return nil, err
		}
		ix.entries = append(ix.entries, e)
		pos += n
	}
	if pos != len(body) {
		return nil, fmt.Errorf("index: trailing garbage after entries: %w", ErrCorruptIndex)
	}
	return ix, nil
}
