package board

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"sort"
	"sync"

	"github.com/xvierd/focusdial/internal/domain"
	"github.com/xvierd/focusdial/internal/ports"
)

// BlockDevice is the subset of the MCU flash the settings store needs.
// TinyGo's machine.Flash satisfies it.
type BlockDevice interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	EraseBlockSize() int64
	EraseBlocks(start, length int64) error
}

var kvMagic = [4]byte{'F', 'D', 'K', 'V'}

const kvMaxKey = 32

// FlashStore keeps integer settings in the first erase block of dev.
//
// Layout: magic, uint16 entry count, entries of (uint8 key length, key,
// int32 value), then a CRC32 of everything before it. All little endian.
type FlashStore struct {
	mu     sync.Mutex
	dev    BlockDevice
	values map[string]int32
	err    error
}

// Ensure FlashStore implements ports.SettingsRepository.
var _ ports.SettingsRepository = (*FlashStore)(nil)

// NewFlashStore reads the current block from dev. A never-written block
// holds no keys. A damaged block is not fatal: every LoadInt reports it
// until the next SaveInt rewrites it.
func NewFlashStore(dev BlockDevice) *FlashStore {
	s := &FlashStore{dev: dev, values: map[string]int32{}}
	s.values, s.err = s.read()
	if errors.Is(s.err, errBlank) {
		s.err = nil
	}
	if s.values == nil {
		s.values = map[string]int32{}
	}
	return s
}

// LoadInt implements ports.SettingsRepository.
func (s *FlashStore) LoadInt(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, &domain.PersistenceError{Key: key, Err: s.err}
	}
	v, ok := s.values[key]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return int(v), nil
}

// SaveInt implements ports.SettingsRepository.
func (s *FlashStore) SaveInt(_ context.Context, key string, v int) error {
	if len(key) == 0 || len(key) > kvMaxKey {
		return &domain.PersistenceError{Key: key, Err: fmt.Errorf("key length %d out of range", len(key))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]int32, len(s.values)+1)
	for k, val := range s.values {
		next[k] = val
	}
	next[key] = int32(v)

	if err := s.write(next); err != nil {
		return &domain.PersistenceError{Key: key, Err: err}
	}
	s.values = next
	s.err = nil
	return nil
}

func (s *FlashStore) read() (map[string]int32, error) {
	size := s.dev.EraseBlockSize()
	buf := make([]byte, size)
	if _, err := s.dev.ReadAt(buf, 0); err != nil {
		return nil, fmt.Errorf("failed to read flash: %w", err)
	}
	return decodeKV(buf)
}

func (s *FlashStore) write(values map[string]int32) error {
	data := encodeKV(values)
	size := s.dev.EraseBlockSize()
	if int64(len(data)) > size {
		return fmt.Errorf("settings need %d bytes, block holds %d", len(data), size)
	}

	if err := s.dev.EraseBlocks(0, 1); err != nil {
		return fmt.Errorf("failed to erase flash: %w", err)
	}
	if _, err := s.dev.WriteAt(data, 0); err != nil {
		return fmt.Errorf("failed to write flash: %w", err)
	}
	return nil
}

var errBlank = errors.New("flash block is blank")

func encodeKV(values map[string]int32) []byte {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b bytes.Buffer
	b.Write(kvMagic[:])
	_ = binary.Write(&b, binary.LittleEndian, uint16(len(keys)))
	for _, k := range keys {
		b.WriteByte(byte(len(k)))
		b.WriteString(k)
		_ = binary.Write(&b, binary.LittleEndian, values[k])
	}
	_ = binary.Write(&b, binary.LittleEndian, crc32.ChecksumIEEE(b.Bytes()))
	return b.Bytes()
}

func decodeKV(buf []byte) (map[string]int32, error) {
	if len(buf) < 4 || !bytes.Equal(buf[:4], kvMagic[:]) {
		if bytes.Count(buf, []byte{0xFF}) == len(buf) {
			return nil, errBlank
		}
		return nil, errors.New("settings block has no header")
	}

	r := bytes.NewReader(buf[4:])
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("settings block truncated: %w", err)
	}

	values := make(map[string]int32, n)
	for i := 0; i < int(n); i++ {
		kl, err := r.ReadByte()
		if err != nil || kl == 0 || kl > kvMaxKey {
			return nil, fmt.Errorf("settings entry %d has a bad key", i)
		}
		key := make([]byte, kl)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("settings entry %d truncated: %w", i, err)
		}
		var v int32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return nil, fmt.Errorf("settings entry %d truncated: %w", i, err)
		}
		values[string(key)] = v
	}

	end := len(buf) - r.Len()
	var sum uint32
	if err := binary.Read(r, binary.LittleEndian, &sum); err != nil {
		return nil, fmt.Errorf("settings checksum missing: %w", err)
	}
	if sum != crc32.ChecksumIEEE(buf[:end]) {
		return nil, errors.New("settings checksum mismatch")
	}
	return values, nil
}
