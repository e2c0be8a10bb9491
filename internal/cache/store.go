package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/skimreader/skim/reader"
)

// defaultMemoryCapacity bounds the in-memory layer. Chunk lists are small,
// so this holds hundreds of documents.
const defaultMemoryCapacity = 4 << 20

// chunkRecord is the serialized form of a chunk, matching the wire frame.
type chunkRecord struct {
	Text       string  `json:"text"`
	Complexity float64 `json:"complexity"`
}

// Key returns the cache key for a document: the hex SHA-256 of its text.
func Key(document string) string {
	sum := sha256.Sum256([]byte(document))
	return hex.EncodeToString(sum[:])
}

// ChunkStore caches segmented chunk lists by document content. The memory
// layer absorbs repeated reads within a session; the disk layer survives
// restarts. A nil disk layer degrades to memory-only.
type ChunkStore struct {
	mem  *MemoryCache
	disk *DiskCache
}

// NewChunkStore creates a two-layer chunk store under dir. An empty dir
// disables the disk layer.
func NewChunkStore(dir string) (*ChunkStore, error) {
	store := &ChunkStore{mem: NewMemoryCache(defaultMemoryCapacity)}
	if dir != "" {
		disk, err := NewDiskCache(dir)
		if err != nil {
			return nil, err
		}
		store.disk = disk
	}
	return store, nil
}

// Get returns the cached chunk list for a document. Disk hits are
// promoted into the memory layer.
func (s *ChunkStore) Get(document string) ([]reader.Chunk, bool) {
	key := Key(document)

	data, ok := s.mem.Get(key)
	if !ok && s.disk != nil {
		data, ok = s.disk.Get(key)
		if ok {
			if err := s.mem.Put(key, data); err != nil {
				log.Debug("cache promotion failed", "err", err)
			}
		}
	}
	if !ok {
		return nil, false
	}

	chunks, err := decodeChunks(data)
	if err != nil {
		// Stale or corrupt entry; drop it from both layers.
		s.mem.Delete(key)
		if s.disk != nil {
			s.disk.Delete(key)
		}
		log.Debug("dropping corrupt cache entry", "key", key, "err", err)
		return nil, false
	}
	return chunks, true
}

// Put stores the chunk list for a document in both layers.
func (s *ChunkStore) Put(document string, chunks []reader.Chunk) error {
	data, err := encodeChunks(chunks)
	if err != nil {
		return fmt.Errorf("encoding chunks: %w", err)
	}

	key := Key(document)
	if err := s.mem.Put(key, data); err != nil {
		log.Debug("memory cache write failed", "err", err)
	}
	if s.disk != nil {
		return s.disk.Put(key, data)
	}
	return nil
}

func encodeChunks(chunks []reader.Chunk) ([]byte, error) {
	records := make([]chunkRecord, len(chunks))
	for i, c := range chunks {
		records[i] = chunkRecord{Text: c.Text, Complexity: c.Complexity}
	}
	return json.Marshal(records)
}

func decodeChunks(data []byte) ([]reader.Chunk, error) {
	var records []chunkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	chunks := make([]reader.Chunk, len(records))
	for i, r := range records {
		chunks[i] = reader.Chunk{Text: r.Text, Complexity: r.Complexity}
	}
	return chunks, nil
}
