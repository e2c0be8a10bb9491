package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// DiskCache persists zstd-compressed values across sessions, one file per
// key under the base directory. Keys are hex digests, so they are safe as
// filenames.
type DiskCache struct {
	mu       sync.Mutex
	basePath string
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
}

// NewDiskCache creates a disk cache rooted at basePath, creating the
// directory when missing.
func NewDiskCache(basePath string) (*DiskCache, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	return &DiskCache{
		basePath: basePath,
		encoder:  encoder,
		decoder:  decoder,
	}, nil
}

// Get reads and decompresses the value for key. A missing or unreadable
// entry is a miss; corrupted entries are removed.
func (dc *DiskCache) Get(key string) ([]byte, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	data, err := os.ReadFile(dc.path(key))
	if err != nil {
		return nil, false
	}

	value, err := dc.decoder.DecodeAll(data, nil)
	if err != nil {
		os.Remove(dc.path(key))
		return nil, false
	}
	return value, true
}

// Put compresses and writes the value. The write goes through a temp file
// and rename so readers never see a partial entry.
func (dc *DiskCache) Put(key string, value []byte) error {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	compressed := dc.encoder.EncodeAll(value, nil)

	path := dc.path(key)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, compressed, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("publishing cache file: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Missing entries are a no-op.
func (dc *DiskCache) Delete(key string) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	os.Remove(dc.path(key))
}

// Clear removes every entry in the cache directory.
func (dc *DiskCache) Clear() error {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(dc.basePath, "*"+fileSuffix))
	if err != nil {
		return err
	}
	for _, path := range matches {
		os.Remove(path)
	}
	return nil
}

const fileSuffix = ".json.zst"

func (dc *DiskCache) path(key string) string {
	return filepath.Join(dc.basePath, key+fileSuffix)
}
