package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/hammamikhairi/robobarista/internal/logger"
)

// AudioCache is a thread-safe two-tier cache (in-memory + filesystem) for
// synthesized audio, keyed by sha256(voice + ":" + ssml). With random
// effects on most plans are unique; plain plans such as the menu listing
// hit the cache on every run.
//
//	diskWrite=true  -> reads from mem, then disk; writes to both.
//	diskWrite=false -> reads from mem, then disk; writes to mem only.
type AudioCache struct {
	mu        sync.RWMutex
	entries   map[string][]byte // hash -> WAV bytes
	log       *logger.Logger
	voice     string
	cacheDir  string // empty = no disk layer
	diskWrite bool
	hits      int64
	misses    int64
}

// NewAudioCache creates an audio cache. An empty cacheDir disables the
// disk layer entirely.
func NewAudioCache(voice, cacheDir string, diskWrite bool, log *logger.Logger) *AudioCache {
	c := &AudioCache{
		entries:   make(map[string][]byte),
		log:       log,
		voice:     voice,
		cacheDir:  cacheDir,
		diskWrite: diskWrite,
	}

	if cacheDir != "" && diskWrite {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			log.Error("cache: failed to create cache dir %s: %v", cacheDir, err)
		}
	}

	return c
}

// Get returns cached audio for the document, checking memory then disk.
// Disk hits are promoted to memory.
func (c *AudioCache) Get(ssml string) ([]byte, bool) {
	key := c.hashKey(ssml)

	c.mu.RLock()
	data, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok && c.cacheDir != "" {
		data, ok = c.readDisk(key)
		if ok {
			c.mu.Lock()
			c.entries[key] = data
			c.mu.Unlock()
			c.log.Debug("cache hit (disk): %s (%s)", key[:12], humanize.Bytes(uint64(len(data))))
		}
	}

	c.mu.Lock()
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	c.mu.Unlock()

	return data, ok
}

// Put stores audio in memory, and on disk when diskWrite is enabled.
func (c *AudioCache) Put(ssml string, audio []byte) {
	key := c.hashKey(ssml)

	c.mu.Lock()
	c.entries[key] = audio
	size := len(c.entries)
	c.mu.Unlock()

	c.log.Debug("cache store (mem): %s (%s, %d entries)", key[:12], humanize.Bytes(uint64(len(audio))), size)

	if c.cacheDir != "" && c.diskWrite {
		c.writeDisk(key, audio)
	}
}

// Len returns the number of in-memory entries.
func (c *AudioCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *AudioCache) hashKey(ssml string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + ssml))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) diskPath(key string) string {
	return filepath.Join(c.cacheDir, key+".wav")
}

func (c *AudioCache) readDisk(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.diskPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *AudioCache) writeDisk(key string, audio []byte) {
	path := c.diskPath(key)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		c.log.Error("cache: disk write failed for %s: %v", path, err)
		return
	}
	c.log.Debug("cache store (disk): %s (%s)", key[:12], humanize.Bytes(uint64(len(audio))))
}
