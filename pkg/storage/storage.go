// Package storage abstracts where exported files land. Two drivers ship:
// "local" writes under a root directory, "s3" targets any S3-compatible
// bucket. Report exports go through the default disk so a store can start
// on local files and move to a bucket by flipping STORAGE_DISK.
package storage

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spectraretail/spectra-pos/config"
	"github.com/spectraretail/spectra-pos/pkg/logger"
)

// Disk is a filesystem driver.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	GetStream(path string) (io.ReadCloser, error)
	Exists(path string) bool
	Delete(path string) error
	// Files lists the files directly under directory.
	Files(directory string) ([]string, error)
	LastModified(path string) (time.Time, error)
	// URL returns where the file can be fetched from.
	URL(path string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. Call once at startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.Get("STORAGE_DISK", "local")
	disks["local"] = newLocalDisk()

	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("default storage disk not configured, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk and panics when it was never configured, which
// points at a boot-order bug rather than a runtime condition.
func Use(name string) Disk {
	mu.RLock()
	defer mu.RUnlock()

	d, ok := disks[name]
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom driver, mainly for tests. The first disk
// registered becomes the default when Connect has not run.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	defer mu.Unlock()
	disks[name] = d
	if defaultDisk == "" {
		defaultDisk = name
	}
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	mu.RLock()
	name := defaultDisk
	mu.RUnlock()
	return Use(name)
}

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return Default().Put(path, content) }

// Get reads path from the default disk.
func Get(path string) ([]byte, error) { return Default().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return Default().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// Files lists the files directly under directory on the default disk.
func Files(directory string) ([]string, error) { return Default().Files(directory) }

// URL returns the fetch URL for path on the default disk.
func URL(path string) string { return Default().URL(path) }
