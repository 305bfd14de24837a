package backend

import (
	"sync"

	"github.com/brodalo/gogit/ginternals/config"
	"github.com/brodalo/gogit/internal/cache"
	"github.com/brodalo/gogit/internal/syncutil"
	"github.com/spf13/afero"
)

// objectCacheSize is the maximum amount of objects kept in memory by
// the LRU cache backing the odb.
const objectCacheSize = 256

// Backend is the afero-backed, filesystem implementation of the
// Backend interface. It stores loose objects and references using
// the same on-disk layout as a regular git repository.
type Backend struct {
	fs     afero.Fs
	config *config.Config

	cache    *cache.LRU
	objectMu *syncutil.NamedMutex

	// refs holds the raw (unresolved) content of every known reference,
	// keyed by its full UNIX-style name (ex. "refs/heads/master").
	refs sync.Map
	// looseObjects tracks which oids are known to exist as loose
	// objects on disk.
	looseObjects sync.Map
}

// NewFS returns a Backend that reads/writes the odb described by cfg.
func NewFS(cfg *config.Config) (*Backend, error) {
	b := &Backend{
		fs:       cfg.FS,
		config:   cfg,
		cache:    cache.NewLRU(objectCacheSize),
		objectMu: syncutil.NewNamedMutex(uint32(objectCacheSize)),
	}
	if b.fs == nil {
		b.fs = afero.NewOsFs()
	}

	if err := b.loadLooseObjects(); err != nil {
		return nil, err
	}
	if err := b.loadRefs(); err != nil {
		return nil, err
	}
	return b, nil
}

// Path returns the path to the .git directory backing this Backend
func (b *Backend) Path() string {
	return b.config.GitDirPath
}

// ObjectsPath returns the path to the directory containing the loose
// objects backing this Backend
func (b *Backend) ObjectsPath() string {
	return b.config.ObjectDirPath
}

// Close frees the resources held by the backend
func (b *Backend) Close() error {
	b.cache.Clear()
	return nil
}
