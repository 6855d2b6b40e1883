package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// CollisionResolver assigns final destination paths, disambiguating name
// collisions with "_N" suffixes before the extension (photo_1.jpg,
// photo_2.jpg, ...). Two sources of conflict are consulted on every call:
// the live destination listing (files already on disk, including leftovers
// from earlier runs) and the names granted during this run. A name granted
// once is never granted again within the run, even if the file that
// claimed it has since been deleted. Counters are kept per base name and
// only ever increase.
//
// Name comparison is whatever the backing filesystem does: on a
// case-insensitive filesystem the Stat-based existence check inherits
// those semantics. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	fs       afero.Fs
	owners   map[string]string // destination path → input path that claimed it
	counters map[string]int    // base destination path → next suffix to try
}

// NewCollisionResolver creates a resolver that checks existence against fs.
func NewCollisionResolver(fs afero.Fs) *CollisionResolver {
	return &CollisionResolver{
		fs:       fs,
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final path for placing input into dir under name.
// The unsuffixed name is preferred; on conflict the next free "_N"
// variant is claimed. A file may always keep its own current name.
func (cr *CollisionResolver) Resolve(input, dir, name string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	requested := filepath.Join(dir, name)
	if cr.free(input, requested) {
		cr.owners[requested] = input
		return requested
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, counter, ext))
		counter++
		if cr.free(input, candidate) {
			cr.counters[requested] = counter
			cr.owners[candidate] = input
			return candidate
		}
	}
}

// free reports whether path can be granted to input: not claimed by
// another file this run, and not already on disk (unless it is input's
// own current path). A Stat failure other than not-exist counts as
// occupied; granting a name we could not check risks an overwrite.
func (cr *CollisionResolver) free(input, path string) bool {
	if owner, claimed := cr.owners[path]; claimed {
		return owner == input
	}
	if path == input {
		return true
	}
	if _, err := cr.fs.Stat(path); err != nil {
		return errors.Is(err, fs.ErrNotExist)
	}
	return false
}
