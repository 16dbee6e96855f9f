package allocator

import (
	"fmt"
	"sync"

	"github.com/Djoppie/Djoppie-Inventory-sub000/internal/metrics"
	custom_error "github.com/Djoppie/Djoppie-Inventory-sub000/pkg/errors"
	"github.com/Djoppie/Djoppie-Inventory-sub000/pkg/metadata"
)

// maxAttempts bounds the optimistic retry loop. A retry only happens when a
// concurrent writer outside this process claimed the same code first.
const maxAttempts = 3

// CodeStore reads the highest numeric code suffix already persisted for a
// prefix within an inclusive suffix range; zero when none exists.
type CodeStore interface {
	MaxCodeSuffix(prefix string, lo, hi int) (int, error)
}

// ClaimFunc reserves the candidate code, normally by inserting the asset
// row. Returning *custom_error.CodeConflictError makes the allocator re-read
// the max and try the next number; any other error aborts the allocation.
type ClaimFunc func(code string) error

// Allocator hands out the next unused asset code for a prefix. The read-max
// and claim steps run under a per-prefix lock, and the unique constraint on
// the code column covers writers this process cannot see.
type Allocator struct {
	store CodeStore

	mu          sync.Mutex
	prefixLocks map[string]*sync.Mutex
}

func New(store CodeStore) *Allocator {
	return &Allocator{
		store:       store,
		prefixLocks: make(map[string]*sync.Mutex),
	}
}

// Allocate returns the next free code for the prefix and kind, with the
// claim applied. Normal assets draw from [1, 8999], dummy assets from
// [9000, ...). Codes never wrap around: a full range is a typed error.
func (a *Allocator) Allocate(rawPrefix string, dummy bool, claim ClaimFunc) (string, error) {
	prefix, ok := metadata.NormalizePrefix(rawPrefix)
	if !ok {
		return "", &custom_error.InvalidPrefixError{Prefix: rawPrefix}
	}

	lock := a.lockFor(prefix)
	lock.Lock()
	defer lock.Unlock()

	floor, ceil := metadata.CodeRange(dummy)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			metrics.ObserveAllocatorRetry()
		}

		highest, err := a.store.MaxCodeSuffix(prefix, floor, ceil)
		if err != nil {
			return "", fmt.Errorf("failed to read highest code suffix for %s: %w", prefix, err)
		}

		next := highest + 1
		if next < floor {
			next = floor
		}
		if next > ceil {
			return "", &custom_error.RangeExhaustedError{Prefix: prefix, Floor: floor, Ceil: ceil}
		}

		code := metadata.NewAssetCode(prefix, next).String()
		err = claim(code)
		if err == nil {
			return code, nil
		}
		if _, conflict := err.(*custom_error.CodeConflictError); !conflict {
			return "", err
		}
		lastErr = err
	}

	return "", lastErr
}

func (a *Allocator) lockFor(prefix string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock, ok := a.prefixLocks[prefix]
	if !ok {
		lock = &sync.Mutex{}
		a.prefixLocks[prefix] = lock
	}
	return lock
}
