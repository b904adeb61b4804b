package selection

import "sync"

// registry holds the listener membership for both fire modes. It uses
// copy-on-write slices: mutation replaces the slice under the lock, so a
// snapshot handed out to a fan-out is never modified and can be iterated
// without holding any lock.
type registry struct {
	mu        sync.RWMutex
	immediate []listenerEntry
	deferred  []listenerEntry
}

func newRegistry() *registry {
	return &registry{}
}

// add inserts the entry into the given mode's list if absent.
// Returns false if an equal entry was already registered.
func (r *registry) add(mode FireMode, entry listenerEntry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.list(mode)
	for _, e := range *list {
		if e == entry {
			return false
		}
	}

	next := make([]listenerEntry, len(*list), len(*list)+1)
	copy(next, *list)
	*list = append(next, entry)
	return true
}

// remove deletes the entry from both mode lists. Removing an entry that
// was never registered is a no-op.
func (r *registry) remove(entry listenerEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.immediate = removed(r.immediate, entry)
	r.deferred = removed(r.deferred, entry)
}

// snapshot returns the current membership of the given mode. The returned
// slice is immutable; concurrent add/remove calls build new slices and
// never touch it.
func (r *registry) snapshot(mode FireMode) []listenerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if mode == FireImmediate {
		return r.immediate
	}
	return r.deferred
}

// count returns the number of entries registered under the given mode.
func (r *registry) count(mode FireMode) int {
	return len(r.snapshot(mode))
}

// clear removes all entries from both lists.
func (r *registry) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.immediate = nil
	r.deferred = nil
}

// list returns a pointer to the slice backing the given mode.
// Caller must hold r.mu.
func (r *registry) list(mode FireMode) *[]listenerEntry {
	if mode == FireImmediate {
		return &r.immediate
	}
	return &r.deferred
}

// removed returns a copy of list without entry, or list itself when the
// entry is absent.
func removed(list []listenerEntry, entry listenerEntry) []listenerEntry {
	idx := -1
	for i, e := range list {
		if e == entry {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list
	}
	if len(list) == 1 {
		return nil
	}

	next := make([]listenerEntry, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	return next
}
