// Package envstore abstracts the environment variables a scoped run mutates, so that the process environment can be
// swapped for an in-memory map.
package envstore

import (
	"os"
	"sort"
	"strings"

	"github.com/ActiveState/rtscope/internal/errs"
)

// Snapshot is a full copy of the variables held by a Store
type Snapshot map[string]string

// Keys returns the variable names in the snapshot, sorted
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Environ returns the snapshot in os.Environ() form, sorted by key
func (s Snapshot) Environ() []string {
	result := make([]string, 0, len(s))
	for _, k := range s.Keys() {
		result = append(result, k+"="+s[k])
	}
	return result
}

// Diff returns the variables of s that are new or hold a different value than in base
func (s Snapshot) Diff(base Snapshot) Snapshot {
	result := Snapshot{}
	for k, v := range s {
		if bv, ok := base[k]; !ok || bv != v {
			result[k] = v
		}
	}
	return result
}

// Store holds environment variables
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Unset(key string) error
	// Snapshot returns a copy of all variables
	Snapshot() Snapshot
	// Restore replaces the variables with the given snapshot, removing any variable that it does not hold
	Restore(Snapshot) error
}

// AppendPath appends path to the path list held in key
func AppendPath(s Store, key, path string) error {
	current, _ := s.Get(key)
	if current == "" {
		return s.Set(key, path)
	}
	return s.Set(key, current+string(os.PathListSeparator)+path)
}

// PrependPath prepends path to the path list held in key
func PrependPath(s Store, key, path string) error {
	current, _ := s.Get(key)
	if current == "" {
		return s.Set(key, path)
	}
	return s.Set(key, path+string(os.PathListSeparator)+current)
}

// PathList returns the entries of the path list held in key
func PathList(s Store, key string) []string {
	current, _ := s.Get(key)
	if current == "" {
		return []string{}
	}
	return strings.Split(current, string(os.PathListSeparator))
}

// restore brings store in line with snapshot by unsetting the variables it does not hold and setting those that
// differ
func restore(store Store, snapshot Snapshot) error {
	current := store.Snapshot()
	var rerr error
	for _, k := range current.Keys() {
		if _, ok := snapshot[k]; !ok {
			if err := store.Unset(k); err != nil {
				rerr = errs.Pack(rerr, errs.Wrap(err, "Could not unset %s", k))
			}
		}
	}
	for _, k := range snapshot.Keys() {
		if v, ok := current[k]; ok && v == snapshot[k] {
			continue
		}
		if err := store.Set(k, snapshot[k]); err != nil {
			rerr = errs.Pack(rerr, errs.Wrap(err, "Could not set %s", k))
		}
	}
	return rerr
}
