// Package formvars is an in-memory stand-in for the form runtime's named
// variables: the caller writes inputs into it and the dispatcher writes its
// result slot back.
package formvars

import "sync"

type Variables struct {
	mu   sync.RWMutex
	vals map[string]string
}

func New(initial map[string]string) *Variables {
	vals := make(map[string]string, len(initial))
	for k, v := range initial {
		vals[k] = v
	}
	return &Variables{vals: vals}
}

// Get returns "" for unset names, like an unset form variable.
func (v *Variables) Get(name string) string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vals[name]
}

func (v *Variables) Set(name, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vals[name] = value
}

func (v *Variables) Lookup(name string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	val, ok := v.vals[name]
	return val, ok
}
