// Package intern provides a deduplicating string pool.
//
// A Pool stores each distinct string once. Capability descriptors keep every
// string they hold in a Pool so that values reported by many output devices
// share one copy.
package intern

import "strings"

// Pool is a set of unique immutable strings.
//
// Strings returned by Intern stay valid for as long as the caller holds them;
// Release only drops the pool's index. A Pool is not safe for concurrent
// mutation. Callers serialize access, typically by running at most one
// aggregation pass per descriptor at a time.
type Pool struct {
	strings map[string]string
}

// New creates an empty pool.
func New() *Pool {
	return &Pool{}
}

// Intern returns the pool's stored copy of s, inserting a copy of s first if
// no equal string is present.
func (p *Pool) Intern(s string) string {
	if p.strings == nil {
		p.strings = make(map[string]string)
	}
	if stored, ok := p.strings[s]; ok {
		return stored
	}
	stored := strings.Clone(s)
	p.strings[stored] = stored
	return stored
}

// Contains reports whether s is in the pool.
func (p *Pool) Contains(s string) bool {
	if p == nil {
		return false
	}
	_, ok := p.strings[s]
	return ok
}

// Len returns the number of distinct strings in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.strings)
}

// Release drops the pool's storage. A released pool is empty; a later Intern
// starts a new index.
func (p *Pool) Release() {
	if p == nil {
		return
	}
	p.strings = nil
}
