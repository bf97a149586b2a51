package rr

import (
	"sync/atomic"
)

type RoundRobin interface {
	Next() (string, bool)
	Len() int
}

// rr reads the current list on every call so the list can be swapped at runtime.
type rr struct {
	data  *atomic.Pointer[[]string]
	index atomic.Uint32
}

func New(data *atomic.Pointer[[]string]) *rr {
	return &rr{data: data}
}

func (r *rr) load() []string {
	p := r.data.Load()
	if p == nil {
		return nil
	}
	return *p
}

func (r *rr) Next() (string, bool) {
	servers := r.load()
	if len(servers) == 0 {
		return "", false
	}

	n := r.index.Add(1)
	return servers[(int(n)-1)%len(servers)], true
}

func (r *rr) Len() int {
	return len(r.load())
}
