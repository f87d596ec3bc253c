// Package source defines the adapter contract for content sources and the
// registry the orchestrator dispatches through.
package source

import (
	"context"
	"fmt"
	"sort"

	"EstatePulse/internal/domain"
)

// Canonical adapter names, also used as the source tag on items.
const (
	News      = "news"
	Video     = "video"
	Forum     = "forum"
	Microblog = "microblog"
	Photo     = "photo"
	Research  = "research"
)

// Adapter is a pluggable fetcher for one external content source. Fetch
// returns at most limit items, each tagged with the adapter's name and a
// best-effort timestamp. Transport and auth faults never panic or abort the
// run; they come back as wrapped domain fault errors (or partial results)
// for the orchestrator to match on.
type Adapter interface {
	Name() string

	// Available reports whether the adapter can produce content. Degraded
	// adapters that synthesize their own fallback content still report true.
	Available() bool

	Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error)
}

// Registry keeps a mapping from adapter names to their implementations.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: map[string]Adapter{}}
}

// Register adds or replaces an adapter implementation.
func (r *Registry) Register(adapter Adapter) {
	if r.adapters == nil {
		r.adapters = map[string]Adapter{}
	}
	r.adapters[adapter.Name()] = adapter
}

// Resolve returns an adapter by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Adapter, error) {
	if adapter, ok := r.adapters[name]; ok {
		return adapter, nil
	}
	return nil, fmt.Errorf("adapter %s is not registered", name)
}

// All returns every registered adapter sorted by name, so a run visits
// sources in a deterministic order.
func (r *Registry) All() []Adapter {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Adapter, 0, len(names))
	for _, name := range names {
		out = append(out, r.adapters[name])
	}
	return out
}
