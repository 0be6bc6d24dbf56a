package cmd

import (
	"slices"
	"sync"
)

// Entry is a registered command: its name, callback and resolved options.
type Entry struct {
	Name     string
	Callback Callback
	Options  Options
}

// Registry stores commands by name. It does not perform dispatch; adapters
// look commands up and invoke them with their own context.
//
// Entries are stored as values and replaced whole, so concurrent readers
// never observe a half-edited entry. Entries iterates in registration order.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Entry
	order    []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Entry)}
}

// Register stores a command with DefaultOptions overridden by opts. An
// existing command with the same name is replaced in place.
func (r *Registry) Register(name string, cb Callback, opts ...Option) {
	entry := Entry{
		Name:     name,
		Callback: cb,
		Options:  DefaultOptions().With(opts...),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[name]; !ok {
		r.order = append(r.order, name)
	}
	r.commands[name] = entry
}

// Unregister removes a command. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.commands[name]; !ok {
		return
	}
	delete(r.commands, name)
	if i := slices.Index(r.order, name); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// EditCallback swaps the callback of an existing command.
func (r *Registry) EditCallback(name string, cb Callback) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.commands[name]
	if !ok {
		return
	}
	entry.Callback = cb
	r.commands[name] = entry
}

// EditOptions applies opts over the current options of an existing command.
func (r *Registry) EditOptions(name string, opts ...Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.commands[name]
	if !ok {
		return
	}
	entry.Options = entry.Options.With(opts...)
	r.commands[name] = entry
}

// Lookup returns the command registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.commands[name]
	return entry, ok
}

// Entries returns a snapshot of all commands in registration order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.commands[name])
	}
	return list
}
