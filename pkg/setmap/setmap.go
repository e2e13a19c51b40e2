package setmap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/intervalset/pkg/intervals"
)

// SetMap stores many interval sets keyed by name, e.g. one per
// channel or per flag category, with label metadata per entry.
type SetMap[T intervals.Elem[T]] interface {
	Get(name string) (*intervals.Set[T], error)
	Add(name string, s *intervals.Set[T], l labels.Set) error
	Update(name string, s *intervals.Set[T], l labels.Set) error
	Delete(name string) error

	Count() int
	Has(name string) bool
	Names() []string

	GetAll() map[string]*intervals.Set[T]
	GetByLabel(selector labels.Selector) map[string]*intervals.Set[T]
	Labels(name string) (labels.Set, error)
}

type ValidationFn func(name string) error

type Entry[T intervals.Elem[T]] struct {
	Set    *intervals.Set[T]
	Labels labels.Set
}

func New[T intervals.Elem[T]](initEntries map[string]Entry[T], v ValidationFn) (SetMap[T], error) {
	r := &setMap[T]{
		m:          new(sync.RWMutex),
		entries:    map[string]Entry[T]{},
		validateFn: v,
	}

	var errm error
	for name, e := range initEntries {
		if err := r.add(name, e, true); err != nil {
			errm = errors.Join(errm, err)
		}
	}

	return r, errm
}

type setMap[T intervals.Elem[T]] struct {
	m          *sync.RWMutex
	entries    map[string]Entry[T]
	validateFn ValidationFn
}

func (r *setMap[T]) validate(name string, init bool) error {
	if name == "" {
		return fmt.Errorf("empty name")
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(name); err != nil {
			return err
		}
	}
	return nil
}

func (r *setMap[T]) Get(name string) (*intervals.Set[T], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("no match found for: %v", name)
	}
	return e.Set, nil
}

func (r *setMap[T]) Labels(name string) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("no match found for: %v", name)
	}
	return e.Labels, nil
}

func (r *setMap[T]) Add(name string, s *intervals.Set[T], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(name, Entry[T]{Set: s, Labels: l}, false)
}

func (r *setMap[T]) add(name string, e Entry[T], init bool) error {
	if err := r.validate(name, init); err != nil {
		return err
	}
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("entry %s already exists", name)
	}
	r.entries[name] = e
	return nil
}

func (r *setMap[T]) Update(name string, s *intervals.Set[T], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(name, false); err != nil {
		return err
	}
	if _, ok := r.entries[name]; !ok {
		return fmt.Errorf("entry %s not found", name)
	}
	r.entries[name] = Entry[T]{Set: s, Labels: l}
	return nil
}

func (r *setMap[T]) Delete(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(name, false); err != nil {
		return err
	}
	delete(r.entries, name)
	return nil
}

func (r *setMap[T]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.entries)
}

func (r *setMap[T]) Has(name string) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	_, ok := r.entries[name]
	return ok
}

func (r *setMap[T]) Names() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *setMap[T]) GetAll() map[string]*intervals.Set[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	sets := make(map[string]*intervals.Set[T], len(r.entries))
	for name, e := range r.entries {
		sets[name] = e.Set
	}
	return sets
}

func (r *setMap[T]) GetByLabel(selector labels.Selector) map[string]*intervals.Set[T] {
	r.m.RLock()
	defer r.m.RUnlock()

	sets := map[string]*intervals.Set[T]{}
	for name, e := range r.entries {
		if selector.Matches(e.Labels) {
			sets[name] = e.Set
		}
	}
	return sets
}
