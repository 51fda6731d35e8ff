package scene2d

import (
	"reflect"
	"sort"
)

// CompositeObserver receives structural changes of a Composite. Each map
// holds the affected keys and their (new) objects.
type CompositeObserver interface {
	ObjectsAdded(objects map[string]any) error
	ObjectsChanged(objects map[string]any) error
	ObjectsRemoved(objects map[string]any) error
}

// Composite is a keyed collection of domain objects that notifies its
// observers when objects are added, replaced or removed. Observers run
// synchronously in subscription order. The first observer error stops the
// notification and is returned to the caller.
type Composite struct {
	objects   map[string]any
	observers []observerEntry
	nextID    uint32
}

type observerEntry struct {
	id  uint32
	obs CompositeObserver
}

// NewComposite creates an empty composite.
func NewComposite() *Composite {
	return &Composite{objects: make(map[string]any)}
}

// Get returns the object stored under key.
func (c *Composite) Get(key string) (any, bool) {
	obj, ok := c.objects[key]
	return obj, ok
}

// Len returns the number of objects.
func (c *Composite) Len() int { return len(c.objects) }

// Keys returns the object keys, sorted.
func (c *Composite) Keys() []string {
	keys := make([]string, 0, len(c.objects))
	for k := range c.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the key/object map.
func (c *Composite) Snapshot() map[string]any {
	out := make(map[string]any, len(c.objects))
	for k, v := range c.objects {
		out[k] = v
	}
	return out
}

// Set stores obj under key. A new key is reported as added; an existing key
// holding a different object is reported as changed.
func (c *Composite) Set(key string, obj any) error {
	old, exists := c.objects[key]
	c.objects[key] = obj
	change := map[string]any{key: obj}
	if !exists {
		return c.notify(func(o CompositeObserver) error { return o.ObjectsAdded(change) })
	}
	if sameObject(old, obj) {
		return nil
	}
	return c.notify(func(o CompositeObserver) error { return o.ObjectsChanged(change) })
}

// AddAll stores several new objects and reports them in one notification.
// Keys already present are replaced and reported as changed.
func (c *Composite) AddAll(objects map[string]any) error {
	added := make(map[string]any)
	changed := make(map[string]any)
	for k, obj := range objects {
		if old, ok := c.objects[k]; ok {
			if !sameObject(old, obj) {
				changed[k] = obj
			}
		} else {
			added[k] = obj
		}
		c.objects[k] = obj
	}
	if len(added) > 0 {
		if err := c.notify(func(o CompositeObserver) error { return o.ObjectsAdded(added) }); err != nil {
			return err
		}
	}
	if len(changed) > 0 {
		return c.notify(func(o CompositeObserver) error { return o.ObjectsChanged(changed) })
	}
	return nil
}

// Remove deletes the object under key. Removing a missing key is a no-op.
func (c *Composite) Remove(key string) error {
	obj, ok := c.objects[key]
	if !ok {
		return nil
	}
	delete(c.objects, key)
	removed := map[string]any{key: obj}
	return c.notify(func(o CompositeObserver) error { return o.ObjectsRemoved(removed) })
}

// Subscribe registers an observer and returns a function that removes it.
func (c *Composite) Subscribe(obs CompositeObserver) (unsubscribe func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, observerEntry{id: id, obs: obs})
	return func() {
		for i := range c.observers {
			if c.observers[i].id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Composite) notify(fn func(CompositeObserver) error) error {
	obs := append([]observerEntry(nil), c.observers...)
	for _, e := range obs {
		if err := fn(e.obs); err != nil {
			return err
		}
	}
	return nil
}

// sameObject reports whether a and b are the same object. Values of
// non-comparable types are never considered the same.
func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
