package scene2d

import (
	"errors"
	"reflect"
	"testing"
)

type observedChange struct {
	kind string
	keys map[string]any
}

type recordingObserver struct {
	changes []observedChange
	err     error
}

func (o *recordingObserver) record(kind string, objs map[string]any) error {
	o.changes = append(o.changes, observedChange{kind: kind, keys: objs})
	return o.err
}

func (o *recordingObserver) ObjectsAdded(objs map[string]any) error {
	return o.record("added", objs)
}

func (o *recordingObserver) ObjectsChanged(objs map[string]any) error {
	return o.record("changed", objs)
}

func (o *recordingObserver) ObjectsRemoved(objs map[string]any) error {
	return o.record("removed", objs)
}

func TestCompositeNotifications(t *testing.T) {
	c := NewComposite()
	obs := &recordingObserver{}
	c.Subscribe(obs)

	a1, a2 := newObject("a1"), newObject("a2")
	steps := []func() error{
		func() error { return c.Set("a", a1) },
		func() error { return c.Set("a", a1) }, // same object
		func() error { return c.Set("a", a2) },
		func() error { return c.Remove("a") },
		func() error { return c.Remove("a") }, // already gone
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if len(obs.changes) != 3 {
		t.Fatalf("changes = %d, want 3", len(obs.changes))
	}
	want := []struct {
		kind string
		obj  any
	}{{"added", a1}, {"changed", a2}, {"removed", nil}}
	for i, w := range want {
		got := obs.changes[i]
		if got.kind != w.kind {
			t.Errorf("change %d kind = %q, want %q", i, got.kind, w.kind)
		}
		if w.obj != nil && got.keys["a"] != w.obj {
			t.Errorf("change %d object = %v, want %v", i, got.keys["a"], w.obj)
		}
	}
	if c.Len() != 0 {
		t.Errorf("len = %d, want 0", c.Len())
	}
}

func TestCompositeAddAll(t *testing.T) {
	c := NewComposite()
	if err := c.Set("keep", 1); err != nil {
		t.Fatal(err)
	}
	obs := &recordingObserver{}
	c.Subscribe(obs)

	if err := c.AddAll(map[string]any{"keep": 2, "new1": 3, "new2": 4}); err != nil {
		t.Fatal(err)
	}
	if len(obs.changes) != 2 {
		t.Fatalf("changes = %+v, want 2", obs.changes)
	}
	if obs.changes[0].kind != "added" || len(obs.changes[0].keys) != 2 {
		t.Errorf("first change = %+v", obs.changes[0])
	}
	if obs.changes[1].kind != "changed" || !reflect.DeepEqual(obs.changes[1].keys, map[string]any{"keep": 2}) {
		t.Errorf("second change = %+v", obs.changes[1])
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []string{"keep", "new1", "new2"}) {
		t.Errorf("keys = %v", got)
	}
}

func TestCompositeObserverErrorStops(t *testing.T) {
	c := NewComposite()
	boom := errors.New("boom")
	first := &recordingObserver{err: boom}
	second := &recordingObserver{}
	c.Subscribe(first)
	c.Subscribe(second)

	if err := c.Set("k", 1); !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
	if len(first.changes) != 1 || len(second.changes) != 0 {
		t.Errorf("first = %d second = %d changes, want 1 and 0", len(first.changes), len(second.changes))
	}

	// The object is stored even when an observer fails.
	if v, ok := c.Get("k"); !ok || v != 1 {
		t.Errorf("Get = %v, %v", v, ok)
	}
}

func TestCompositeUnsubscribe(t *testing.T) {
	c := NewComposite()
	obs := &recordingObserver{}
	unsub := c.Subscribe(obs)
	unsub()
	unsub()
	if err := c.Set("k", 1); err != nil {
		t.Fatal(err)
	}
	if len(obs.changes) != 0 {
		t.Errorf("unsubscribed observer saw %+v", obs.changes)
	}
}

func TestCompositeNonComparableObjects(t *testing.T) {
	c := NewComposite()
	obs := &recordingObserver{}
	c.Subscribe(obs)

	for i := 0; i < 2; i++ {
		if err := c.Set("m", map[string]int{"a": 1}); err != nil {
			t.Fatal(err)
		}
	}
	// Maps are never the same object, so the second Set is a change.
	if len(obs.changes) != 2 || obs.changes[1].kind != "changed" {
		t.Errorf("changes = %+v", obs.changes)
	}
}

func TestCompositeSnapshotIsCopy(t *testing.T) {
	c := NewComposite()
	if err := c.Set("a", 1); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()
	snap["b"] = 2
	if c.Len() != 1 {
		t.Errorf("len = %d after editing the snapshot", c.Len())
	}
}
