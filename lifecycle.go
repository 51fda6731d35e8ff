package scene2d

import (
	"errors"
	"fmt"
	"sort"
)

// Start subscribes the render to c and starts every adaptor whose object is
// already present. Connections are wired as their endpoints become
// available.
func (r *Render) Start(c *Composite) error {
	if r.started {
		return ErrAlreadyStarted
	}
	if c == nil {
		c = NewComposite()
	}
	r.started = true
	r.composite = c
	r.conns = newConnections(r, r.cfg.Connections)
	Logger().Info("render started", "adaptors", len(r.reg.order), "connections", len(r.cfg.Connections))

	if err := r.ObjectsAdded(c.Snapshot()); err != nil {
		r.Stop()
		return err
	}
	r.unsubscribe = c.Subscribe(r)
	return nil
}

// Stop disconnects every connection, discards pending ones, and stops every
// live adaptor from topmost to bottommost. Descriptors are kept so the
// render can be started again.
func (r *Render) Stop() {
	if !r.started {
		return
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	r.conns.teardown()
	for _, id := range r.reg.descending() {
		r.StopAdaptor(id)
	}
	for _, id := range r.reg.order {
		r.reg.get(id).state = StateConfigured
	}
	r.objects = make(map[string]any)
	r.composite = nil
	r.injectQueue = r.injectQueue[:0]
	r.started = false
	Logger().Info("render stopped")
}

// StartAdaptor instantiates, configures and starts one adaptor. Starting a
// live adaptor is a no-op.
func (r *Render) StartAdaptor(id string) error {
	d := r.reg.get(id)
	if d == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAdaptor, id)
	}
	if d.state == StateStarted || d.state == StateSwapped {
		return nil
	}
	obj, ok := r.objects[d.cfg.Object]
	if !ok {
		return fmt.Errorf("%w: adaptor %q needs %q", ErrMissingObject, id, d.cfg.Object)
	}

	inst, err := NewAdaptor(d.cfg.Type)
	if err != nil {
		return err
	}
	inst.SetRender(r)
	inst.SetObject(obj)
	if err := inst.Configure(d.cfg); err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			return err
		}
		return configErr("adaptor", id, err)
	}

	r.reg.insertZ(id, inst.ZValue())
	d.instance = inst
	if err := inst.Start(); err != nil {
		r.reg.removeZ(id)
		d.instance = nil
		return fmt.Errorf("start adaptor %q: %w", id, err)
	}
	d.state = StateStarted
	attrs := []any{"adaptor", id, "type", d.cfg.Type, "object", d.cfg.Object}
	if d.cfg.UID != "" {
		attrs = append(attrs, "uid", d.cfg.UID)
	}
	Logger().Info("adaptor started", attrs...)

	if r.conns == nil {
		return nil
	}
	return r.conns.adaptorStarted(id)
}

// StopAdaptor stops one live adaptor and releases its instance. The
// descriptor stays registered so the adaptor can be started again.
func (r *Render) StopAdaptor(id string) {
	d := r.reg.get(id)
	if d == nil || d.instance == nil {
		return
	}
	if r.conns != nil {
		r.conns.adaptorStopped(id)
	}
	d.instance.Stop()
	r.reg.removeZ(id)
	d.instance = nil
	d.state = StateStopped
	Logger().Info("adaptor stopped", "adaptor", id)
}

// SwapAdaptor rebinds a live adaptor to obj, keeping its id and place in
// the dispatch table. A stopped adaptor is started instead.
func (r *Render) SwapAdaptor(id string, obj any) error {
	d := r.reg.get(id)
	if d == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAdaptor, id)
	}
	if d.instance == nil {
		return r.StartAdaptor(id)
	}
	d.state = StateSwapped
	d.instance.SetObject(obj)
	d.instance.Swap()
	d.state = StateStarted
	Logger().Info("adaptor swapped", "adaptor", id)
	return nil
}

// StartAdaptorsFromComposite starts the adaptors of every object in
// objects. Adaptors of one object start in declaration order.
func (r *Render) StartAdaptorsFromComposite(objects map[string]any) error {
	for _, key := range sortedKeys(objects) {
		for _, id := range r.reg.adaptorsOf(key) {
			if err := r.StartAdaptor(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// StopAdaptorsFromComposite stops the adaptors of every object in objects.
func (r *Render) StopAdaptorsFromComposite(objects map[string]any) {
	for _, key := range sortedKeys(objects) {
		for _, id := range r.reg.adaptorsOf(key) {
			r.StopAdaptor(id)
		}
	}
}

// SwapAdaptorsFromComposite swaps the adaptors of every object in objects
// to the new object values.
func (r *Render) SwapAdaptorsFromComposite(objects map[string]any) error {
	for _, key := range sortedKeys(objects) {
		obj := objects[key]
		for _, id := range r.reg.adaptorsOf(key) {
			if err := r.SwapAdaptor(id, obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// ObjectsAdded records new composite objects, starts their adaptors and
// drains the connections waiting for their keys.
func (r *Render) ObjectsAdded(objects map[string]any) error {
	if !r.started {
		return ErrNotStarted
	}
	for k, obj := range objects {
		r.objects[k] = obj
	}
	if err := r.StartAdaptorsFromComposite(objects); err != nil {
		return err
	}
	for _, key := range sortedKeys(objects) {
		if err := r.conns.objectAdded(key); err != nil {
			return err
		}
	}
	return nil
}

// ObjectsChanged swaps the adaptors of replaced objects. Connections to the
// old objects' signals are rewired to the new ones.
func (r *Render) ObjectsChanged(objects map[string]any) error {
	if !r.started {
		return ErrNotStarted
	}
	keys := sortedKeys(objects)
	for _, key := range keys {
		r.conns.objectRemoved(key)
		r.objects[key] = objects[key]
	}
	if err := r.SwapAdaptorsFromComposite(objects); err != nil {
		return err
	}
	for _, key := range keys {
		if err := r.conns.objectAdded(key); err != nil {
			return err
		}
	}
	return nil
}

// ObjectsRemoved disconnects the connections depending on removed objects
// and stops their adaptors.
func (r *Render) ObjectsRemoved(objects map[string]any) error {
	if !r.started {
		return ErrNotStarted
	}
	for _, key := range sortedKeys(objects) {
		r.conns.objectRemoved(key)
	}
	r.StopAdaptorsFromComposite(objects)
	for k := range objects {
		delete(r.objects, k)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
