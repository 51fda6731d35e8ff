package scene2d

import "fmt"

// connection is one declared signal/slot binding.
type connection struct {
	index int
	cfg   ConnectConfig
	// key is the object key the connection waits for; empty when it only
	// joins adaptors.
	key      string
	sigSrc   string
	sigName  string
	slotSrcs []string
	slotRefs []string

	links []Connection // nil while pending
}

func (c *connection) live() bool { return c.links != nil }

// dependsOnObject reports whether the connection needs object key.
func (c *connection) dependsOnObject(r *Render, key string) bool {
	if c.key == key {
		return true
	}
	return c.sigSrc == key && r.reg.get(key) == nil
}

// dependsOnAdaptor reports whether the connection needs adaptor id.
func (c *connection) dependsOnAdaptor(id string) bool {
	if c.sigSrc == id {
		return true
	}
	for _, s := range c.slotSrcs {
		if s == id {
			return true
		}
	}
	return false
}

// connections holds the declared connections and the pending queue keyed
// by the object key each one waits for. Connections joining adaptors only
// wait on nothing shared and are established one at a time.
type connections struct {
	r     *Render
	all   []*connection
	byKey map[string][]*connection
}

// group returns the connections established together with c.
func (cs *connections) group(c *connection) []*connection {
	if c.key == "" {
		return []*connection{c}
	}
	return cs.byKey[c.key]
}

func newConnections(r *Render, cfgs []ConnectConfig) *connections {
	cs := &connections{r: r, byKey: make(map[string][]*connection)}
	for i, cc := range cfgs {
		c := &connection{index: i, cfg: cc}
		c.sigSrc, c.sigName, _ = splitEndpoint(cc.Signal)
		for _, ref := range cc.Slots {
			src, _, _ := splitEndpoint(ref)
			c.slotSrcs = append(c.slotSrcs, src)
			c.slotRefs = append(c.slotRefs, ref)
		}
		switch {
		case cc.WaitForKey != "":
			c.key = cc.WaitForKey
		case r.reg.get(c.sigSrc) == nil:
			c.key = c.sigSrc
		}
		cs.all = append(cs.all, c)
		if c.key != "" {
			cs.byKey[c.key] = append(cs.byKey[c.key], c)
		}
	}
	return cs
}

// resolved is a connection whose endpoints are all available.
type resolved struct {
	c     *connection
	sig   *Signal
	slots []Slot
}

// resolve looks up the endpoints of c. It returns ok=false without error
// when an endpoint is not available yet, and an error when an endpoint
// exists but cannot serve the reference.
func (cs *connections) resolve(c *connection) (res resolved, ok bool, err error) {
	r := cs.r
	if c.key != "" {
		if _, present := r.objects[c.key]; !present {
			return res, false, nil
		}
	}

	var src any
	if d := r.reg.get(c.sigSrc); d != nil {
		if d.instance == nil {
			return res, false, nil
		}
		src = d.instance
	} else {
		obj, present := r.objects[c.sigSrc]
		if !present {
			return res, false, nil
		}
		src = obj
	}
	sg, isSignaler := src.(Signaler)
	if !isSignaler {
		return res, false, configErr("connect", c.cfg.Signal, fmt.Errorf("%w: %q has no signals", ErrBadConnection, c.sigSrc))
	}
	res.c = c
	res.sig = sg.Signals().Get(c.sigName)

	for i, id := range c.slotSrcs {
		d := r.reg.get(id)
		if d == nil || d.instance == nil {
			return res, false, nil
		}
		st, isSlotter := d.instance.(Slotter)
		if !isSlotter {
			return res, false, configErr("connect", c.slotRefs[i], fmt.Errorf("%w: %q has no slots", ErrBadConnection, id))
		}
		_, name, _ := splitEndpoint(c.slotRefs[i])
		fn, found := st.Slots()[name]
		if !found {
			return res, false, configErr("connect", c.slotRefs[i], fmt.Errorf("%w: no slot %q on %q", ErrBadConnection, name, id))
		}
		res.slots = append(res.slots, fn)
	}
	return res, true, nil
}

// establish wires the pending connections of group, in declaration order.
// Either all of them are wired or none is.
func (cs *connections) establish(key string, group []*connection) error {
	var batch []resolved
	for _, c := range group {
		if c.live() {
			continue
		}
		res, ok, err := cs.resolve(c)
		if err != nil {
			return err
		}
		if !ok {
			Logger().Debug("connections still pending", "key", key, "signal", c.cfg.Signal)
			return nil
		}
		batch = append(batch, res)
	}
	for _, res := range batch {
		links := make([]Connection, 0, len(res.slots))
		for _, fn := range res.slots {
			links = append(links, res.sig.Connect(fn))
		}
		res.c.links = links
		Logger().Debug("connection established", "key", key, "signal", res.c.cfg.Signal, "slots", res.c.cfg.Slots)
	}
	return nil
}

func (cs *connections) disconnect(c *connection) {
	for _, l := range c.links {
		l.Disconnect()
	}
	c.links = nil
	Logger().Debug("connection released", "key", c.key, "signal", c.cfg.Signal)
}

// retry attempts every group with a pending connection matching match, in
// order of first declaration.
func (cs *connections) retry(match func(*connection) bool) error {
	seen := make(map[string]bool)
	for _, c := range cs.all {
		if c.live() || !match(c) {
			continue
		}
		if c.key != "" {
			if seen[c.key] {
				continue
			}
			seen[c.key] = true
		}
		if err := cs.establish(c.key, cs.group(c)); err != nil {
			return err
		}
	}
	return nil
}

func (cs *connections) objectAdded(key string) error {
	return cs.retry(func(c *connection) bool { return c.dependsOnObject(cs.r, key) })
}

func (cs *connections) objectRemoved(key string) {
	for _, c := range cs.all {
		if c.live() && c.dependsOnObject(cs.r, key) {
			cs.disconnect(c)
		}
	}
}

func (cs *connections) adaptorStarted(id string) error {
	return cs.retry(func(c *connection) bool { return c.dependsOnAdaptor(id) })
}

func (cs *connections) adaptorStopped(id string) {
	for _, c := range cs.all {
		if c.live() && c.dependsOnAdaptor(id) {
			cs.disconnect(c)
		}
	}
}

// teardown disconnects everything and discards pending connections.
func (cs *connections) teardown() {
	for _, c := range cs.all {
		if c.live() {
			cs.disconnect(c)
			continue
		}
		Logger().Debug("pending connection discarded", "key", c.key, "signal", c.cfg.Signal)
	}
	cs.all = nil
	cs.byKey = make(map[string][]*connection)
}

// Pending returns the signal references of connections not yet wired, in
// declaration order.
func (r *Render) Pending() []string {
	if r.conns == nil {
		return nil
	}
	var out []string
	for _, c := range r.conns.all {
		if !c.live() {
			out = append(out, c.cfg.Signal)
		}
	}
	return out
}
