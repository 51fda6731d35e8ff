package scene2d

import "sort"

// ZEpsilon is the spacing reported between adaptors whose declared z-values
// collide: an adaptor inserted at a taken z-value is drawn ZEpsilon above
// the adaptor below it.
const ZEpsilon = 1e-3

// AdaptorState is the lifecycle state of a configured adaptor.
type AdaptorState uint8

const (
	StateUnbound    AdaptorState = iota // not known to the render
	StateConfigured                     // descriptor parsed, no instance yet
	StateStarted                        // live instance in the dispatch table
	StateSwapped                        // instance rebinding to a replaced object
	StateStopped                        // instance released, descriptor kept
)

func (s AdaptorState) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StateStarted:
		return "started"
	case StateSwapped:
		return "swapped"
	case StateStopped:
		return "stopped"
	default:
		return "unbound"
	}
}

// zKey orders the dispatch table. The insertion sequence breaks ties so that
// the first adaptor inserted at a z-value sorts below later ones.
type zKey struct {
	z   float64
	seq uint64
}

func (k zKey) less(o zKey) bool {
	if k.z != o.z {
		return k.z < o.z
	}
	return k.seq < o.seq
}

type zEntry struct {
	key zKey
	id  string
}

// descriptor is the registry record of one configured adaptor.
type descriptor struct {
	cfg      AdaptorConfig
	state    AdaptorState
	instance Adaptor
}

// registry owns descriptors, the object-to-adaptor map and the z-ordered
// dispatch table. It is not safe for concurrent use; the Render only
// touches it from the UI goroutine.
type registry struct {
	descriptors    map[string]*descriptor
	order          []string            // adaptor ids in declaration order
	objectAdaptors map[string][]string // object key -> adaptor ids, declaration order
	table          []zEntry            // ascending by zKey
	nextSeq        uint64
}

func newRegistry() *registry {
	return &registry{
		descriptors:    make(map[string]*descriptor),
		objectAdaptors: make(map[string][]string),
	}
}

// configure records an adaptor declaration.
func (r *registry) configure(cfg AdaptorConfig) error {
	if err := checkAdaptorAttrs(cfg); err != nil {
		return err
	}
	if _, dup := r.descriptors[cfg.ID]; dup {
		return configErr("adaptor", cfg.ID, ErrDuplicateAdaptor)
	}
	r.descriptors[cfg.ID] = &descriptor{cfg: cfg, state: StateConfigured}
	r.order = append(r.order, cfg.ID)
	r.objectAdaptors[cfg.Object] = append(r.objectAdaptors[cfg.Object], cfg.ID)
	return nil
}

func (r *registry) get(id string) *descriptor {
	return r.descriptors[id]
}

// adaptorsOf returns the adaptor ids bound to an object key.
func (r *registry) adaptorsOf(key string) []string {
	return r.objectAdaptors[key]
}

// insertZ places id in the dispatch table at declared z-value z. A value
// already taken is not an error: the new entry sorts above the existing ones.
func (r *registry) insertZ(id string, z float64) {
	r.nextSeq++
	key := zKey{z: z, seq: r.nextSeq}
	i := sort.Search(len(r.table), func(i int) bool { return key.less(r.table[i].key) })

	if i > 0 && r.table[i-1].key.z == z {
		Logger().Debug("z-value already used, stacking above",
			"adaptor", id, "z", z, "occupant", r.table[i-1].id)
	}

	r.table = append(r.table, zEntry{})
	copy(r.table[i+1:], r.table[i:])
	r.table[i] = zEntry{key: key, id: id}
}

// removeZ drops id from the dispatch table. Missing ids are ignored.
func (r *registry) removeZ(id string) {
	for i := range r.table {
		if r.table[i].id == id {
			copy(r.table[i:], r.table[i+1:])
			r.table[len(r.table)-1] = zEntry{}
			r.table = r.table[:len(r.table)-1]
			return
		}
	}
}

// effectiveZ reports the z-value id is drawn at. The second result is false
// if id is not in the dispatch table.
//
// Effective values follow the dispatch table and are strictly increasing:
// an entry keeps its declared value unless that value is not above the
// entry below it, in which case it sits ZEpsilon above that entry.
func (r *registry) effectiveZ(id string) (float64, bool) {
	var prev float64
	for i := range r.table {
		z := r.table[i].key.z
		if i > 0 && z <= prev {
			z = prev + ZEpsilon
		}
		if r.table[i].id == id {
			return z, true
		}
		prev = z
	}
	return 0, false
}

// descending returns the dispatch table ids from topmost to bottommost.
// The result is a copy, safe against mutation during dispatch.
func (r *registry) descending() []string {
	ids := make([]string, len(r.table))
	for i := range r.table {
		ids[len(r.table)-1-i] = r.table[i].id
	}
	return ids
}

// ascending returns the dispatch table ids in draw order.
func (r *registry) ascending() []string {
	ids := make([]string, len(r.table))
	for i := range r.table {
		ids[i] = r.table[i].id
	}
	return ids
}
