package scene2d

import (
	"fmt"
	"strings"
	"time"
)

// debugStats holds per-frame draw metrics. Only populated in debug mode.
type debugStats struct {
	drawTime     time.Duration
	adaptorCount int
	drawnCount   int
}

// debugLog reports frame stats at debug level.
func (r *Render) debugLog(stats debugStats) {
	if !r.debug {
		return
	}
	Logger().Debug("frame",
		"draw", stats.drawTime,
		"adaptors", stats.adaptorCount,
		"drawn", stats.drawnCount,
		"pending", len(r.Pending()))
}

// DebugString describes the registry: every configured adaptor with its
// state, bound object and effective z-value, in dispatch order first.
// Adaptors configured with a uid show it last.
func (r *Render) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scene %v\n", r.scene)
	for _, id := range r.reg.descending() {
		d := r.reg.get(id)
		z, _ := r.reg.effectiveZ(id)
		fmt.Fprintf(&b, "  %-20s %-10s z=%-8g object=%s%s\n", id, d.state, z, d.cfg.Object, uidSuffix(d.cfg.UID))
	}
	for _, id := range r.reg.order {
		d := r.reg.get(id)
		if d.instance != nil {
			continue
		}
		fmt.Fprintf(&b, "  %-20s %-10s object=%s%s\n", id, d.state, d.cfg.Object, uidSuffix(d.cfg.UID))
	}
	return b.String()
}

func uidSuffix(uid string) string {
	if uid == "" {
		return ""
	}
	return " uid=" + uid
}
