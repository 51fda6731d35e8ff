package scene2d

import (
	"strings"
	"testing"
)

func TestDebugString(t *testing.T) {
	r := newTestRender(t, &Config{Adaptors: []AdaptorConfig{
		recCfg("low", "obj", 1, nil),
		recCfg("high", "obj", 5, nil),
		recCfg("idle", "other", 0, nil),
	}})
	startRender(t, r, map[string]any{"obj": newObject("obj")})

	out := r.DebugString()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "scene ") {
		t.Errorf("header = %q", lines[0])
	}
	checks := []struct {
		line  int
		parts []string
	}{
		{1, []string{"high", "started", "z=5", "object=obj"}},
		{2, []string{"low", "started", "z=1", "object=obj"}},
		{3, []string{"idle", "configured", "object=other"}},
	}
	for _, c := range checks {
		for _, p := range c.parts {
			if !strings.Contains(lines[c.line], p) {
				t.Errorf("line %d %q missing %q", c.line, lines[c.line], p)
			}
		}
	}
	if strings.Contains(lines[3], "z=") {
		t.Errorf("unstarted adaptor shows a z-value: %q", lines[3])
	}
}

func TestDebugModeLogsFrames(t *testing.T) {
	logs := captureLogs(t)
	r := newTestRender(t, nil)
	r.debugLog(debugStats{adaptorCount: 2, drawnCount: 1})
	if len(logs.withMessage("frame")) != 0 {
		t.Error("frame logged with debug mode off")
	}
	r.SetDebugMode(true)
	r.debugLog(debugStats{adaptorCount: 2, drawnCount: 1})
	recs := logs.withMessage("frame")
	if len(recs) != 1 || recs[0].attrs["drawn"] != "1" {
		t.Errorf("frame records = %+v", recs)
	}
}

func TestAdaptorUIDReported(t *testing.T) {
	logs := captureLogs(t)
	tagged := recCfg("tagged", "obj", 0, nil)
	tagged.UID = "7f3a"
	idle := recCfg("idle", "other", 0, nil)
	idle.UID = "91bc"
	r := newTestRender(t, &Config{Adaptors: []AdaptorConfig{
		tagged, idle, recCfg("plain", "obj", 1, nil),
	}})
	startRender(t, r, map[string]any{"obj": newObject("obj")})

	uids := map[string]string{}
	for _, rec := range logs.withMessage("adaptor started") {
		uids[rec.attrs["adaptor"]] = rec.attrs["uid"]
	}
	if uids["tagged"] != "7f3a" || uids["plain"] != "" {
		t.Errorf("start log uids = %v", uids)
	}

	out := r.DebugString()
	for _, want := range []string{"object=obj uid=7f3a\n", "object=other uid=91bc\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug string missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "uid=") != 2 {
		t.Errorf("uid shown for an adaptor without one:\n%s", out)
	}
}
