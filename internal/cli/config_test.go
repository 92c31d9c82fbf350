package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conceptatlas/atlas/pkg/layout/force"
	"github.com/conceptatlas/atlas/pkg/layout/topic"
	"github.com/conceptatlas/atlas/pkg/render/encode"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "atlas.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadTunablesEmptyPath(t *testing.T) {
	tun, err := loadTunables("")
	if err != nil {
		t.Fatalf("loadTunables: %v", err)
	}
	if tun.forceConfig() != force.DefaultConfig() {
		t.Error("zero tunables should produce the default 3-D tuning")
	}
	if tun.topicConfig() != topic.DefaultConfig() {
		t.Error("zero tunables should produce the default 2-D tuning")
	}
}

func TestLoadTunablesMissingFile(t *testing.T) {
	if _, err := loadTunables("/nonexistent/atlas.toml"); err == nil {
		t.Error("missing config file should error")
	}
}

func TestLoadTunablesMalformed(t *testing.T) {
	path := writeConfig(t, "[force\nrepulsion = ")
	if _, err := loadTunables(path); err == nil {
		t.Error("malformed TOML should error")
	}
}

func TestTunablesOverrides(t *testing.T) {
	path := writeConfig(t, `
labels = "important"

[canvas]
width = 1600
height = 1000

[force]
repulsion = 300
max_ticks = 400
seed = 7

[topic]
link_strength = 0.08
max_ticks = 150

[lod]
level = "key"

[bloom]
enabled = false
intensity = 0.9
`)
	tun, err := loadTunables(path)
	if err != nil {
		t.Fatalf("loadTunables: %v", err)
	}

	fcfg := tun.forceConfig()
	if fcfg.Repulsion != 300 || fcfg.MaxTicks != 400 || fcfg.Seed != 7 {
		t.Errorf("force overrides not applied: %+v", fcfg)
	}
	if fcfg.SpringLength != force.DefaultConfig().SpringLength {
		t.Error("unset force field lost its default")
	}

	tcfg := tun.topicConfig()
	if tcfg.LinkStrength != 0.08 || tcfg.MaxTicks != 150 {
		t.Errorf("topic overrides not applied: %+v", tcfg)
	}
	if tcfg.Width != 1600 || tcfg.Height != 1000 {
		t.Errorf("canvas overrides not applied to topic config: %+v", tcfg)
	}

	rcfg := tun.renderConfig()
	if rcfg.Width != 1600 || rcfg.Height != 1000 {
		t.Errorf("canvas overrides not applied to render config")
	}
	if !rcfg.LOD.Enabled || rcfg.LOD.Fraction != 0.3 {
		t.Errorf("lod level not applied: %+v", rcfg.LOD)
	}
	if rcfg.Labels != encode.LabelsImportant {
		t.Errorf("labels = %q", rcfg.Labels)
	}
	if rcfg.Bloom.Enabled {
		t.Error("bloom enabled=false not applied")
	}
	if rcfg.Bloom.Intensity != 0.9 {
		t.Errorf("bloom intensity = %v", rcfg.Bloom.Intensity)
	}
}
