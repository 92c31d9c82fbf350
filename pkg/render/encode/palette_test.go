package encode

import "testing"

func TestColorForClusterDeterministic(t *testing.T) {
	keys := []string{"Mathematics", "cluster-0", "cluster-7", "Graph Theory"}
	for _, key := range keys {
		first := ColorForCluster(key)
		for i := 0; i < 10; i++ {
			if got := ColorForCluster(key); got != first {
				t.Fatalf("ColorForCluster(%q) not stable: %s vs %s", key, first, got)
			}
		}
	}
}

func TestColorForClusterInPalette(t *testing.T) {
	inPalette := func(c string) bool {
		for _, p := range DefaultPalette {
			if p == c {
				return true
			}
		}
		return false
	}
	for _, key := range []string{"a", "b", "some longer cluster label"} {
		if c := ColorForCluster(key); !inPalette(c) {
			t.Errorf("ColorForCluster(%q) = %s not in palette", key, c)
		}
	}
}

func TestNodeColorPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		clusterKey  string
		entityType  string
		highlighted bool
		want        string
	}{
		{"highlight wins over cluster", "Mathematics", "concept", true, HighlightColor},
		{"cluster wins over entity", "Mathematics", "concept", false, ColorForCluster("Mathematics")},
		{"entity fallback", "", "paper", false, "#59a14f"},
		{"unknown entity default", "", "mystery", false, "#8d99ae"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeColor(tt.clusterKey, tt.entityType, tt.highlighted); got != tt.want {
				t.Errorf("NodeColor = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLightenDarken(t *testing.T) {
	base := "#4e79a7"
	light := Lighten(base, 0.3)
	dark := Darken(base, 0.3)

	if light == base || dark == base || light == dark {
		t.Errorf("blend produced no change: light=%s dark=%s", light, dark)
	}

	// Malformed input passes through untouched.
	if got := Lighten("not-a-color", 0.5); got != "not-a-color" {
		t.Errorf("malformed hex mutated: %s", got)
	}
}
