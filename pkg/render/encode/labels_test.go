package encode

import "testing"

func TestLabelPolicyModes(t *testing.T) {
	centrality := map[string]float64{"a": 0.1, "b": 0.5, "c": 0.9}

	all := NewLabelPolicy(LabelsAll, centrality)
	if !all.Visible(0) {
		t.Error("LabelsAll should show zero-centrality labels")
	}

	hidden := NewLabelPolicy(LabelsHidden, centrality)
	if hidden.Visible(0.9) {
		t.Error("LabelsHidden should suppress even the most central label")
	}
}

func TestLabelPolicyImportantThreshold(t *testing.T) {
	// Ten values 0.0 .. 0.9: the 80th percentile cut lands on index 8, so
	// only 0.8 and 0.9 stay visible.
	centrality := make(map[string]float64, 10)
	for i := 0; i < 10; i++ {
		centrality[string(rune('a'+i))] = float64(i) / 10
	}
	p := NewLabelPolicy(LabelsImportant, centrality)

	tests := []struct {
		value float64
		want  bool
	}{
		{0.0, false},
		{0.7, false},
		{0.8, true},
		{0.9, true},
	}
	for _, tt := range tests {
		if got := p.Visible(tt.value); got != tt.want {
			t.Errorf("Visible(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLabelPolicyFailsOpen(t *testing.T) {
	p := NewLabelPolicy(LabelsImportant, nil)
	if !p.Visible(0) {
		t.Error("important mode without centrality data should show every label")
	}
}

func TestLabelPolicyMode(t *testing.T) {
	if got := NewLabelPolicy(LabelsHidden, nil).Mode(); got != LabelsHidden {
		t.Errorf("Mode = %q, want %q", got, LabelsHidden)
	}
}
