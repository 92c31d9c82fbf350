package encode

import "sort"

// =============================================================================
// Label Visibility Policy
// =============================================================================

// LabelMode selects the label-visibility policy.
type LabelMode string

const (
	// LabelsAll shows every node's label.
	LabelsAll LabelMode = "all"
	// LabelsImportant shows labels only for nodes at or above the 80th
	// centrality percentile.
	LabelsImportant LabelMode = "important"
	// LabelsHidden shows labels only on hover.
	LabelsHidden LabelMode = "hidden"
)

// importantPercentile is the centrality cut for LabelsImportant.
const importantPercentile = 0.8

// LabelPolicy answers per-node label visibility for one snapshot's
// centrality distribution. Build it once per render pass.
type LabelPolicy struct {
	mode      LabelMode
	threshold float64
	failOpen  bool // no centrality data: show everything
}

// NewLabelPolicy computes the percentile threshold for the given mode from
// the centrality value set. An empty centrality map fails open to LabelsAll.
func NewLabelPolicy(mode LabelMode, centrality map[string]float64) LabelPolicy {
	p := LabelPolicy{mode: mode}
	if mode != LabelsImportant {
		return p
	}
	if len(centrality) == 0 {
		p.failOpen = true
		return p
	}

	values := make([]float64, 0, len(centrality))
	for _, v := range centrality {
		values = append(values, v)
	}
	sort.Float64s(values)

	idx := int(float64(len(values)) * importantPercentile)
	if idx >= len(values) {
		idx = len(values) - 1
	}
	p.threshold = values[idx]
	return p
}

// Visible reports whether the label for a node with the given centrality
// should be drawn (ignoring hover, which always shows the label).
func (p LabelPolicy) Visible(centrality float64) bool {
	switch p.mode {
	case LabelsHidden:
		return false
	case LabelsImportant:
		if p.failOpen {
			return true
		}
		return centrality >= p.threshold
	default:
		return true
	}
}

// Mode returns the policy's label mode.
func (p LabelPolicy) Mode() LabelMode { return p.mode }
