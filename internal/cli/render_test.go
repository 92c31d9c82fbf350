package cli

import (
	"reflect"
	"testing"

	"github.com/conceptatlas/atlas/pkg/kgraph"
)

func TestParseViews(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{kgraph.ViewTopics}},
		{"nodes", []string{"nodes"}},
		{"nodes,topics", []string{"nodes", "topics"}},
	}
	for _, tt := range tests {
		if got := parseViews(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseViews(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,dot,json", []string{"svg", "dot", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := validateFormats([]string{"svg", "png", "dot", "json"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := validateFormats([]string{"svg", "webp"}); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestValidateViews(t *testing.T) {
	if err := validateViews([]string{"nodes", "topics"}); err != nil {
		t.Errorf("valid views rejected: %v", err)
	}
	if err := validateViews([]string{"sideways"}); err == nil {
		t.Error("invalid view accepted")
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derive from input", "", "graph.json", "graph"},
		{"strip format extension", "out.svg", "graph.json", "out"},
		{"keep other extension", "out.backup", "graph.json", "out.backup"},
		{"plain base", "renders/out", "graph.json", "renders/out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}
